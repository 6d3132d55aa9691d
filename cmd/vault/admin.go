package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"slayervault/pkg/models"
)

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func newLoginCmd(opts *options) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange the admin password for a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			if password == "" {
				return errors.New("password required (--password or ADMIN_PASSWORD)")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			var resp loginResponse
			payload := map[string]string{"password": password}
			if err := doJSON(ctx, opts.client, http.MethodPost, endpoint(opts.baseURL, "/admin/login", nil), "", payload, &resp); err != nil {
				return err
			}
			if err := saveToken(opts.tokenPath, resp.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in, token valid until %s\n", resp.ExpiresAt)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved admin token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return clearToken(opts.tokenPath)
		},
	}
}

func newOverrideCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Read or replace character image overrides",
	}
	cmd.AddCommand(newOverrideGetCmd(opts), newOverrideSetCmd(opts))
	return cmd
}

func newOverrideGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get [slug]",
		Short: "Print all overrides, or the one for slug",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			var q url.Values
			if len(args) == 1 {
				q = url.Values{"slug": {args[0]}}
			}
			target := endpoint(opts.baseURL, "/overrides", q)
			var out map[string]any
			if err := doJSON(ctx, opts.client, http.MethodGet, target, "", nil, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newOverrideSetCmd(opts *options) *cobra.Command {
	var (
		poster   string
		gallery  []string
		password string
	)
	cmd := &cobra.Command{
		Use:   "set <slug>",
		Short: "Replace the image override for slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(opts.tokenPath)
			if err != nil {
				return fmt.Errorf("read token: %w", err)
			}
			if token == "" && password == "" {
				return errors.New("not logged in; run `vault login` or pass --password")
			}

			if gallery == nil {
				gallery = []string{}
			}
			payload := map[string]any{
				"slug":     args[0],
				"images":   models.Images{PosterURL: poster, GalleryURLs: gallery},
				"password": password,
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			if err := doJSON(ctx, opts.client, http.MethodPost, endpoint(opts.baseURL, "/overrides", nil), token, payload, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "override saved for %s\n", args[0])
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&poster, "poster", "", "poster image URL")
	f.StringSliceVar(&gallery, "gallery", nil, "gallery image URL (repeatable)")
	f.StringVar(&password, "password", "", "admin password instead of a saved token")
	return cmd
}
