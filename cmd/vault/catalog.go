package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"slayervault/internal/catalog"
	"slayervault/internal/grpcserver"
	"slayervault/pkg/models"
)

type listResponse struct {
	Total int                `json:"total"`
	Items []models.Character `json:"items"`
}

func newQueryCmd(opts *options) *cobra.Command {
	var (
		q                      catalog.QuerySpec
		faction, rank, tech, s string
		asJSON                 bool
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter, search and sort the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q.Faction = catalog.ParseFaction(faction)
			q.Rank = catalog.ParseRankFilter(rank)
			q.Technique = catalog.ParseTechniqueFilter(tech)
			q.Sort = catalog.ParseSortKey(s)

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			var res listResponse
			if opts.grpcAddr != "" {
				c, closeFn, err := dialCatalog(opts.grpcAddr)
				if err != nil {
					return err
				}
				defer closeFn()
				out, err := c.Query(ctx, &q)
				if err != nil {
					return fmt.Errorf("query: %w", err)
				}
				res = listResponse{Total: out.Total, Items: out.Items}
			} else {
				v := url.Values{}
				if q.Text != "" {
					v.Set("q", q.Text)
				}
				v.Set("faction", string(q.Faction))
				v.Set("rank", string(q.Rank))
				v.Set("technique", string(q.Technique))
				v.Set("sort", string(q.Sort))
				if len(q.Tags) > 0 {
					v.Set("tags", strings.Join(q.Tags, ","))
				}
				if err := doJSON(ctx, opts.client, http.MethodGet, endpoint(opts.baseURL, "/characters", v), "", nil, &res); err != nil {
					return err
				}
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			w := cmd.OutOrStdout()
			for _, c := range res.Items {
				fmt.Fprintf(w, "%-28s %-8s %-24s %s\n", c.Slug, c.Faction, c.Rank, c.Name)
			}
			fmt.Fprintf(w, "%d characters\n", res.Total)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&q.Text, "search", "q", "", "case-insensitive text search")
	f.StringVar(&faction, "faction", "All", "All | Corps | Hashira | Demons")
	f.StringVar(&rank, "rank", "All", "All | Upper Moons | Lower Moons | Hashira | Corps")
	f.StringVar(&tech, "technique", "All", "All | Breathing | Blood Demon Art")
	f.StringSliceVar(&q.Tags, "tag", nil, "match any of these tags (repeatable)")
	f.StringVar(&s, "sort", "Popularity", "Popularity | Name | Rank")
	f.BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <slug>",
		Short: "Show one character with overrides applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			if opts.grpcAddr != "" {
				c, closeFn, err := dialCatalog(opts.grpcAddr)
				if err != nil {
					return err
				}
				defer closeFn()
				out, err := c.GetCharacter(ctx, &grpcserver.GetCharacterRequest{Slug: args[0]})
				if err != nil {
					return fmt.Errorf("get %s: %w", args[0], err)
				}
				return printJSON(cmd.OutOrStdout(), out.Character)
			}

			var rec models.Character
			path := "/characters/" + url.PathEscape(args[0])
			if err := doJSON(ctx, opts.client, http.MethodGet, endpoint(opts.baseURL, path, nil), "", nil, &rec); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
}

func dialCatalog(addr string) (*grpcserver.Client, func(), error) {
	cc, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return grpcserver.NewClient(cc), func() { _ = cc.Close() }, nil
}
