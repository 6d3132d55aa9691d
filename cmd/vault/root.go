package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

const defaultBaseURL = "http://localhost:8080"

type options struct {
	baseURL   string
	tokenPath string
	grpcAddr  string
	client    *http.Client
}

func newRootCmd() *cobra.Command {
	opts := &options{client: &http.Client{Timeout: 15 * time.Second}}

	root := &cobra.Command{
		Use:           "vault",
		Short:         "Query the character vault and manage image overrides",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.baseURL, "api", defaultBaseURL, "API base URL")
	root.PersistentFlags().StringVar(&opts.tokenPath, "token", defaultTokenPath(), "admin token file path")
	root.PersistentFlags().StringVar(&opts.grpcAddr, "grpc", "", "use the gRPC service at this address instead of HTTP")

	root.AddCommand(
		newQueryCmd(opts),
		newGetCmd(opts),
		newParticlesCmd(),
		newOverrideCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWatchCmd(opts),
	)
	return root
}
