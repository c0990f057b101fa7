package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hujun-open/dashbook/bridge"
)

func newServeCmd() *cobra.Command {
	var (
		sf     styleFlags
		listen string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the indicator over gRPC",
		Long: `Serve the configured indicator over gRPC so that a host in another
process can fetch its draw commands and reconfigure it.

Examples:
  dashbook serve
  dashbook serve --listen 127.0.0.1:40000 --align top`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ind, err := sf.buildIndicator(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return bridge.Serve(ctx, listen, bridge.NewServer(ind))
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&listen, "listen", bridge.DefaultListen, "address to listen on")
	return cmd
}
