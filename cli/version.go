package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/hujun-open/dashbook/conf"
	"github.com/hujun-open/dashbook/mainwindow"
)

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, versionString())
				return
			}
			fmt.Fprintf(out, "dashbook %s\n", versionString())
			fmt.Fprintf(out, "go: %s\n", runtime.Version())
			fmt.Fprintf(out, "os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "config: %s\n", conf.ConfDir())
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

func versionString() string {
	v := mainwindow.VERSION
	if v == "" {
		return "internal"
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}
