// Package cli implements the gophauth command line client with cobra.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

const Version = "0.1.0"

// NewRootCmd builds the command tree. Flags override values already loaded
// into cfg.
func NewRootCmd(cfg *config.Config, in io.Reader, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gophauth-client",
		Short:         "Client for the gophauth registration server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.PersistentFlags().StringVarP(&cfg.ServerAddr, "address", "a", cfg.ServerAddr, "Server base URL")
	cmd.PersistentFlags().DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "Request timeout")

	cmd.AddCommand(newRegisterCmd(cfg))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gophauth-client version %s\n", Version)
		},
	})

	return cmd
}
