package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

func newRegisterCmd(cfg *config.Config) *cobra.Command {
	var (
		name          string
		email         string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and print its token",
		Long: `Registers a new user. Missing name or email are prompted for; the
password is read from the terminal without echo, or from stdin with
--password-stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			reader := bufio.NewReader(cmd.InOrStdin())

			var err error
			if name == "" {
				if name, err = GetSimpleText(reader, "Enter name", out); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = GetSimpleText(reader, "Enter email", out); err != nil {
					return err
				}
			}

			var password []byte
			if passwordStdin {
				password, err = readPasswordLine(reader)
			} else {
				password, err = GetPassword(out)
			}
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
			defer cancel()

			token, err := client.NewClient(cfg.ServerAddr, nil).Register(ctx, name, email, password)

			var rej *client.RejectedError
			if errors.As(err, &rej) {
				for _, msg := range rej.Messages {
					fmt.Fprintln(out, msg)
				}
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, token)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")

	return cmd
}
