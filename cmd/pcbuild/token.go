package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"pcbuild/internal/auth"
)

func newTokenCmd(a *app) *cobra.Command {
	var subject string
	var scopes []string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		Long: `Mint a bearer token signed with JWT_SECRET. The API only checks tokens
when JWT_SECRET is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.JWTSecret == "" {
				return eris.New("JWT_SECRET is not set")
			}
			token, err := auth.GenerateToken([]byte(a.cfg.JWTSecret), subject, scopes, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "token subject, e.g. the client name")
	cmd.Flags().StringSliceVar(&scopes, "scope", []string{auth.ScopeGenerate}, "granted scopes")
	cmd.Flags().DurationVar(&ttl, "ttl", auth.DefaultTTL, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
