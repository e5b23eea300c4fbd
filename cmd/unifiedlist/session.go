package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"unifiedlist/internal/auth"
	"unifiedlist/internal/config"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	var apiURL string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force && fileExists(opts.configPath) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
			}
			cfg := config.Default()
			if apiURL != "" {
				cfg.APIURL = strings.TrimRight(apiURL, "/")
			}
			if err := config.Save(opts.configPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().StringVar(&apiURL, "endpoint", "", "resource endpoint written as api_url")
	return cmd
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a bearer token (from --token or the first line of stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if token == "" {
				sc := bufio.NewScanner(cmd.InOrStdin())
				sc.Buffer(make([]byte, 0, 4096), 64<<10)
				if sc.Scan() {
					token = sc.Text()
				}
				if err := sc.Err(); err != nil {
					return fmt.Errorf("read token: %w", err)
				}
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("no token given")
			}
			store := tokenStore(cfg)
			if err := store.Save(token); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "token stored in %s\n", store.Path())
			if c, ok := auth.Inspect(token); ok {
				if c.Subject != "" {
					fmt.Fprintf(out, "subject: %s\n", c.Subject)
				}
				if !c.ExpiresAt.IsZero() {
					fmt.Fprintf(out, "expires: %s\n", c.ExpiresAt.Format(time.RFC3339))
				}
				if c.Expired(time.Now()) {
					fmt.Fprintln(out, "warning: token is already expired")
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "bearer token")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			store := tokenStore(cfg)
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", store.Path())
			return nil
		},
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
