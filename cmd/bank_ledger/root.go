package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "bank_ledger",
		Short:         "Bank account ledger service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "optional config file (yaml, json or toml)")

	cmd.AddCommand(newServeCmd(opts), newDemoCmd(opts))
	return cmd
}
