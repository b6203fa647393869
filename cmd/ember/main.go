package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ember",
		Short:         "Real-time frame loop engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultConfig := "config/ember.toml"
	if p := os.Getenv("EMBER_CONFIG"); p != "" {
		defaultConfig = p
	}
	root.PersistentFlags().String("config", defaultConfig, "path to the TOML config (created with defaults when missing)")

	root.AddCommand(newRunCmd(), newCheckSceneCmd())
	return root
}
