// Copyright (c) 2026 Dynamo Run and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command svcconf inspects the service configuration delivered through
// the DYNAMO_SERVICE_CONFIG environment variable.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dynamo-run/svcconf"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	err := rootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "svcconf",
		Short:        "Inspect service configuration from " + svcconf.EnvVar,
		SilenceUsage: true,
	}
	root.AddCommand(
		servicesCmd(),
		configCmd(),
		argsCmd(),
		requireCmd(),
	)
	return root
}

func servicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List configured service names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range svcconf.FromEnv().Services() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "config <service>",
		Short: "Print the effective configuration for a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := svcconf.FromEnv().ParsedConfig(args[0])

			var (
				b   []byte
				err error
			)
			switch output {
			case "json":
				b, err = json.MarshalIndent(cfg, "", "  ")
			case "yaml":
				b, err = yaml.Marshal(cfg.Map())
			default:
				return fmt.Errorf("unsupported output format: %s", output)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format, json or yaml")
	return cmd
}

func argsCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "args <service>",
		Short: "Print the command line arguments projected from a service's configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, tok := range svcconf.FromEnv().Args(args[0], prefix) {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only project keys with this prefix, stripping it from flag names")
	return cmd
}

func requireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "require <service> <key>",
		Short: "Print a mandatory configuration value, failing if it is absent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := svcconf.FromEnv().Require(args[0], args[1])
			if err != nil {
				return err
			}

			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
