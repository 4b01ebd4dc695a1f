package main

import "github.com/spf13/cobra"

func configCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration after defaults, the config file and LAYOUTKIT_*
environment overrides are applied. The output is a valid layoutkit.toml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*f)
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
