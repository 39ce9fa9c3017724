package cli

import (
	"github.com/spf13/cobra"

	"github.com/TanTanDev/shrubbery/pkg/config"
)

// presetCommand creates the preset command.
func (c *CLI) presetCommand() *cobra.Command {
	var (
		format string
		from   string
	)

	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Print a preset",
		Long: `Print the default preset, or the effective preset of a file after defaults
are applied. The output can be edited and passed back with grow --config.`,
		Example: `  shrubbery preset > bush.toml
  shrubbery preset --format yaml --from bush.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			p, err := loadPreset(from)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), p, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatTOML), "output format: toml, yaml or json")
	cmd.Flags().StringVar(&from, "from", "", "preset file to normalize instead of the default")

	return cmd
}
