package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hankinsohl/fgdb/pkg/config"
	"github.com/hankinsohl/fgdb/pkg/constants"
)

func configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:         "init [path]",
		Short:       "Write a starter configuration file",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := constants.ConfigFileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	})
	return cmd
}
