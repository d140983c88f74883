package main

import (
	"github.com/spf13/cobra"

	"fqc-report-go/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [standard|reduced|file]",
	Short: "Print a keyword catalog as YAML, normalized as the classifier sees it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := catalog.Standard
		if len(args) == 1 {
			name = args[0]
		}
		c, err := catalog.Resolve(name)
		if err != nil {
			return err
		}
		data, err := catalog.Marshal(c)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
