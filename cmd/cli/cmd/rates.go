// Package cmd - rates command
package cmd

import (
	"github.com/spf13/cobra"

	"rating-engine/core/output"
)

var ratesFormat string

// ratesCmd prints the active rate table
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Print the state rates and business multipliers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := output.Get(output.Format(formatOrDefault(ratesFormat)))
		if err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		return formatter.RenderTable(cmd.OutOrStdout(), svc.Table())
	},
}

func init() {
	ratesCmd.Flags().StringVarP(&ratesFormat, "format", "f", "", "output format (cli, json)")
}
