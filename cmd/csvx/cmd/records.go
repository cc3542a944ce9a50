package cmd

import (
	"github.com/francoispqt/gojay"
	"github.com/spf13/cobra"
)

// recordsCmd represents the records command
var recordsCmd = &cobra.Command{
	Use:   "records <url>",
	Short: "Print every data row as a JSON object keyed by header path",
	Long: `Print every data row as a JSON object keyed by header path.
Cells equal to the configured default value are absent and omitted.

Example:
  csvx records file:///tmp/vehicles.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFrom(cmd)
		if err != nil {
			return err
		}
		reader, err := open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer reader.Close()
		enc := gojay.NewEncoder(cmd.OutOrStdout())
		for rec, err := range format.NewRecordReader(reader).Records() {
			if err != nil {
				return err
			}
			if err = writeLine(enc, rec); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
}
