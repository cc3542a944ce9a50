package cmd

import (
	"github.com/francoispqt/gojay"
	"github.com/spf13/cobra"
)

// headerCmd represents the header command
var headerCmd = &cobra.Command{
	Use:   "header <url>",
	Short: "Print the header row as a JSON array",
	Args:  cobra.ExactArgs(1),
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
		header, err := format.NewRecordReader(reader).Header()
		if err != nil {
			return err
		}
		return writeLine(gojay.NewEncoder(cmd.OutOrStdout()), jsonRow(header))
	},
}

func init() {
	rootCmd.AddCommand(headerCmd)
}
