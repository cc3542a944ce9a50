package cmd

import (
	"bytes"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/viant/csvx"
	"github.com/viant/csvx/option"
	"github.com/viant/csvx/record"
	"io"
)

// rewriteCmd represents the rewrite command
var rewriteCmd = &cobra.Command{
	Use:   "rewrite <src url> <dst url>",
	Short: "Rewrite records with another dialect",
	Long: `Rewrite records of src into dst, using the --to-config dialect for output.
The output header is the union of record keys, columns holding only absent cells are dropped.
A .gz suffix on either URL reads or writes gzip compressed data.

Example:
  csvx rewrite --to-config file:///tmp/semicolon.yaml data.csv mem://localhost/out.csv`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFrom(cmd)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd.Context(), cmd, "to-config")
		if err != nil {
			return err
		}
		output, err := csvx.New(option.WithConfig(cfg))
		if err != nil {
			return err
		}
		reader, err := open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer reader.Close()
		records := format.NewRecordReader(reader)
		header, err := records.Header()
		if err != nil && err != io.EOF {
			return err
		}
		var items []*record.Record
		for rec, err := range records.Records() {
			if err != nil {
				return err
			}
			items = append(items, rec)
		}
		buf := &bytes.Buffer{}
		if err = output.WriteRecords(buf, items, header); err != nil {
			return err
		}
		if err = upload(cmd.Context(), args[1], buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rewrote %d records to %v\n", len(items), args[1])
		return nil
	},
}

func init() {
	rewriteCmd.Flags().String("to-config", "", "YAML config URL of the output dialect")
	rootCmd.AddCommand(rewriteCmd)
}
