package cmd

import (
	"github.com/francoispqt/gojay"
	"github.com/spf13/cobra"
	"github.com/viant/csvx/row"
)

// jsonRow renders row cells as a JSON array
type jsonRow []string

func (r jsonRow) MarshalJSONArray(enc *gojay.Encoder) {
	for _, cell := range r {
		enc.String(cell)
	}
}

func (r jsonRow) IsNil() bool {
	return r == nil
}

// rowsCmd represents the rows command
var rowsCmd = &cobra.Command{
	Use:   "rows <url>",
	Short: "Print every row, header included, as a JSON array per line",
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
		enc := gojay.NewEncoder(cmd.OutOrStdout())
		for cells, err := range row.NewReader(reader, format.Config().Row()).Rows() {
			if err != nil {
				return err
			}
			if err = writeLine(enc, jsonRow(cells)); err != nil {
				return err
			}
		}
		return nil
	},
}

func writeLine(enc *gojay.Encoder, value interface{}) error {
	var err error
	switch actual := value.(type) {
	case gojay.MarshalerJSONArray:
		err = enc.EncodeArray(actual)
	case gojay.MarshalerJSONObject:
		err = enc.EncodeObject(actual)
	}
	if err != nil {
		return err
	}
	enc.AppendByte('\n')
	_, err = enc.Write()
	return err
}

func init() {
	rootCmd.AddCommand(rowsCmd)
}
