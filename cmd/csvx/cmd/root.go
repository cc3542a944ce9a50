package cmd

import (
	"bytes"
	"context"
	"fmt"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/csvx"
	"github.com/viant/csvx/config"
	"github.com/viant/csvx/option"
	"io"
	"os"
	"strings"
)

type formatKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "csvx",
	Short: "csvx - inspect and rewrite hierarchical CSV",
	Long: `csvx reads CSV files whose header columns are dotted paths of a flattened
value tree. Input and output locations are URLs: local paths, file://, mem://, s3:// or gs://.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context(), cmd, "config")
		if err != nil {
			return err
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		logger := csvx.NewLogger(os.Stderr, cfg.Logging)
		format, err := csvx.New(option.WithConfig(cfg), option.WithLogger(logger.Logger))
		if err != nil {
			return err
		}
		cmd.SetContext(context.WithValue(cmd.Context(), formatKey{}, format))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML config URL")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
}

func loadConfig(ctx context.Context, cmd *cobra.Command, flag string) (*config.Config, error) {
	URL, _ := cmd.Flags().GetString(flag)
	if URL == "" {
		return config.Default(), nil
	}
	return config.Load(ctx, URL)
}

func formatFrom(cmd *cobra.Command) (*csvx.Format, error) {
	format, ok := cmd.Context().Value(formatKey{}).(*csvx.Format)
	if !ok {
		return nil, fmt.Errorf("format not found in context")
	}
	return format, nil
}

// gzipReader closes both the decompressor and its source
type gzipReader struct {
	*gzip.Reader
	source io.Closer
}

func (r *gzipReader) Close() error {
	err := r.Reader.Close()
	if sourceErr := r.source.Close(); err == nil {
		err = sourceErr
	}
	return err
}

// open opens URL, a .gz suffix is decompressed on the fly
func open(ctx context.Context, URL string) (io.ReadCloser, error) {
	reader, err := afs.New().OpenURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %v: %w", URL, err)
	}
	if !isGzip(URL) {
		return reader, nil
	}
	decompressor, err := gzip.NewReader(reader)
	if err != nil {
		_ = reader.Close()
		return nil, fmt.Errorf("failed to decompress %v: %w", URL, err)
	}
	return &gzipReader{Reader: decompressor, source: reader}, nil
}

// upload writes data to URL, a .gz suffix is compressed
func upload(ctx context.Context, URL string, data []byte) error {
	if isGzip(URL) {
		buf := &bytes.Buffer{}
		writer := gzip.NewWriter(buf)
		if _, err := writer.Write(data); err != nil {
			return err
		}
		if err := writer.Close(); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	if err := afs.New().Upload(ctx, URL, 0644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload %v: %w", URL, err)
	}
	return nil
}

func isGzip(URL string) bool {
	return strings.HasSuffix(URL, ".gz")
}
