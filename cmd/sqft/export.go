package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmtegi-hash/square-foot-calculator-clean/internal/export"
)

func newExportCmd(opts *options) *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the report as CSV or XLSX",
		Long: `Write grouped rooms, ordered stairs and totals to a file.

The format follows the output extension unless --format is given.

Examples:
  sqft export -p house.yaml -o house.csv
  sqft export -p house.yaml -o report --format xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			if format == "" {
				format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
			}

			p, err := opts.load()
			if err != nil {
				return err
			}
			report := p.Report()

			var data []byte
			switch format {
			case "csv":
				var buf bytes.Buffer
				if err := export.WriteCSV(&buf, report); err != nil {
					return fmt.Errorf("render csv: %w", err)
				}
				data = buf.Bytes()
			case "xlsx":
				data, err = export.XLSX(report)
				if err != nil {
					return fmt.Errorf("render xlsx: %w", err)
				}
			default:
				return fmt.Errorf("unsupported format %q (use csv or xlsx)", format)
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rooms, %d stairs)\n", output, len(report.Rooms.Grouped), len(report.Stairs.Ordered))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "csv or xlsx (default: from the output extension)")
	return cmd
}
