package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/verilox/format"
	"github.com/dhamidi/verilox/verilog/parser"
	"github.com/dhamidi/verilox/verilog/workspace"
)

var errParseFailed = errors.New("parse failed")

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string
	var includePositions bool
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and print its syntax tree",
		Long: `Parse a source file incrementally, reading it in chunks, and print the
resulting source_text tree. Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat == "" {
				outputFormat = a.cfg.Format
			}
			if chunkSize <= 0 {
				chunkSize = a.cfg.ChunkSize
			}
			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout(), includePositions)
			if err != nil {
				return err
			}

			r, name, err := openSource(cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			s := parser.NewSourceTextStream(parser.NewSource(name))
			content, err := streamSource(cmd.Context(), r, s, chunkSize)
			if err != nil {
				return reportParseError(cmd, a, outputFormat, content, err)
			}

			if err := enc.Encode(s.Tree()); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: tree, json (default from config)")
	cmd.Flags().BoolVar(&includePositions, "positions", true, "include positions in tree output")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "bytes read per refill (default from config)")

	return cmd
}

// reportParseError prints a parse failure as a diagnostic, or as JSON for
// the json format, and returns errParseFailed. Other errors are returned
// unchanged.
func reportParseError(cmd *cobra.Command, a *app, outputFormat string, content []byte, err error) error {
	var (
		perr   *parser.Error
		unimpl *parser.UnimplementedError
	)
	if !errors.As(err, &perr) && !errors.As(err, &unimpl) {
		return err
	}
	if outputFormat == "json" {
		if werr := format.NewASTJSONEncoder(cmd.OutOrStdout()).EncodeError(err); werr != nil {
			return werr
		}
		return errParseFailed
	}
	colored := format.SetColorMode(a.cfg.Color, os.Stderr)
	p := format.NewDiagnosticPrinter(cmd.ErrOrStderr(), colored)
	if werr := p.Print(workspace.Diagnose(err), content); werr != nil {
		return werr
	}
	return errParseFailed
}
