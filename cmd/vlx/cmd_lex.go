package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/verilox/format"
	"github.com/dhamidi/verilox/verilog/parser"
)

func newLexCmd(a *app) *cobra.Command {
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the white space, comments and identifiers of a file",
		Long: `Split a file into lexical items and print one tab-separated line per
item: production, line:column, byte range and text. Items before a
failure are printed before the failure is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if chunkSize <= 0 {
				chunkSize = a.cfg.ChunkSize
			}
			r, name, err := openSource(cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			s := parser.NewLexicalStream(parser.NewSource(name))
			content, parseErr := streamSource(cmd.Context(), r, s, chunkSize)

			enc := format.NewLineEncoder(cmd.OutOrStdout())
			for _, item := range s.Items() {
				if err := enc.Encode(item); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}
			if parseErr != nil {
				return reportParseError(cmd, a, "tree", content, parseErr)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "bytes read per refill (default from config)")

	return cmd
}
