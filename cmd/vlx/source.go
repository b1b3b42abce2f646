package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/verilox/verilog/parser"
)

// openSource opens path, or standard input when path is "-".
func openSource(cmd *cobra.Command, path string) (io.ReadCloser, string, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), "<stdin>", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	return f, path, nil
}

// streamSource feeds r through s and returns every byte read. The error is
// the first parse failure or read error.
func streamSource(ctx context.Context, r io.Reader, s *parser.Stream, chunkSize int) ([]byte, error) {
	var content bytes.Buffer
	err := parser.Drive(ctx, io.TeeReader(r, &content), s, chunkSize)
	return content.Bytes(), err
}
