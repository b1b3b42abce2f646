package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/verilox/verilog/annex"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect the Annex A grammar implemented by the parser",
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarPrintCmd())
	cmd.AddCommand(newGrammarListCmd())
	cmd.AddCommand(newGrammarTokenizeCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file",
		Long: `Without a file, verify the embedded Annex A grammar and check it against
the production registry. With a file, parse and verify that grammar.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if err := annex.Verify(); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return errors.New("grammar check failed")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}

			filename := args[0]
			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			grammar, err := ebnf.Parse(filename, f)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return errors.New("grammar check failed")
			}
			if startProduction != "" {
				if err := ebnf.Verify(grammar, startProduction); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return errors.New("grammar check failed")
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the embedded grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(annex.Source())
			return err
		},
	}
}

func newGrammarListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered productions and their citations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range annex.Productions() {
				citation := p.Citation()
				if citation == "" {
					citation = "-"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.Name, citation); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newGrammarTokenizeCmd() *cobra.Command {
	var productions []string

	cmd := &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Split a file using the grammar productions directly",
		Long: `Split a file into tokens by matching grammar productions against it,
longest match first, without going through the parser. Bytes that match
no production are printed as ERROR tokens. Repetitions never backtrack, so
productions like block_comment are not recognized.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := openSource(cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()
			input, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			g, err := annex.Load()
			if err != nil {
				return fmt.Errorf("parse grammar: %w", err)
			}
			for _, name := range productions {
				if _, ok := g[name]; !ok {
					return fmt.Errorf("unknown production %q", name)
				}
			}

			for _, tok := range annex.NewMatcher(g, input).Tokenize(productions...) {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), tok); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&productions, "production", "p", []string{"white_space", "identifier"}, "productions to match, in priority order")

	return cmd
}

// printErrors writes one line per error, expanding the error lists returned
// by the ebnf package and errors.Join.
func printErrors(w io.Writer, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			printErrors(w, e)
		}
		return
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
		return
	}
	if inner := errors.Unwrap(err); inner != nil && reflect.ValueOf(inner).Kind() == reflect.Slice {
		printErrors(w, inner)
		return
	}
	fmt.Fprintln(w, err)
}
