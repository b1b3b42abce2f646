package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/verilox/format"
	"github.com/dhamidi/verilox/verilog/workspace"
)

func newCheckCmd(a *app) *cobra.Command {
	var outputFormat string
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Parse every source file under a path and report diagnostics",
		Long: `Parse every source file under path (default: the working directory)
and report the failures. Files are selected by the configured extensions;
excluded names, hidden directories and .gitignore matches are skipped.

With --watch the tree is polled and changed files are reported again until
interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			if outputFormat != "human" && outputFormat != "sarif" {
				return fmt.Errorf("unknown format %q (expected human or sarif)", outputFormat)
			}
			if watch && outputFormat == "sarif" {
				return fmt.Errorf("--watch only supports human output")
			}

			ws := workspace.New(root, a.cfg)
			colored := format.SetColorMode(a.cfg.Color, os.Stdout)
			p := format.NewDiagnosticPrinter(cmd.OutOrStdout(), colored)
			if watch {
				return watchWorkspace(cmd.Context(), ws, p, interval)
			}

			if info, err := os.Stat(root); err == nil && !info.IsDir() {
				if err := ws.ScanFile(cmd.Context(), root); err != nil {
					return err
				}
			} else if err := ws.ScanAll(cmd.Context()); err != nil {
				return err
			}

			if outputFormat == "sarif" {
				return writeSARIF(cmd, ws)
			}

			files := ws.Files()
			for _, f := range files {
				for _, d := range f.Diagnostics {
					if err := p.Print(d, f.Content); err != nil {
						return err
					}
				}
			}
			diagnostics := ws.Diagnostics()
			if err := p.PrintSummary(len(files), diagnostics); err != nil {
				return err
			}
			if n := countErrors(diagnostics); n > 0 {
				return fmt.Errorf("%d error(s)", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "human", "output format: human, sarif")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling for changes")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll interval for --watch")

	return cmd
}

func writeSARIF(cmd *cobra.Command, ws *workspace.Workspace) error {
	report := format.NewSARIFReport(version)
	for _, f := range ws.Files() {
		for _, d := range f.Diagnostics {
			report.AddDiagnostic(f.Path, f.Content, d)
		}
	}
	data, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("encode sarif: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// watchWorkspace reports every file as it is first parsed and again after
// each change, until ctx is done or the process is interrupted.
func watchWorkspace(ctx context.Context, ws *workspace.Workspace, p *format.DiagnosticPrinter, interval time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	changes := make(chan workspace.Event, 16)
	fw := workspace.NewFileWatcher(ws, interval, func(e workspace.Event) {
		select {
		case changes <- e:
		case <-ctx.Done():
		}
	})
	fw.Start()
	defer fw.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-changes:
			if e.File == nil {
				log.Infof("%s removed", e.Path)
				continue
			}
			for _, d := range e.File.Diagnostics {
				if err := p.Print(d, e.File.Content); err != nil {
					return err
				}
			}
		}
	}
}

func countErrors(ds []workspace.Diagnostic) int {
	n := 0
	for _, d := range ds {
		if d.Severity == workspace.SeverityError {
			n++
		}
	}
	return n
}
