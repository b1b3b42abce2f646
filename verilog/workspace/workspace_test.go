package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/verilox/config"
	"github.com/dhamidi/verilox/verilog/parser"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func smallChunks() *config.Config {
	cfg := config.Default()
	cfg.ChunkSize = 3
	return cfg
}

func TestScanAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "clean.sv"), "// header only\n/* and a block */\n")
	writeFile(t, filepath.Join(root, "rtl", "top.v"), "\nmodule top;\nendmodule\n")
	writeFile(t, filepath.Join(root, "rtl", "broken.svh"), "  /* never closed")
	writeFile(t, filepath.Join(root, "notes.txt"), "module ignored;")
	writeFile(t, filepath.Join(root, ".git", "x.sv"), "module hidden;")
	writeFile(t, filepath.Join(root, "gen", "out.sv"), "module generated;")
	writeFile(t, filepath.Join(root, ".gitignore"), "gen/\n")

	ws := New(root, smallChunks())
	require.NoError(t, ws.ScanAll(context.Background()))

	files := ws.Files()
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(root, "clean.sv"), files[0].Path)
	assert.Equal(t, filepath.Join(root, "rtl", "broken.svh"), files[1].Path)
	assert.Equal(t, filepath.Join(root, "rtl", "top.v"), files[2].Path)

	clean := files[0]
	require.NoError(t, clean.ParseErr)
	require.NotNil(t, clean.Tree)
	assert.Len(t, clean.Tree.Items, 4)
	assert.Empty(t, clean.Diagnostics)
	assert.Equal(t, "// header only\n/* and a block */\n", string(clean.Content))

	broken := files[1]
	assert.Nil(t, broken.Tree)
	require.Len(t, broken.Diagnostics, 1)
	d := broken.Diagnostics[0]
	assert.Equal(t, SeverityError, d.Severity)
	assert.Equal(t, parser.KindBlockComment, d.Kind)
	assert.Equal(t, 3, d.Loc.Column)
	assert.Equal(t, "A.9.2 Comments DEF: 2", d.Citation)
	assert.Len(t, broken.Items, 2, "white space before the comment is kept")

	top := files[2]
	require.Len(t, top.Diagnostics, 1)
	assert.Equal(t, SeverityInfo, top.Diagnostics[0].Severity)
	assert.Equal(t, parser.KindDescription, top.Diagnostics[0].Kind)
	assert.Equal(t, 2, top.Diagnostics[0].Loc.Line)
	assert.True(t, parser.IsUnimplemented(top.ParseErr))

	assert.Len(t, ws.Diagnostics(), 2)
}

func TestScanAllMissingRoot(t *testing.T) {
	ws := New(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, ws.ScanAll(context.Background()))
}

func TestScanAllCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.sv"), " ")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(root, nil).ScanAll(ctx)
	assert.True(t, errors.Is(err, context.Canceled), "err = %v", err)
}

func TestUpdateAndRemoveFile(t *testing.T) {
	ws := New(t.TempDir(), nil)
	info := ws.UpdateFile("buf.sv", []byte("\t// ok"))
	require.NoError(t, info.ParseErr)
	assert.Same(t, info, ws.GetFile("buf.sv"))

	info = ws.UpdateFile("buf.sv", []byte("/x"))
	require.Error(t, info.ParseErr)
	assert.Equal(t, parser.KindOneLineComment, info.Diagnostics[0].Kind)

	ws.RemoveFile("buf.sv")
	assert.Nil(t, ws.GetFile("buf.sv"))
	assert.Empty(t, ws.Files())
}

func TestConcurrentUpdates(t *testing.T) {
	ws := New(t.TempDir(), nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			path := filepath.Join("buf", string(rune('a'+i))+".sv")
			ws.UpdateFile(path, []byte("// x\n"))
			ws.Files()
		}()
	}
	wg.Wait()
	assert.Len(t, ws.Files(), 8)
}

func TestDiagnoseOtherErrors(t *testing.T) {
	d := Diagnose(errors.New("boom"))
	assert.Equal(t, SeverityError, d.Severity)
	assert.Equal(t, "boom", d.Message)
	assert.Empty(t, d.Citation)

	d = Diagnose(&parser.IncompleteError{Kind: parser.KindBlockComment, Needed: 2})
	assert.Equal(t, "block_comment: input ended early", d.Message)
}

func TestFileWatcher(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.sv")
	writeFile(t, path, "// one\n")

	ws := New(root, nil)
	var events []Event
	fw := NewFileWatcher(ws, time.Hour, func(e Event) { events = append(events, e) })
	ctx := context.Background()

	fw.scan(ctx)
	require.Len(t, events, 1)
	assert.Equal(t, path, events[0].Path)
	require.NotNil(t, events[0].File)

	fw.scan(ctx)
	assert.Len(t, events, 1, "unchanged files are not re-parsed")

	writeFile(t, path, "/x")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	fw.scan(ctx)
	require.Len(t, events, 2)
	assert.Error(t, events[1].File.ParseErr)

	require.NoError(t, os.Remove(path))
	fw.scan(ctx)
	require.Len(t, events, 3)
	assert.Nil(t, events[2].File)
	assert.Nil(t, ws.GetFile(path))
}

func TestFileWatcherStartStop(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.sv"), " ")
	seen := make(chan Event, 1)
	fw := NewFileWatcher(New(root, nil), time.Hour, func(e Event) {
		select {
		case seen <- e:
		default:
		}
	})
	fw.Start()
	select {
	case e := <-seen:
		assert.Equal(t, filepath.Join(root, "a.sv"), e.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("initial scan did not report the file")
	}
	fw.Stop()
}
