// Package workspace keeps the parse results of a tree of Verilog sources.
package workspace

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/verilox/config"
	"github.com/dhamidi/verilox/verilog/parser"
)

var log = commonlog.GetLogger("verilox.workspace")

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	cfg     *config.Config
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path    string
	Content []byte
	// Tree is nil when parsing failed.
	Tree *parser.SourceText
	// Items holds what was parsed before a failure.
	Items       []parser.Node
	ParseErr    error
	Diagnostics []Diagnostic
}

func New(rootDir string, cfg *config.Config) *Workspace {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Workspace{
		rootDir: rootDir,
		cfg:     cfg,
		files:   make(map[string]*FileInfo),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) Config() *config.Config {
	return w.cfg
}

// Walk lists the source files under the root, skipping excluded names,
// hidden directories and anything matched by the root's .gitignore.
func (w *Workspace) Walk(ctx context.Context) ([]string, error) {
	var ignore *gitignore.GitIgnore
	if ig, err := gitignore.CompileIgnoreFile(filepath.Join(w.rootDir, ".gitignore")); err == nil {
		ignore = ig
	}

	var paths []string
	err := filepath.WalkDir(w.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == w.rootDir {
				return err
			}
			log.Warningf("skipping %s: %s", path, err)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != w.rootDir && (w.cfg.Excluded(name) || len(name) > 1 && name[0] == '.') {
				return filepath.SkipDir
			}
			return nil
		}
		if !w.cfg.Matches(path) || w.cfg.Excluded(name) {
			return nil
		}
		if ignore != nil {
			if rel, err := filepath.Rel(w.rootDir, path); err == nil && ignore.MatchesPath(rel) {
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// ScanAll parses every source file under the root in parallel. Parse
// failures are recorded on the files; only I/O errors and cancellation are
// returned.
func (w *Workspace) ScanAll(ctx context.Context) error {
	paths, err := w.Walk(ctx)
	if err != nil {
		return fmt.Errorf("walk %s: %w", w.rootDir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.NumCPU(), 1))
	for _, path := range paths {
		g.Go(func() error {
			return w.ScanFile(ctx, path)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Infof("scanned %d file(s) under %s", len(paths), w.rootDir)
	return nil
}

// ScanFile streams path through the parser and records the result.
func (w *Workspace) ScanFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := w.parse(ctx, path, f)
	if err != nil {
		return err
	}
	w.store(info)
	return nil
}

// UpdateFile parses content held in memory, such as an editor buffer.
func (w *Workspace) UpdateFile(path string, content []byte) *FileInfo {
	info, err := w.parse(context.Background(), path, bytes.NewReader(content))
	if err != nil {
		// bytes.Reader never fails, so this is a bug in the stream.
		info = &FileInfo{Path: path, Content: content, ParseErr: err, Diagnostics: []Diagnostic{Diagnose(err)}}
	}
	w.store(info)
	return info
}

func (w *Workspace) parse(ctx context.Context, path string, r io.Reader) (*FileInfo, error) {
	var content bytes.Buffer
	s := parser.NewSourceTextStream(parser.NewSource(path))
	err := parser.Drive(ctx, io.TeeReader(r, &content), s, w.cfg.ChunkSize)
	if err != nil && !isParseError(err) {
		return nil, err
	}

	info := &FileInfo{
		Path:     path,
		Content:  content.Bytes(),
		Tree:     s.Tree(),
		Items:    s.Items(),
		ParseErr: err,
	}
	if err != nil {
		log.Debugf("%s", err)
		info.Diagnostics = []Diagnostic{Diagnose(err)}
	}
	return info, nil
}

func (w *Workspace) store(info *FileInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[info.Path] = info
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns every known file ordered by path.
func (w *Workspace) Files() []*FileInfo {
	w.mu.RLock()
	files := make([]*FileInfo, 0, len(w.files))
	for _, f := range w.files {
		files = append(files, f)
	}
	w.mu.RUnlock()

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// Diagnostics returns the diagnostics of every file ordered by path.
func (w *Workspace) Diagnostics() []Diagnostic {
	var all []Diagnostic
	for _, f := range w.Files() {
		all = append(all, f.Diagnostics...)
	}
	return all
}
