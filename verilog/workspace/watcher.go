package workspace

import (
	"context"
	"os"
	"time"
)

// Event describes a change the watcher applied to the workspace. File is nil
// when the path was removed.
type Event struct {
	Path string
	File *FileInfo
}

// FileWatcher polls the workspace root and re-parses files whose
// modification time changed.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	doneCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(Event)
}

func NewFileWatcher(w *Workspace, interval time.Duration, onChange func(Event)) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	if onChange == nil {
		onChange = func(Event) {}
	}
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
		onChange:     onChange,
	}
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

// Stop ends polling and waits for the current scan to finish.
func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
	<-fw.doneCh
}

func (fw *FileWatcher) run() {
	defer close(fw.doneCh)
	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-fw.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	fw.scan(ctx)
	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.scan(ctx)
		}
	}
}

func (fw *FileWatcher) scan(ctx context.Context) {
	paths, err := fw.workspace.Walk(ctx)
	if err != nil {
		log.Errorf("watch %s: %s", fw.workspace.RootDir(), err)
		return
	}

	current := make(map[string]bool, len(paths))
	for _, path := range paths {
		current[path] = true
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		lastMod, known := fw.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			continue
		}
		fw.modTimes[path] = info.ModTime()
		if err := fw.workspace.ScanFile(ctx, path); err != nil {
			log.Errorf("%s", err)
			continue
		}
		fw.onChange(Event{Path: path, File: fw.workspace.GetFile(path)})
	}

	for path := range fw.modTimes {
		if !current[path] {
			delete(fw.modTimes, path)
			fw.workspace.RemoveFile(path)
			fw.onChange(Event{Path: path})
		}
	}
}
