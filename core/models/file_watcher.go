package models

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

// FileWatcher is the state of a metadata directory watch. OnChange receives
// the paths that changed since the last debounced run.
type FileWatcher struct {
	Watcher       *fsnotify.Watcher
	RootDir       string
	Extensions    []string
	Debounce      time.Duration
	DebounceTimer *time.Timer
	Pending       map[string]struct{}
	Mutex         sync.Mutex
	OnStart       func() error
	OnChange      func(paths []string) error
	OnClose       func() error
}

func NewFileWatcher(rootDir string, extensions []string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &FileWatcher{
		Watcher:    watcher,
		RootDir:    rootDir,
		Extensions: extensions,
		Debounce:   DefaultDebounce,
		Pending:    make(map[string]struct{}),
		OnStart:    func() error { return nil },
		OnChange:   func([]string) error { return fmt.Errorf("OnChange not set") },
		OnClose:    func() error { return nil },
	}, nil
}

func (fw *FileWatcher) AddOnStartFunc(onStart func() error) {
	fw.OnStart = onStart
}

func (fw *FileWatcher) AddOnChangeFunc(onChange func(paths []string) error) {
	fw.OnChange = onChange
}

func (fw *FileWatcher) AddOnCloseFunc(onClose func() error) {
	fw.OnClose = onClose
}
