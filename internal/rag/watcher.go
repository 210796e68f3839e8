package rag

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of write events a single file copy
// produces into one ingestion.
const debounceDelay = 500 * time.Millisecond

// Watch monitors dir and calls onChange for created or modified files that
// pass the match filter, debounced per path, and onRemove for deleted or
// renamed-away ones. onRemove may be nil. It blocks until ctx is cancelled.
func Watch(ctx context.Context, dir string, match func(string) bool, onChange, onRemove func(string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	log.Printf("RAG: watching %s for new documents", dir)

	var mu sync.Mutex
	timers := make(map[string]*time.Timer)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !match(event.Name) {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if onRemove != nil {
					onRemove(event.Name)
				}
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			path := event.Name
			mu.Lock()
			if t, exists := timers[path]; exists {
				t.Reset(debounceDelay)
			} else {
				timers[path] = time.AfterFunc(debounceDelay, func() {
					mu.Lock()
					delete(timers, path)
					mu.Unlock()
					onChange(path)
				})
			}
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("RAG: watch error: %v", err)
		}
	}
}
