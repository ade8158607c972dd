package store

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchSeed reloads the FAQ table of st from path whenever the file changes.
// onReload runs after every successful reload. It blocks until ctx is done.
func WatchSeed(ctx context.Context, path string, st Store, onReload func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("seed watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace the file, so watch the directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			seed, err := ReadSeedFile(path)
			if err != nil {
				log.Printf("seed: reload failed: %v", err)
				continue
			}
			if err := st.ReplaceFAQ(ctx, seed.Entries()); err != nil {
				log.Printf("seed: replace faq failed: %v", err)
				continue
			}
			log.Printf("seed: reloaded %d faq entries from %s", len(seed.FAQ), path)
			if onReload != nil {
				onReload()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("seed: watcher error: %v", err)
		}
	}
}
