package scenefile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/achilleasa/ptlive/log"
	"github.com/fsnotify/fsnotify"
)

var logger = log.New("scenefile")

// Events closer together than this are coalesced into a single reload.
const settleDelay = 50 * time.Millisecond

// Watch a local description file and call fn with the re-parsed description
// every time it changes. Parse failures are reported through fn as well.
// Watch blocks until ctx is cancelled.
//
// The parent directory is watched so that editors which replace the file on
// save are handled.
func Watch(ctx context.Context, path string, fn func(*Description, error)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("scenefile: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scenefile: %w", err)
	}
	defer watcher.Close()

	if err = watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("scenefile: watching %s: %w", path, err)
	}
	logger.Infof("watching %s for changes", absPath)

	var (
		settle  = time.NewTimer(settleDelay)
		pending bool
	)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			settle.Reset(settleDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warningf("watcher error: %v", err)
		case <-settle.C:
			if !pending {
				continue
			}
			pending = false
			desc, err := Load(ctx, absPath)
			fn(desc, err)
		}
	}
}
