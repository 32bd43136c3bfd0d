package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/saveweights/pkg/mesh"
	"github.com/Faultbox/saveweights/pkg/weights"
)

// Watcher captures a checkpoint of one object every time its scene file is
// rewritten and the object's weights differ from the last checkpoint.
type Watcher struct {
	ScenePath string
	// Object to capture; empty means the scene's active object.
	Object   string
	Store    *Store
	Debounce time.Duration
	Logger   *zap.Logger

	// OnCheckpoint, if set, is called after each saved checkpoint.
	OnCheckpoint func(path string, doc *weights.Document)

	last *weights.Document
}

// Run takes a baseline checkpoint and then watches the scene until ctx is
// done. Unreadable scenes are logged and skipped, since editors may leave
// a partially written file behind for a moment.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.Logger
	if log == nil {
		log = zap.NewNop()
	}
	target, err := filepath.Abs(w.ScenePath)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory; atomic saves replace the file and would drop a
	// watch on the file itself.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	w.checkpoint(log)

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("scene changed", zap.String("event", event.Op.String()))
			debounce.Reset(w.Debounce)

		case <-debounce.C:
			w.checkpoint(log)

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			log.Error("fsnotify error", zap.Error(err))
		}
	}
}

func (w *Watcher) checkpoint(log *zap.Logger) {
	doc, err := w.capture()
	if err != nil {
		log.Warn("skipping checkpoint", zap.Error(err))
		return
	}
	log = log.With(zap.String("object", doc.Object))

	if w.last == nil {
		if e, err := w.Store.Latest(doc.Object); err == nil {
			if prev, err := weights.ReadFile(e.Path); err == nil {
				w.last = prev
			}
		}
	}
	if w.last != nil && w.last.Equal(doc) {
		log.Debug("weights unchanged, no checkpoint")
		return
	}

	path, err := w.Store.Save(doc, time.Now())
	if err != nil {
		log.Error("saving checkpoint", zap.Error(err))
		return
	}
	w.last = doc
	log.Info("checkpoint saved", zap.String("path", path), zap.Int("groups", len(doc.Groups)))
	if w.OnCheckpoint != nil {
		w.OnCheckpoint(path, doc)
	}
}

func (w *Watcher) capture() (*weights.Document, error) {
	scene, err := mesh.LoadScene(w.ScenePath)
	if err != nil {
		return nil, err
	}
	name := w.Object
	if name == "" {
		name = scene.Active
	}
	obj, ok := scene.Object(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", weights.ErrObjectNotFound, name)
	}
	return weights.Capture(obj)
}
