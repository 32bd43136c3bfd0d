// Package checkpoint keeps timestamped weight documents per object and
// takes them automatically when a scene file changes.
package checkpoint

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Faultbox/saveweights/pkg/weights"
)

// DefaultPattern matches every checkpoint in a store.
const DefaultPattern = "**/*.json"

// timeLayout sorts lexically in time order.
const timeLayout = "20060102T150405.000000000Z"

// ErrNoCheckpoint is returned by Latest when an object has no checkpoints.
var ErrNoCheckpoint = errors.New("no checkpoint")

// Store saves documents as <Dir>/<object>/<timestamp>.json.
type Store struct {
	Dir string
	// Keep limits checkpoints per object; older ones are pruned on Save. Zero keeps all.
	Keep int
}

// Entry is one stored checkpoint.
type Entry struct {
	Object string
	Path   string
	Time   time.Time
}

// Save writes doc as a checkpoint taken at the given time.
func (s *Store) Save(doc *weights.Document, at time.Time) (string, error) {
	name := at.UTC().Format(timeLayout) + ".json"
	p := filepath.Join(s.Dir, url.PathEscape(doc.Object), name)
	if err := weights.WriteFile(p, doc, true); err != nil {
		return "", err
	}
	if s.Keep > 0 {
		if err := s.prune(doc.Object); err != nil {
			return p, err
		}
	}
	return p, nil
}

// List returns the checkpoints whose path relative to Dir matches pattern,
// oldest first. An empty pattern matches all of them. A missing Dir holds
// no checkpoints.
func (s *Store) List(pattern string) ([]Entry, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	if _, err := os.Stat(s.Dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(s.Dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.Dir, err)
	}

	var entries []Entry
	for _, m := range matches {
		e, ok := s.parseEntry(m)
		if ok {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Time.Equal(entries[j].Time) {
			return entries[i].Time.Before(entries[j].Time)
		}
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// Find returns the checkpoints of objects whose name matches the doublestar
// glob, oldest first. Names are matched unescaped, so "My Arm" finds the
// object stored under "My%20Arm".
func (s *Store) Find(objectGlob string) ([]Entry, error) {
	if !doublestar.ValidatePattern(objectGlob) {
		return nil, fmt.Errorf("invalid pattern %q: %w", objectGlob, doublestar.ErrBadPattern)
	}
	all, err := s.List(DefaultPattern)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, e := range all {
		if ok, _ := doublestar.Match(objectGlob, e.Object); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Latest returns the newest checkpoint of object.
func (s *Store) Latest(object string) (Entry, error) {
	entries, err := s.objectEntries(object)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w for %s", ErrNoCheckpoint, object)
	}
	return entries[len(entries)-1], nil
}

func (s *Store) objectEntries(object string) ([]Entry, error) {
	all, err := s.List(DefaultPattern)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, e := range all {
		if e.Object == object {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *Store) prune(object string) error {
	entries, err := s.objectEntries(object)
	if err != nil {
		return err
	}
	for len(entries) > s.Keep {
		if err := os.Remove(entries[0].Path); err != nil {
			return fmt.Errorf("pruning checkpoint: %w", err)
		}
		entries = entries[1:]
	}
	return nil
}

// parseEntry decodes a slash-separated path relative to Dir.
func (s *Store) parseEntry(rel string) (Entry, bool) {
	dir, file := path.Split(rel)
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" || strings.Contains(dir, "/") {
		return Entry{}, false
	}
	object, err := url.PathUnescape(dir)
	if err != nil {
		return Entry{}, false
	}
	at, err := time.Parse(timeLayout, strings.TrimSuffix(file, ".json"))
	if err != nil {
		return Entry{}, false
	}
	return Entry{Object: object, Path: filepath.Join(s.Dir, filepath.FromSlash(rel)), Time: at}, true
}
