package checkpoint

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/saveweights/pkg/math"
	"github.com/Faultbox/saveweights/pkg/mesh"
	"github.com/Faultbox/saveweights/pkg/weights"
)

func writeScene(t *testing.T, path string, weight float32) {
	t.Helper()
	s := mesh.NewScene()
	o := mesh.NewObject("Body", math.Vec3{}, math.Vec3{X: 1})
	require.NoError(t, s.Add(o))
	s.Active = "Body"

	m := o.Begin()
	g, err := m.NewGroup("Spine")
	require.NoError(t, err)
	require.NoError(t, m.Assign(g.Index, []int{0}, weight, weights.AssignReplace))
	require.NoError(t, m.Commit())
	require.NoError(t, s.Save(path))
}

func TestWatcherCheckpointsOnChange(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.yaml")
	writeScene(t, scenePath, 0.5)

	saved := make(chan *weights.Document, 10)
	w := &Watcher{
		ScenePath: scenePath,
		Store:     &Store{Dir: filepath.Join(dir, "checkpoints")},
		Debounce:  20 * time.Millisecond,
		OnCheckpoint: func(_ string, doc *weights.Document) {
			saved <- doc
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	next := func() *weights.Document {
		select {
		case doc := <-saved:
			return doc
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for checkpoint")
			return nil
		}
	}

	baseline := next()
	assert.Equal(t, "Body", baseline.Object)
	assert.Equal(t, map[int]float32{0: 0.5}, baseline.Groups[0].Weights)

	writeScene(t, scenePath, 0.75)
	changed := next()
	assert.Equal(t, map[int]float32{0: 0.75}, changed.Groups[0].Weights)

	// Rewriting identical weights must not add a checkpoint.
	writeScene(t, scenePath, 0.75)
	select {
	case doc := <-saved:
		t.Errorf("unexpected checkpoint %+v", doc)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

	entries, err := w.Store.List("")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWatcherSeedsFromLatestCheckpoint(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.yaml")
	writeScene(t, scenePath, 0.5)
	store := &Store{Dir: filepath.Join(dir, "checkpoints")}

	scene, err := mesh.LoadScene(scenePath)
	require.NoError(t, err)
	obj, _ := scene.Object("Body")
	doc, err := weights.Capture(obj)
	require.NoError(t, err)
	_, err = store.Save(doc, base)
	require.NoError(t, err)

	w := &Watcher{ScenePath: scenePath, Object: "Body", Store: store}
	w.checkpoint(zap.NewNop())

	entries, err := store.List("")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "unchanged weights should not be checkpointed again")
}

func TestWatcherSkipsMissingObject(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.yaml")
	writeScene(t, scenePath, 0.5)
	store := &Store{Dir: filepath.Join(dir, "checkpoints")}

	w := &Watcher{ScenePath: scenePath, Object: "Ghost", Store: store}
	w.checkpoint(zap.NewNop())

	entries, err := store.List("")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
