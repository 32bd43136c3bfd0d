package mesh

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/saveweights/pkg/math"
	"github.com/Faultbox/saveweights/pkg/weights"
)

const sampleScene = `
active: Body
objects:
  - name: Body
    vertex_groups: [Spine, Arm]
    vertices:
      - co: [0, 0, 0]
        deform: {0: 1}
      - co: [1, 0, 0]
        deform: {0: 0.5, 1: 0.5}
      - co: [2, 0, 0]
  - name: Prop
    vertices:
      - co: [0, 1, 0]
`

func TestReadScene(t *testing.T) {
	s, err := ReadScene(strings.NewReader(sampleScene))
	if err != nil {
		t.Fatalf("ReadScene: %v", err)
	}

	if got := len(s.Objects()); got != 2 {
		t.Fatalf("expected 2 objects, got %d", got)
	}
	body, ok := s.ActiveObject()
	if !ok || body.Name() != "Body" {
		t.Fatalf("active object = %v, %v", body, ok)
	}
	if body.VertexCount() != 3 {
		t.Errorf("expected 3 vertices, got %d", body.VertexCount())
	}
	if got := body.Coords()[2]; got != (math.Vec3{X: 2}) {
		t.Errorf("vertex 2 at %v", got)
	}

	m := body.Begin()
	defer m.Release()
	arm, ok := m.Group("Arm")
	if !ok || arm.Index != 1 {
		t.Fatalf("Group(Arm) = %+v, %v", arm, ok)
	}
	if w, ok := m.Weight(1, arm.Index); !ok || w != 0.5 {
		t.Errorf("vertex 1 in Arm = %v, %v", w, ok)
	}
	if _, ok := m.Weight(2, 0); ok {
		t.Error("vertex 2 should not be in Spine")
	}

	if _, ok := s.Lookup("Missing"); ok {
		t.Error("Lookup(Missing) should fail")
	}
	if obj, ok := s.Lookup("Prop"); !ok || obj.Name() != "Prop" {
		t.Errorf("Lookup(Prop) = %v, %v", obj, ok)
	}
}

func TestReadSceneInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", "objects: [\n"},
		{"unknown field", "objects:\n  - name: A\n    colour: red\n"},
		{"missing name", "objects:\n  - vertices: []\n"},
		{"duplicate object", "objects:\n  - name: A\n  - name: A\n"},
		{"duplicate group", "objects:\n  - name: A\n    vertex_groups: [G, G]\n"},
		{"dangling deform", "objects:\n  - name: A\n    vertex_groups: [G]\n    vertices:\n      - co: [0, 0, 0]\n        deform: {1: 0.5}\n"},
		{"weight above one", "objects:\n  - name: A\n    vertex_groups: [G]\n    vertices:\n      - co: [0, 0, 0]\n        deform: {0: 1.5}\n"},
		{"negative weight", "objects:\n  - name: A\n    vertex_groups: [G]\n    vertices:\n      - co: [0, 0, 0]\n        deform: {0: -0.5}\n"},
		{"nan weight", "objects:\n  - name: A\n    vertex_groups: [G]\n    vertices:\n      - co: [0, 0, 0]\n        deform: {0: .nan}\n"},
		{"bad coordinate", "objects:\n  - name: A\n    vertices:\n      - co: [0, 0]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadScene(strings.NewReader(tt.yaml))
			if !errors.Is(err, ErrInvalidScene) {
				t.Errorf("expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestReadSceneEmpty(t *testing.T) {
	s, err := ReadScene(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadScene: %v", err)
	}
	if len(s.Objects()) != 0 {
		t.Error("expected no objects")
	}
	if _, ok := s.ActiveObject(); ok {
		t.Error("expected no active object")
	}
}

func TestSceneSaveLoad(t *testing.T) {
	s := NewScene()
	o := NewObject("Body", math.Vec3{X: 0.5}, math.Vec3{Y: -1}, math.Vec3{Z: 2})
	if err := s.Add(o); err != nil {
		t.Fatal(err)
	}
	s.Active = "Body"

	m := o.Begin()
	g, _ := m.NewGroup("Spine")
	if err := m.Assign(g.Index, []int{0, 2}, 0.25, weights.AssignReplace); err != nil {
		t.Fatal(err)
	}
	if err := m.Commit(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	var a, b bytes.Buffer
	if err := s.Write(&a); err != nil {
		t.Fatal(err)
	}
	if err := loaded.Write(&b); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("round trip mismatch:\n%s\nvs\n%s", a.String(), b.String())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the scene file, found %d entries", len(entries))
	}
}

func TestSceneAddDuplicate(t *testing.T) {
	s := NewScene()
	if err := s.Add(NewObject("A")); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(NewObject("A")); !errors.Is(err, ErrObjectExists) {
		t.Errorf("expected ErrObjectExists, got %v", err)
	}
}

func TestLoadSceneMissing(t *testing.T) {
	if _, err := LoadScene("/nonexistent/scene.yaml"); err == nil {
		t.Error("expected error loading missing file")
	}
}
