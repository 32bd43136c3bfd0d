// Package mesh is an in-memory mesh host: objects with vertex data and
// ordered vertex groups, edited through short-lived working copies.
package mesh

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/Faultbox/saveweights/pkg/math"
	"github.com/Faultbox/saveweights/pkg/weights"
)

// Mesh errors.
var (
	ErrReleased     = errors.New("edit mesh already released")
	ErrNoSuchGroup  = errors.New("no such vertex group")
	ErrVertexRange  = errors.New("vertex index out of range")
	ErrObjectExists = errors.New("object already exists")
	ErrInvalidScene = errors.New("invalid scene")
)

// Deform maps vertex group index to weight for one vertex.
type Deform map[int]float32

// Vertex is a persistent mesh vertex.
type Vertex struct {
	Co     math.Vec3 `yaml:"co"`
	Deform Deform    `yaml:"deform,omitempty"`
}

// Object is a named mesh object. Group indices are positions in the group
// list and shift down when an earlier group is removed.
type Object struct {
	name     string
	vertices []Vertex
	groups   []string
	revision uint64
}

// NewObject creates an object with one vertex per coordinate and no groups.
func NewObject(name string, coords ...math.Vec3) *Object {
	o := &Object{name: name, vertices: make([]Vertex, len(coords))}
	for i, co := range coords {
		o.vertices[i].Co = co
	}
	return o
}

// Name returns the object name.
func (o *Object) Name() string {
	return o.name
}

// VertexCount returns the number of vertices.
func (o *Object) VertexCount() int {
	return len(o.vertices)
}

// Coords returns a copy of the vertex positions.
func (o *Object) Coords() []math.Vec3 {
	coords := make([]math.Vec3, len(o.vertices))
	for i, v := range o.vertices {
		coords[i] = v.Co
	}
	return coords
}

// VertexGroups returns the object's groups in index order.
func (o *Object) VertexGroups() []weights.Group {
	groups := make([]weights.Group, len(o.groups))
	for i, name := range o.groups {
		groups[i] = weights.Group{Name: name, Index: i}
	}
	return groups
}

// Revision counts how many times committed edits tagged the object for update.
func (o *Object) Revision() uint64 {
	return o.revision
}

// Begin acquires a working copy of the object's mesh.
func (o *Object) Begin() *EditMesh {
	deform := make([]Deform, len(o.vertices))
	for i, v := range o.vertices {
		deform[i] = maps.Clone(v.Deform)
		if deform[i] == nil {
			deform[i] = Deform{}
		}
	}
	return &EditMesh{
		obj:    o,
		groups: slices.Clone(o.groups),
		deform: deform,
	}
}

// Edit implements weights.Object.
func (o *Object) Edit() (weights.Mesh, error) {
	return o.Begin(), nil
}

func (o *Object) validate() error {
	if o.name == "" {
		return fmt.Errorf("%w: object without a name", ErrInvalidScene)
	}
	seen := make(map[string]bool, len(o.groups))
	for _, g := range o.groups {
		if g == "" {
			return fmt.Errorf("%w: object %q has an unnamed vertex group", ErrInvalidScene, o.name)
		}
		if seen[g] {
			return fmt.Errorf("%w: object %q has duplicate vertex group %q", ErrInvalidScene, o.name, g)
		}
		seen[g] = true
	}
	for i, v := range o.vertices {
		for g, w := range v.Deform {
			if g < 0 || g >= len(o.groups) {
				return fmt.Errorf("%w: object %q vertex %d references group %d of %d",
					ErrInvalidScene, o.name, i, g, len(o.groups))
			}
			if !validWeight(w) {
				return fmt.Errorf("%w: object %q vertex %d has weight %v in group %d",
					ErrInvalidScene, o.name, i, w, g)
			}
		}
	}
	return nil
}
