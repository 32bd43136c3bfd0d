package mesh

import (
	"fmt"
	"slices"

	"github.com/Faultbox/saveweights/pkg/weights"
)

// EditMesh is a working copy of an object's vertex groups and deform
// weights. It must be committed or released; after that every method
// fails with ErrReleased or reports nothing.
type EditMesh struct {
	obj      *Object
	groups   []string
	deform   []Deform
	tags     uint64
	released bool
}

// VertexCount returns the number of vertices.
func (m *EditMesh) VertexCount() int {
	if m.released {
		return 0
	}
	return len(m.deform)
}

// Groups returns the vertex groups in index order.
func (m *EditMesh) Groups() []weights.Group {
	if m.released {
		return nil
	}
	groups := make([]weights.Group, len(m.groups))
	for i, name := range m.groups {
		groups[i] = weights.Group{Name: name, Index: i}
	}
	return groups
}

// Group looks up a vertex group by name.
func (m *EditMesh) Group(name string) (weights.Group, bool) {
	if m.released {
		return weights.Group{}, false
	}
	i := slices.Index(m.groups, name)
	if i < 0 {
		return weights.Group{}, false
	}
	return weights.Group{Name: name, Index: i}, true
}

// Weight returns the weight of vertex in group and whether it is a member.
func (m *EditMesh) Weight(vertex, group int) (float32, bool) {
	if m.released || vertex < 0 || vertex >= len(m.deform) {
		return 0, false
	}
	w, ok := m.deform[vertex][group]
	return w, ok
}

// Members returns the member vertices of group and their weights.
func (m *EditMesh) Members(group int) map[int]float32 {
	members := make(map[int]float32)
	if m.released {
		return members
	}
	for v, d := range m.deform {
		if w, ok := d[group]; ok {
			members[v] = w
		}
	}
	return members
}

// NewGroup appends a vertex group. A name already in use gets a numeric
// suffix (".001", ".002", ...).
func (m *EditMesh) NewGroup(name string) (weights.Group, error) {
	if m.released {
		return weights.Group{}, ErrReleased
	}
	if name == "" {
		name = "Group"
	}
	unique := name
	for n := 1; slices.Contains(m.groups, unique); n++ {
		unique = fmt.Sprintf("%s.%03d", name, n)
	}
	m.groups = append(m.groups, unique)
	return weights.Group{Name: unique, Index: len(m.groups) - 1}, nil
}

// RemoveGroup deletes a vertex group and all its memberships. Groups after
// it move down one index.
func (m *EditMesh) RemoveGroup(index int) error {
	if m.released {
		return ErrReleased
	}
	if index < 0 || index >= len(m.groups) {
		return fmt.Errorf("%w: index %d", ErrNoSuchGroup, index)
	}
	m.groups = slices.Delete(m.groups, index, index+1)
	for v, d := range m.deform {
		shifted := make(Deform, len(d))
		for g, w := range d {
			switch {
			case g < index:
				shifted[g] = w
			case g > index:
				shifted[g-1] = w
			}
		}
		m.deform[v] = shifted
	}
	return nil
}

// Assign adds vertices to group. Resulting weights are clamped to [0, 1].
// No vertex is touched if any index is out of range.
func (m *EditMesh) Assign(group int, vertices []int, weight float32, mode weights.AssignMode) error {
	if m.released {
		return ErrReleased
	}
	if group < 0 || group >= len(m.groups) {
		return fmt.Errorf("%w: index %d", ErrNoSuchGroup, group)
	}
	for _, v := range vertices {
		if v < 0 || v >= len(m.deform) {
			return fmt.Errorf("%w: %d (mesh has %d vertices)", ErrVertexRange, v, len(m.deform))
		}
	}
	for _, v := range vertices {
		old, member := m.deform[v][group]
		var w float32
		switch mode {
		case weights.AssignAdd:
			w = old + weight
		case weights.AssignSubtract:
			if !member {
				continue
			}
			w = old - weight
		default:
			w = weight
		}
		m.deform[v][group] = clamp(w)
	}
	return nil
}

// Unassign removes vertices from group.
func (m *EditMesh) Unassign(group int, vertices []int) error {
	if m.released {
		return ErrReleased
	}
	if group < 0 || group >= len(m.groups) {
		return fmt.Errorf("%w: index %d", ErrNoSuchGroup, group)
	}
	for _, v := range vertices {
		if v >= 0 && v < len(m.deform) {
			delete(m.deform[v], group)
		}
	}
	return nil
}

// Tag marks the owning object as updated. The object's revision moves on
// Commit, so a released edit leaves it alone.
func (m *EditMesh) Tag() {
	if !m.released {
		m.tags++
	}
}

// Commit writes the working copy back to the object and releases it.
func (m *EditMesh) Commit() error {
	if m.released {
		return ErrReleased
	}
	m.obj.groups = m.groups
	m.obj.revision += m.tags
	for i := range m.obj.vertices {
		if len(m.deform[i]) == 0 {
			m.obj.vertices[i].Deform = nil
			continue
		}
		m.obj.vertices[i].Deform = m.deform[i]
	}
	m.Release()
	return nil
}

// Release discards the working copy.
func (m *EditMesh) Release() {
	m.released = true
	m.tags = 0
	m.groups = nil
	m.deform = nil
}

// clamp limits w to [0, 1]. NaN becomes 0.
func clamp(w float32) float32 {
	if !(w >= 0) {
		return 0
	}
	return min(w, 1)
}

func validWeight(w float32) bool {
	return w >= 0 && w <= 1
}
