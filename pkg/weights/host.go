package weights

// Group identifies a vertex group on a mesh. Index is only valid until the
// next group is added to or removed from the same mesh.
type Group struct {
	Name  string
	Index int
}

// AssignMode controls how Mesh.Assign combines a weight with an existing one.
type AssignMode int

const (
	AssignReplace  AssignMode = iota // Overwrite the existing weight
	AssignAdd                        // Add to the existing weight
	AssignSubtract                   // Subtract from the existing weight
)

// String returns the mode name.
func (m AssignMode) String() string {
	switch m {
	case AssignReplace:
		return "REPLACE"
	case AssignAdd:
		return "ADD"
	case AssignSubtract:
		return "SUBTRACT"
	default:
		return "UNKNOWN"
	}
}

// Resolver finds scene objects by name.
type Resolver interface {
	Lookup(name string) (Object, bool)
}

// Object is a mesh object owned by the host.
type Object interface {
	Name() string
	// Edit acquires a working copy of the object's mesh. Changes are only
	// visible on the object after Commit.
	Edit() (Mesh, error)
}

// Mesh is a working copy of an object's vertices and vertex groups.
type Mesh interface {
	VertexCount() int
	// Groups returns the vertex groups in host order.
	Groups() []Group
	Group(name string) (Group, bool)
	// Weight returns the weight of vertex in group, and whether the vertex
	// is a member of that group.
	Weight(vertex, group int) (float32, bool)
	NewGroup(name string) (Group, error)
	RemoveGroup(index int) error
	Assign(group int, vertices []int, weight float32, mode AssignMode) error
	// Tag flags the object's derived data as stale once the copy is
	// committed. A released copy leaves the object untouched.
	Tag()
	// Commit writes the working copy back to the object and releases it.
	Commit() error
	// Release discards the working copy. It is safe to call after Commit.
	Release()
}
