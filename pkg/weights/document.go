// Package weights captures the vertex group weights of a mesh object into a
// portable Document and restores them into a live mesh.
//
// Groups are matched by name on restore. Group ids in a Document are the
// group indices at capture time and carry no meaning afterwards.
package weights

import (
	"errors"
	"maps"
	"slices"
)

// Errors returned by this package.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrMalformedDocument = errors.New("malformed weights document")
	ErrIO                = errors.New("weights file i/o")
)

// Document is a snapshot of every vertex group of one object.
type Document struct {
	Object string
	Groups map[int]*GroupRecord
}

// GroupRecord holds the members of one vertex group. A vertex with no
// entry in Weights is not a member.
type GroupRecord struct {
	Name    string
	Weights map[int]float32
}

// NewDocument creates an empty document for the named object.
func NewDocument(object string) *Document {
	return &Document{Object: object, Groups: make(map[int]*GroupRecord)}
}

// SortedGroupIDs returns the group ids in ascending order.
func (d *Document) SortedGroupIDs() []int {
	return slices.Sorted(maps.Keys(d.Groups))
}

// GroupByName returns the record with the given name and its id. When
// several records share a name the one with the lowest id wins.
func (d *Document) GroupByName(name string) (int, *GroupRecord, bool) {
	for _, id := range d.SortedGroupIDs() {
		if rec := d.Groups[id]; rec.Name == name {
			return id, rec, true
		}
	}
	return 0, nil, false
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	c := NewDocument(d.Object)
	for id, rec := range d.Groups {
		c.Groups[id] = &GroupRecord{Name: rec.Name, Weights: maps.Clone(rec.Weights)}
	}
	return c
}

// Equal reports whether two documents hold the same object name, group
// ids, group names and weights.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Object != other.Object || len(d.Groups) != len(other.Groups) {
		return false
	}
	for id, rec := range d.Groups {
		o, ok := other.Groups[id]
		if !ok || o.Name != rec.Name || !maps.Equal(o.Weights, rec.Weights) {
			return false
		}
	}
	return true
}

// Vertices returns the member vertex indices in ascending order.
func (r *GroupRecord) Vertices() []int {
	return slices.Sorted(maps.Keys(r.Weights))
}

// Range returns the smallest and largest weight. Both are zero for an
// empty record.
func (r *GroupRecord) Range() (lo, hi float32) {
	first := true
	for _, w := range r.Weights {
		if first {
			lo, hi, first = w, w, false
			continue
		}
		lo, hi = min(lo, w), max(hi, w)
	}
	return lo, hi
}
