package weights

import "fmt"

// Capture records every vertex group of obj and the weight of each member
// vertex. The object is only read; its working copy is released unchanged.
func Capture(obj Object) (*Document, error) {
	m, err := obj.Edit()
	if err != nil {
		return nil, fmt.Errorf("editing %s: %w", obj.Name(), err)
	}
	defer m.Release()

	doc := NewDocument(obj.Name())
	n := m.VertexCount()
	for _, g := range m.Groups() {
		rec := &GroupRecord{Name: g.Name, Weights: make(map[int]float32)}
		for v := 0; v < n; v++ {
			if w, ok := m.Weight(v, g.Index); ok {
				rec.Weights[v] = w
			}
		}
		doc.Groups[g.Index] = rec
	}
	return doc, nil
}
