package weights

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"
)

// Option configures Restore.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for progress and skipped-entry warnings.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Report describes what Restore changed.
type Report struct {
	Object  string
	Groups  []GroupResult
	Skipped []SkippedWeight
}

// GroupResult describes one reconciled group.
type GroupResult struct {
	Name string
	// Replaced is set when a group of the same name existed and was recreated.
	Replaced bool
	// Members is the member count of the recreated group.
	Members int
	// CarriedOver lists vertices that kept their live weight because the
	// document had no entry for them.
	CarriedOver []int
}

// SkippedWeight is a document entry whose vertex does not exist on the
// target mesh.
type SkippedWeight struct {
	Group  string
	Vertex int
	Weight float32
}

// Restore applies doc to the object of the same name found through scene.
//
// Each group in doc replaces the same-named group on the mesh, or is created
// if there is none. Members of a replaced group that doc does not list keep
// their current weight. Entries for vertices the mesh does not have are
// skipped and reported. Groups are applied in ascending id order.
//
// Nothing is written to the object unless every group is applied.
func Restore(doc *Document, scene Resolver, opts ...Option) (*Report, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}
	log := o.logger.With(zap.String("object", doc.Object))

	obj, ok := scene.Lookup(doc.Object)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, doc.Object)
	}

	m, err := obj.Edit()
	if err != nil {
		return nil, fmt.Errorf("editing %s: %w", doc.Object, err)
	}
	defer m.Release()

	report := &Report{Object: doc.Object}
	m.Tag()
	for _, id := range doc.SortedGroupIDs() {
		rec := doc.Groups[id]
		res, skipped, err := reconcile(m, rec)
		if err != nil {
			return nil, fmt.Errorf("restoring group %q: %w", rec.Name, err)
		}
		for _, s := range skipped {
			log.Warn("skipping weight for missing vertex",
				zap.String("group", s.Group),
				zap.Int("vertex", s.Vertex),
				zap.Int("vertex_count", m.VertexCount()))
		}
		log.Debug("restored vertex group",
			zap.String("group", res.Name),
			zap.Bool("replaced", res.Replaced),
			zap.Int("members", res.Members),
			zap.Int("carried_over", len(res.CarriedOver)))
		report.Groups = append(report.Groups, res)
		report.Skipped = append(report.Skipped, skipped...)
	}
	m.Tag()

	if err := m.Commit(); err != nil {
		return nil, fmt.Errorf("committing %s: %w", doc.Object, err)
	}
	log.Info("restored weights", zap.Int("groups", len(report.Groups)), zap.Int("skipped", len(report.Skipped)))
	return report, nil
}

// reconcile recreates one group on m from rec.
func reconcile(m Mesh, rec *GroupRecord) (GroupResult, []SkippedWeight, error) {
	res := GroupResult{Name: rec.Name}
	n := m.VertexCount()

	// rec is never modified; carried-over weights go into target.
	target := make(map[int]float32, len(rec.Weights))
	var skipped []SkippedWeight
	for _, v := range rec.Vertices() {
		w := rec.Weights[v]
		if v < 0 || v >= n {
			skipped = append(skipped, SkippedWeight{Group: rec.Name, Vertex: v, Weight: w})
			continue
		}
		target[v] = w
	}

	if existing, ok := m.Group(rec.Name); ok {
		res.Replaced = true
		for v := 0; v < n; v++ {
			w, member := m.Weight(v, existing.Index)
			if !member {
				continue
			}
			if _, listed := target[v]; !listed {
				target[v] = w
				res.CarriedOver = append(res.CarriedOver, v)
			}
		}
		if err := m.RemoveGroup(existing.Index); err != nil {
			return res, nil, err
		}
	}

	created, err := m.NewGroup(rec.Name)
	if err != nil {
		return res, nil, err
	}
	members := slices.Sorted(maps.Keys(target))
	if err := m.Assign(created.Index, members, 0, AssignAdd); err != nil {
		return res, nil, err
	}

	// Indices move whenever groups are added or removed.
	g, ok := m.Group(created.Name)
	if !ok {
		return res, nil, fmt.Errorf("vertex group %q vanished after creation", created.Name)
	}
	for v := 0; v < n; v++ {
		if _, member := m.Weight(v, g.Index); !member {
			continue
		}
		if w, ok := target[v]; ok {
			if err := m.Assign(g.Index, []int{v}, w, AssignReplace); err != nil {
				return res, nil, err
			}
		}
	}
	res.Members = len(members)
	return res, skipped, nil
}

func (d *Document) validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil document", ErrMalformedDocument)
	}
	if d.Object == "" {
		return fmt.Errorf("%w: missing object name", ErrMalformedDocument)
	}
	for id, rec := range d.Groups {
		if rec == nil {
			return fmt.Errorf("%w: group %d is empty", ErrMalformedDocument, id)
		}
		if rec.Name == "" {
			return fmt.Errorf("%w: group %d has no name", ErrMalformedDocument, id)
		}
	}
	return nil
}
