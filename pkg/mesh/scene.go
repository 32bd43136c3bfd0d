package mesh

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/saveweights/internal/fsutil"
	"github.com/Faultbox/saveweights/pkg/weights"
)

// Scene is a collection of uniquely named objects.
type Scene struct {
	// Active names the object that user actions apply to by default.
	Active string

	objects []*Object
	byName  map[string]*Object
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{byName: make(map[string]*Object)}
}

// Add inserts an object. Names must be unique within the scene.
func (s *Scene) Add(o *Object) error {
	if _, ok := s.byName[o.name]; ok {
		return fmt.Errorf("%w: %q", ErrObjectExists, o.name)
	}
	s.objects = append(s.objects, o)
	s.byName[o.name] = o
	return nil
}

// Object returns the object with the given name.
func (s *Scene) Object(name string) (*Object, bool) {
	o, ok := s.byName[name]
	return o, ok
}

// Lookup implements weights.Resolver.
func (s *Scene) Lookup(name string) (weights.Object, bool) {
	o, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return o, true
}

// Objects returns all objects in insertion order.
func (s *Scene) Objects() []*Object {
	return append([]*Object(nil), s.objects...)
}

// ActiveObject returns the active object, if one is set and exists.
func (s *Scene) ActiveObject() (*Object, bool) {
	if s.Active == "" {
		return nil, false
	}
	return s.Object(s.Active)
}

type sceneFile struct {
	Active  string       `yaml:"active,omitempty"`
	Objects []objectFile `yaml:"objects"`
}

type objectFile struct {
	Name         string   `yaml:"name"`
	VertexGroups []string `yaml:"vertex_groups,omitempty"`
	Vertices     []Vertex `yaml:"vertices"`
}

// ReadScene decodes a YAML scene.
func ReadScene(r io.Reader) (*Scene, error) {
	var f sceneFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	s := NewScene()
	s.Active = f.Active
	for _, of := range f.Objects {
		o := &Object{name: of.Name, groups: of.VertexGroups, vertices: of.Vertices}
		if err := o.validate(); err != nil {
			return nil, err
		}
		if err := s.Add(o); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
		}
	}
	return s, nil
}

// LoadScene reads a scene file.
func LoadScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadScene(f)
}

// Write encodes the scene as YAML.
func (s *Scene) Write(w io.Writer) error {
	f := sceneFile{Active: s.Active, Objects: make([]objectFile, 0, len(s.objects))}
	for _, o := range s.objects {
		f.Objects = append(f.Objects, objectFile{
			Name:         o.name,
			VertexGroups: o.groups,
			Vertices:     o.vertices,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes the scene to path, replacing the file atomically.
func (s *Scene) Save(path string) error {
	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes(), 0644)
}
