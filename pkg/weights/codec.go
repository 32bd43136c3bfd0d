package weights

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/saveweights/internal/fsutil"
)

// wireDocument is the on-disk form. Integer keys are stored as strings.
type wireDocument struct {
	Object *string               `json:"object" yaml:"object"`
	Groups map[string]*wireGroup `json:"groups" yaml:"groups"`
}

type wireGroup struct {
	Name    *string            `json:"name" yaml:"name"`
	Weights map[string]float32 `json:"weights" yaml:"weights"`
}

func toWire(doc *Document) *wireDocument {
	object := doc.Object
	w := &wireDocument{Object: &object, Groups: make(map[string]*wireGroup, len(doc.Groups))}
	for id, rec := range doc.Groups {
		name := rec.Name
		g := &wireGroup{Name: &name, Weights: make(map[string]float32, len(rec.Weights))}
		for v, weight := range rec.Weights {
			g.Weights[strconv.Itoa(v)] = weight
		}
		w.Groups[strconv.Itoa(id)] = g
	}
	return w
}

func fromWire(w *wireDocument) (*Document, error) {
	if w.Object == nil {
		return nil, fmt.Errorf("%w: missing \"object\"", ErrMalformedDocument)
	}
	if w.Groups == nil {
		return nil, fmt.Errorf("%w: missing \"groups\"", ErrMalformedDocument)
	}

	doc := NewDocument(*w.Object)
	for key, g := range w.Groups {
		id, err := parseKey(key)
		if err != nil {
			return nil, fmt.Errorf("%w: group id %q is not an integer", ErrMalformedDocument, key)
		}
		if _, dup := doc.Groups[id]; dup {
			return nil, fmt.Errorf("%w: group id %d appears twice", ErrMalformedDocument, id)
		}
		if g == nil || g.Name == nil {
			return nil, fmt.Errorf("%w: group %q has no \"name\"", ErrMalformedDocument, key)
		}
		if g.Weights == nil {
			return nil, fmt.Errorf("%w: group %q has no \"weights\"", ErrMalformedDocument, key)
		}
		rec := &GroupRecord{Name: *g.Name, Weights: make(map[int]float32, len(g.Weights))}
		for vkey, weight := range g.Weights {
			v, err := parseKey(vkey)
			if err != nil {
				return nil, fmt.Errorf("%w: group %q vertex %q is not an integer", ErrMalformedDocument, key, vkey)
			}
			if math.IsNaN(float64(weight)) || math.IsInf(float64(weight), 0) {
				return nil, fmt.Errorf("%w: group %q vertex %d has weight %v", ErrMalformedDocument, key, v, weight)
			}
			if _, dup := rec.Weights[v]; dup {
				return nil, fmt.Errorf("%w: group %q vertex %d appears twice", ErrMalformedDocument, key, v)
			}
			rec.Weights[v] = weight
		}
		doc.Groups[id] = rec
	}
	return doc, nil
}

func parseKey(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// Serializer reads and writes Documents in one file format.
type Serializer interface {
	Parse(r io.Reader) (*Document, error)
	Serialize(doc *Document) ([]byte, error)
}

// JSONSerializer handles the JSON document format.
type JSONSerializer struct {
	Indent bool
}

// Parse decodes a JSON document.
func (s JSONSerializer) Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrMalformedDocument, err)
	}
	return fromWire(&w)
}

// Serialize encodes doc as JSON.
func (s JSONSerializer) Serialize(doc *Document) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if s.Indent {
		data, err = json.MarshalIndent(toWire(doc), "", "  ")
	} else {
		data, err = json.Marshal(toWire(doc))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return data, nil
}

// YAMLSerializer handles the same schema written as YAML.
type YAMLSerializer struct{}

// Parse decodes a YAML document.
func (YAMLSerializer) Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	var w wireDocument
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: invalid yaml: %v", ErrMalformedDocument, err)
	}
	return fromWire(&w)
}

// Serialize encodes doc as YAML.
func (YAMLSerializer) Serialize(doc *Document) ([]byte, error) {
	return yaml.Marshal(toWire(doc))
}

// SerializerFor picks a serializer from the file extension. Anything that
// is not .yaml or .yml is JSON.
func SerializerFor(path string, indent bool) Serializer {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLSerializer{}
	default:
		return JSONSerializer{Indent: indent}
	}
}

// Encode writes doc as JSON.
func Encode(w io.Writer, doc *Document, indent bool) error {
	data, err := JSONSerializer{Indent: indent}.Serialize(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Decode reads a JSON document.
func Decode(r io.Reader) (*Document, error) {
	return JSONSerializer{}.Parse(r)
}

// WriteFile saves doc to path in the format implied by its extension.
func WriteFile(path string, doc *Document, indent bool) error {
	data, err := SerializerFor(path, indent).Serialize(doc)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	return nil
}

// ReadFile loads a document from path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	return SerializerFor(path, false).Parse(bytes.NewReader(data))
}
