// Package math provides the vector type used for mesh vertex coordinates.
package math

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Min returns the component-wise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

// String returns the vector as "(x, y, z)".
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// MarshalYAML encodes the vector as a flow sequence [x, y, z].
func (v Vec3) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(float64(c), 'g', -1, 32),
		})
	}
	return node, nil
}

// UnmarshalYAML decodes a three element sequence.
func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	var c []float32
	if err := value.Decode(&c); err != nil {
		return err
	}
	if len(c) != 3 {
		return fmt.Errorf("line %d: expected 3 coordinates, got %d", value.Line, len(c))
	}
	v.X, v.Y, v.Z = c[0], c[1], c[2]
	return nil
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec3
	empty    bool
}

// EmptyBounds returns a box that contains no points.
func EmptyBounds() Bounds {
	return Bounds{empty: true}
}

// Extend grows the box to include p.
func (b Bounds) Extend(p Vec3) Bounds {
	if b.empty {
		return Bounds{Min: p, Max: p}
	}
	return Bounds{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.empty
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Centroid returns the average of points, or the zero vector when there are none.
func Centroid(points []Vec3) Vec3 {
	if len(points) == 0 {
		return Vec3{}
	}
	var sum Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float32(len(points)))
}
