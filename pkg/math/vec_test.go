package math

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestVec3Add(t *testing.T) {
	got := Vec3{1, 2, 3}.Add(Vec3{4, 5, 6})
	want := Vec3{5, 7, 9}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec3.Length() = %v, want 5", got)
	}
	if got := v.Distance(Vec3{}); got != 5 {
		t.Errorf("Vec3.Distance() = %v, want 5", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, 0, -1}
	if got, want := a.Min(b), (Vec3{1, 0, -2}); got != want {
		t.Errorf("Vec3.Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{3, 5, -1}); got != want {
		t.Errorf("Vec3.Max() = %v, want %v", got, want)
	}
}

func TestBounds(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Fatal("EmptyBounds() should be empty")
	}
	b = b.Extend(Vec3{1, 1, 1}).Extend(Vec3{-1, 3, 0})
	if b.IsEmpty() {
		t.Fatal("extended bounds should not be empty")
	}
	if b.Min != (Vec3{-1, 1, 0}) || b.Max != (Vec3{1, 3, 1}) {
		t.Errorf("bounds = %v..%v", b.Min, b.Max)
	}
	if got, want := b.Center(), (Vec3{0, 2, 0.5}); got != want {
		t.Errorf("Center() = %v, want %v", got, want)
	}
}

func TestCentroid(t *testing.T) {
	if got := Centroid(nil); got != (Vec3{}) {
		t.Errorf("Centroid(nil) = %v, want zero", got)
	}
	got := Centroid([]Vec3{{0, 0, 0}, {2, 4, 6}})
	if want := (Vec3{1, 2, 3}); got != want {
		t.Errorf("Centroid() = %v, want %v", got, want)
	}
}

func TestVec3YAML(t *testing.T) {
	data, err := yaml.Marshal(struct {
		Co Vec3 `yaml:"co"`
	}{Vec3{0.5, -1, 2.25}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), "co: [0.5, -1, 2.25]") {
		t.Errorf("unexpected YAML: %q", data)
	}

	var out struct {
		Co Vec3 `yaml:"co"`
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Co != (Vec3{0.5, -1, 2.25}) {
		t.Errorf("round trip = %v", out.Co)
	}
}

func TestVec3YAMLWrongLength(t *testing.T) {
	var out struct {
		Co Vec3 `yaml:"co"`
	}
	if err := yaml.Unmarshal([]byte("co: [1, 2]\n"), &out); err == nil {
		t.Error("expected error for two coordinates")
	}
}
