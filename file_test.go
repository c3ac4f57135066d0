package tdsfile_test

import (
	"math"
	"testing"

	"github.com/scenekit/tdsfile"
)

func TestScene_Material(t *testing.T) {
	steel := &tdsfile.Material{Name: "Steel"}
	wood := &tdsfile.Material{Name: "Wood"}
	s := &tdsfile.Scene{Materials: []*tdsfile.Material{steel, wood}}

	if got := s.Material("Wood"); got != wood {
		t.Errorf("wrong material (expected %v, got %v)", wood, got)
	}
	if got := s.Material(""); got != nil {
		t.Errorf("empty name must yield nil, got %v", got)
	}
	if got := s.Material("Glass"); got != nil {
		t.Errorf("unknown name must yield nil, got %v", got)
	}
}

func TestScene_Object(t *testing.T) {
	a := &tdsfile.Object{Name: "a"}
	b := &tdsfile.Object{Name: "b"}
	s := &tdsfile.Scene{Objects: []*tdsfile.Object{a, b}}

	if got := s.Object("b"); got != b {
		t.Errorf("wrong object (expected %v, got %v)", b, got)
	}
	if got := s.Object(""); got != nil {
		t.Errorf("empty name must yield nil, got %v", got)
	}
	if got := s.Object("c"); got != nil {
		t.Errorf("unknown name must yield nil, got %v", got)
	}
}

func TestMaterial_Image(t *testing.T) {
	var m *tdsfile.Material
	if got := m.Image(); got != "" {
		t.Errorf("nil material must yield no image, got %q", got)
	}
	if got := (&tdsfile.Material{Name: "Flat"}).Image(); got != "" {
		t.Errorf("unbound channel must yield no image, got %q", got)
	}
	m = &tdsfile.Material{
		Name:           "Painted",
		DiffuseTexture: &tdsfile.TextureSlot{Image: "paint.png"},
	}
	if got := m.Image(); got != "paint.png" {
		t.Errorf(`wrong image (expected "paint.png", got %q)`, got)
	}
}

func TestCamera_Angle(t *testing.T) {
	c := &tdsfile.Camera{Lens: 35, SensorWidth: 36}
	want := float32(2 * math.Atan(36.0/(2*35.0)))
	if got := c.Angle(); !near(got, want, 1e-5) {
		t.Errorf("wrong angle (expected %v, got %v)", want, got)
	}

	c = &tdsfile.Camera{SensorWidth: 36}
	if got := c.Angle(); got != 0 {
		t.Errorf("zero focal length must yield a zero angle, got %v", got)
	}
}

func TestCurve_Evaluate(t *testing.T) {
	empty := &tdsfile.Curve{}
	if got := empty.Evaluate(3); got != 0 {
		t.Errorf("empty curve must evaluate to zero, got %v", got)
	}

	c := &tdsfile.Curve{Keys: []tdsfile.Keyframe{
		{Frame: 0, Value: 1},
		{Frame: 10, Value: 3},
	}}
	for _, tc := range []struct {
		frame, want float32
	}{
		{-5, 1}, // clamps before the first key
		{0, 1},
		{5, 2}, // linear midpoint
		{10, 3},
		{15, 3}, // clamps after the last key
	} {
		if got := c.Evaluate(tc.frame); got != tc.want {
			t.Errorf("frame %v: wrong value (expected %v, got %v)", tc.frame, tc.want, got)
		}
	}
}

func TestCurve_EvaluateDuplicateFrames(t *testing.T) {
	c := &tdsfile.Curve{Keys: []tdsfile.Keyframe{
		{Frame: 0, Value: 1},
		{Frame: 5, Value: 2},
		{Frame: 5, Value: 4},
		{Frame: 10, Value: 6},
	}}
	if got := c.Evaluate(5); got != 2 {
		t.Errorf("first key at a frame wins (expected 2, got %v)", got)
	}
	if got := c.Evaluate(7.5); got != 5 {
		t.Errorf("wrong value (expected 5, got %v)", got)
	}
}

func TestAnimation_CurveFor(t *testing.T) {
	locX := &tdsfile.Curve{Path: "location", Index: 0}
	locZ := &tdsfile.Curve{Path: "location", Index: 2}
	lens := &tdsfile.Curve{Path: "lens"}
	a := &tdsfile.Animation{Curves: []*tdsfile.Curve{locX, nil, locZ, lens}}

	if got := a.CurveFor("location", 2); got != locZ {
		t.Errorf("wrong curve (expected %v, got %v)", locZ, got)
	}
	if got := a.CurveFor("lens", 0); got != lens {
		t.Errorf("wrong curve (expected %v, got %v)", lens, got)
	}
	if got := a.CurveFor("location", 1); got != nil {
		t.Errorf("unkeyed component must yield nil, got %v", got)
	}
	if got := a.CurveFor("scale", 0); got != nil {
		t.Errorf("unkeyed channel must yield nil, got %v", got)
	}

	a = nil
	if got := a.CurveFor("location", 0); got != nil {
		t.Errorf("nil animation must yield nil, got %v", got)
	}
}

func TestTextureExtension_String(t *testing.T) {
	for ext, want := range map[tdsfile.TextureExtension]string{
		tdsfile.RepeatTexture: "repeat",
		tdsfile.ExtendTexture: "extend",
		tdsfile.MirrorTexture: "mirror",
		tdsfile.ClipTexture:   "clip",
	} {
		if got := ext.String(); got != want {
			t.Errorf("wrong name (expected %q, got %q)", want, got)
		}
	}
	if got := tdsfile.TextureExtension(200).String(); got != "invalid" {
		t.Errorf(`wrong name (expected "invalid", got %q)`, got)
	}
}

func TestTextureExtension_Text(t *testing.T) {
	b, err := tdsfile.MirrorTexture.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "mirror" {
		t.Errorf(`wrong text (expected "mirror", got %q)`, b)
	}
	if _, err := tdsfile.TextureExtension(200).MarshalText(); err == nil {
		t.Error("unknown extension must fail to marshal")
	}

	var ext tdsfile.TextureExtension
	if err := ext.UnmarshalText([]byte("clip")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext != tdsfile.ClipTexture {
		t.Errorf("wrong extension (expected %v, got %v)", tdsfile.ClipTexture, ext)
	}
	err = ext.UnmarshalText([]byte("weird"))
	if err == nil {
		t.Fatal("unknown extension must fail to unmarshal")
	}
	if got, want := err.Error(), `tdsfile: unknown texture extension "weird"`; got != want {
		t.Errorf("wrong message (expected %q, got %q)", want, got)
	}
}
