package tdsfile_test

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/scenekit/tdsfile"
)

func roundTripObject(t *testing.T, obj *tdsfile.Object) *tdsfile.Object {
	t.Helper()
	b, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := &tdsfile.Object{}
	if err := json.Unmarshal(b, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func TestObject_JSONMesh(t *testing.T) {
	obj := &tdsfile.Object{
		Name:     "grid",
		Position: tdsfile.Vector3{X: 1, Y: 2, Z: 3},
		Rotation: tdsfile.Euler{Z: 0.5},
		Scale:    tdsfile.Vector3{X: 1, Y: 1, Z: 1},
		Matrix:   tdsfile.Identity(),
		Data: &tdsfile.Mesh{
			Vertices: []tdsfile.Vector3{{}, {X: 1}, {Y: 1}},
			Faces: []tdsfile.Face{{
				V:     [3]uint32{0, 1, 2},
				UV:    [3]tdsfile.UV{{}, {U: 1}, {U: 1, V: 1}},
				Sharp: [3]bool{true, false, true},
				Group: 2,
			}},
			HasUV:           true,
			Materials:       []string{"", "Steel"},
			AutoSmooth:      true,
			AutoSmoothAngle: 0.5,
		},
	}
	got := roundTripObject(t, obj)
	if !reflect.DeepEqual(got, obj) {
		t.Errorf("round trip diverged\nexpected %#v\ngot      %#v", obj, got)
	}
}

func TestObject_JSONLight(t *testing.T) {
	obj := &tdsfile.Object{
		Name:     "beam",
		Position: tdsfile.Vector3{Z: 4},
		Data: &tdsfile.Light{
			Color:  tdsfile.Color3{R: 1, G: 0.5, B: 0.25},
			Energy: 1000,
			Spot:   &tdsfile.Spot{Size: 0.75, Blend: 0.5, ShowCone: true},
			Animation: &tdsfile.Animation{
				FrameEnd: 10,
				Curves: []*tdsfile.Curve{{
					Path: "spot_size",
					Keys: []tdsfile.Keyframe{{Frame: 0, Value: 0.75}, {Frame: 10, Value: 1.5}},
				}},
			},
		},
	}
	got := roundTripObject(t, obj)
	if !reflect.DeepEqual(got, obj) {
		t.Errorf("round trip diverged\nexpected %#v\ngot      %#v", obj, got)
	}
}

func TestObject_JSONCamera(t *testing.T) {
	obj := &tdsfile.Object{
		Name: "cam",
		Data: &tdsfile.Camera{Lens: 35, SensorWidth: 36},
	}
	got := roundTripObject(t, obj)
	if !reflect.DeepEqual(got, obj) {
		t.Errorf("round trip diverged\nexpected %#v\ngot      %#v", obj, got)
	}
}

func TestObject_JSONEmpty(t *testing.T) {
	obj := &tdsfile.Object{Name: "pivot", Data: &tdsfile.Empty{}}
	got := roundTripObject(t, obj)
	if !reflect.DeepEqual(got, obj) {
		t.Errorf("round trip diverged\nexpected %#v\ngot      %#v", obj, got)
	}

	b, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(b, []byte(`"type":"empty"`)) {
		t.Errorf("empties must carry their type, got %s", b)
	}
}

func TestObject_JSONNoData(t *testing.T) {
	obj := &tdsfile.Object{Name: "shell"}
	b, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Contains(b, []byte(`"type"`)) {
		t.Errorf("objects without data must omit the type, got %s", b)
	}

	out := &tdsfile.Object{}
	if err := json.Unmarshal(b, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Data != nil {
		t.Errorf("expected nil data, got %#v", out.Data)
	}
}

func TestObject_JSONUnknownType(t *testing.T) {
	err := json.Unmarshal([]byte(`{"name":"x","type":"volume"}`), &tdsfile.Object{})
	if err == nil {
		t.Fatal("unknown type must fail to unmarshal")
	}
	if !strings.Contains(err.Error(), `unknown object type "volume"`) {
		t.Errorf("wrong message: %v", err)
	}
}

func TestObject_JSONMissingPayload(t *testing.T) {
	err := json.Unmarshal([]byte(`{"name":"x","type":"mesh"}`), &tdsfile.Object{})
	if err == nil {
		t.Fatal("typed object without payload must fail to unmarshal")
	}
	if !strings.Contains(err.Error(), "missing its payload") {
		t.Errorf("wrong message: %v", err)
	}
}

func TestScene_JSON(t *testing.T) {
	scene := &tdsfile.Scene{
		Name:         "set",
		FrameStart:   1,
		FrameEnd:     250,
		FrameCurrent: 10,
		World: &tdsfile.World{
			AmbientColor: tdsfile.Color3{R: 0.05, G: 0.05, B: 0.05},
			Animation: &tdsfile.Animation{
				FrameEnd: 250,
				Curves: []*tdsfile.Curve{{
					Path: "color",
					Keys: []tdsfile.Keyframe{{Frame: 0, Value: 0.05}, {Frame: 250, Value: 1}},
				}},
			},
		},
		Materials: []*tdsfile.Material{{
			Name:         "Steel",
			DiffuseColor: tdsfile.Color3{R: 0.5, G: 0.5, B: 0.5},
			DiffuseAlpha: 1,
			DiffuseTexture: &tdsfile.TextureSlot{
				Image:     "steel.png",
				Extension: tdsfile.MirrorTexture,
				Scale:     tdsfile.UV{U: 2, V: 2},
				Offset:    tdsfile.UV{U: 0.25},
			},
			SecondaryImages: []string{"decal.png"},
		}},
		Objects: []*tdsfile.Object{
			{
				Name:   "grid",
				Matrix: tdsfile.Identity(),
				Data: &tdsfile.Mesh{
					Vertices: []tdsfile.Vector3{{}, {X: 1}, {Y: 1}},
					Faces:    []tdsfile.Face{{V: [3]uint32{0, 1, 2}}},
				},
			},
			{Name: "pivot", Parent: "grid", Data: &tdsfile.Empty{}},
			{Name: "shell"},
		},
	}

	b, err := json.Marshal(scene)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := &tdsfile.Scene{}
	if err := json.Unmarshal(b, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out, scene) {
		t.Errorf("round trip diverged\nexpected %#v\ngot      %#v", scene, out)
	}
}
