package tdsfile

import (
	"encoding/json"
	"fmt"
)

// jsonObject mirrors Object with the payload lifted behind a type tag, so
// that the ObjectData interface survives a JSON round trip.
type jsonObject struct {
	Name      string     `json:"name"`
	Parent    string     `json:"parent,omitempty"`
	Position  Vector3    `json:"position"`
	Rotation  Euler      `json:"rotation"`
	Scale     Vector3    `json:"scale"`
	Matrix    Matrix4    `json:"matrix"`
	Hidden    bool       `json:"hidden,omitempty"`
	Selected  bool       `json:"selected,omitempty"`
	Animation *Animation `json:"animation,omitempty"`

	Type   string  `json:"type,omitempty"`
	Mesh   *Mesh   `json:"mesh,omitempty"`
	Light  *Light  `json:"light,omitempty"`
	Camera *Camera `json:"camera,omitempty"`
}

// MarshalJSON implements json.Marshaler. The object kind is written as a
// "type" field next to the payload; objects with no payload omit it.
func (obj *Object) MarshalJSON() ([]byte, error) {
	jobj := jsonObject{
		Name:      obj.Name,
		Parent:    obj.Parent,
		Position:  obj.Position,
		Rotation:  obj.Rotation,
		Scale:     obj.Scale,
		Matrix:    obj.Matrix,
		Hidden:    obj.Hidden,
		Selected:  obj.Selected,
		Animation: obj.Animation,
	}
	switch data := obj.Data.(type) {
	case *Mesh:
		jobj.Type, jobj.Mesh = data.kind(), data
	case *Light:
		jobj.Type, jobj.Light = data.kind(), data
	case *Camera:
		jobj.Type, jobj.Camera = data.kind(), data
	case *Empty:
		jobj.Type = data.kind()
	case nil:
	default:
		return nil, fmt.Errorf("tdsfile: cannot marshal object data of type %T", obj.Data)
	}
	return json.Marshal(&jobj)
}

// UnmarshalJSON implements json.Unmarshaler. An absent type leaves Data
// nil; an unknown type is an error.
func (obj *Object) UnmarshalJSON(b []byte) error {
	var jobj jsonObject
	if err := json.Unmarshal(b, &jobj); err != nil {
		return err
	}
	obj.Name = jobj.Name
	obj.Parent = jobj.Parent
	obj.Position = jobj.Position
	obj.Rotation = jobj.Rotation
	obj.Scale = jobj.Scale
	obj.Matrix = jobj.Matrix
	obj.Hidden = jobj.Hidden
	obj.Selected = jobj.Selected
	obj.Animation = jobj.Animation
	switch jobj.Type {
	case "mesh":
		if jobj.Mesh == nil {
			return missingPayloadError(jobj.Type)
		}
		obj.Data = jobj.Mesh
	case "light":
		if jobj.Light == nil {
			return missingPayloadError(jobj.Type)
		}
		obj.Data = jobj.Light
	case "camera":
		if jobj.Camera == nil {
			return missingPayloadError(jobj.Type)
		}
		obj.Data = jobj.Camera
	case "empty":
		obj.Data = &Empty{}
	case "":
		obj.Data = nil
	default:
		return fmt.Errorf("tdsfile: unknown object type %q", jobj.Type)
	}
	return nil
}

func missingPayloadError(typ string) error {
	return fmt.Errorf("tdsfile: object of type %q is missing its payload", typ)
}
