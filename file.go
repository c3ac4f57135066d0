// The tdsfile package describes 3D scenes bound for the legacy 3D Studio
// (.3ds) file format.
//
// A scene begins with a Scene struct, which owns a flat list of Objects and
// a library of Materials. Each Object carries a transform, an optional
// parent reference, and a kind-specific payload implementing the ObjectData
// interface. Exactly four payload kinds exist: Mesh, Light, Camera, and
// Empty. Code consuming a scene switches on the payload type; there is no
// class-name string to compare against.
//
// Scenes can be encoded to the binary .3ds container with the "tds"
// sub-package. A Scene can also round-trip through JSON, which is how the
// command line tools in "cmd" consume scene descriptions.
//
// Positions, rotations and scales are the object's own animatable channels.
// Matrix is the derived local-to-world transform and is what mesh geometry
// is baked through; the channel values feed the keyframe tracks unchanged.
// All numeric fields are float32, matching the precision of the container.
package tdsfile

// Scene is the root of a scene description.
type Scene struct {
	// Name identifies the scene. It is written to the keyframe header.
	Name string `json:"name"`

	// FrameStart, FrameEnd and FrameCurrent delimit the animation segment
	// in whole frames.
	FrameStart   int `json:"frame_start"`
	FrameEnd     int `json:"frame_end"`
	FrameCurrent int `json:"frame_current"`

	// World holds scene-wide settings. May be nil.
	World *World `json:"world,omitempty"`

	// Materials is the material library. Mesh material slots refer to
	// entries by name.
	Materials []*Material `json:"materials,omitempty"`

	// Objects lists every object in the scene, in author order.
	Objects []*Object `json:"objects"`
}

// Material returns the material with the given name, or nil if the name is
// empty or not present in the library.
func (s *Scene) Material(name string) *Material {
	if name == "" {
		return nil
	}
	for _, m := range s.Materials {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Object returns the object with the given name, or nil.
func (s *Scene) Object(name string) *Object {
	if name == "" {
		return nil
	}
	for _, obj := range s.Objects {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

// World holds scene-wide settings.
type World struct {
	// AmbientColor is the ambient light color.
	AmbientColor Color3 `json:"ambient_color"`

	// Animation animates the ambient color ("color" channels). May be nil.
	Animation *Animation `json:"animation,omitempty"`
}

// Object is a single scene object. The kind of the object is determined by
// the dynamic type of Data.
type Object struct {
	// Name identifies the object. Names should be unique within a scene;
	// the encoder uniquifies them regardless.
	Name string `json:"name"`

	// Parent names the parent object, or is empty for root objects.
	Parent string `json:"parent,omitempty"`

	// Position, Rotation and Scale are the object's transform channels.
	// Rotation is an XYZ euler in radians.
	Position Vector3 `json:"position"`
	Rotation Euler   `json:"rotation"`
	Scale    Vector3 `json:"scale"`

	// Matrix is the local-to-world transform, including any parent
	// transforms. Mesh geometry is transformed through it when encoded.
	Matrix Matrix4 `json:"matrix"`

	// Hidden excludes the object from export. Selected marks it for
	// selection-limited exports.
	Hidden   bool `json:"hidden,omitempty"`
	Selected bool `json:"selected,omitempty"`

	// Animation holds the object-level channels ("location",
	// "rotation_euler", "scale"). May be nil.
	Animation *Animation `json:"animation,omitempty"`

	// Data is the kind-specific payload. A nil Data marks an object whose
	// source kind could not be converted; encoders skip such objects.
	Data ObjectData `json:"-"`
}

// ObjectData is the kind-specific payload of an Object. Mesh, Light,
// Camera and Empty are the only implementations.
type ObjectData interface {
	kind() string
}

// Mesh is triangulated geometry with optional UVs and material slots.
type Mesh struct {
	// Vertices are positions in the object's local space.
	Vertices []Vector3 `json:"vertices"`

	// Faces are the mesh triangles. Vertex indices refer to Vertices.
	Faces []Face `json:"faces"`

	// HasUV reports whether the faces carry corner UVs.
	HasUV bool `json:"has_uv,omitempty"`

	// Materials lists the material slot names in slot order. An empty
	// string is an unassigned slot.
	Materials []string `json:"materials,omitempty"`

	// AutoSmooth enables angle-based smoothing, with the threshold angle
	// in radians.
	AutoSmooth      bool    `json:"auto_smooth,omitempty"`
	AutoSmoothAngle float32 `json:"auto_smooth_angle,omitempty"`
}

func (*Mesh) kind() string { return "mesh" }

// Face is a mesh triangle. The corner order is (A, B, C); edge n of Sharp
// refers to the edge leaving corner n, so the order is AB, BC, CA.
type Face struct {
	// V holds the three vertex indices.
	V [3]uint32 `json:"v"`

	// UV holds the three corner UVs. Meaningful only when the owning
	// mesh has HasUV set.
	UV [3]UV `json:"uv"`

	// Material is the material slot index.
	Material int `json:"material,omitempty"`

	// Smooth marks the face as shaded smooth. Group is the smoothing
	// group bitmask the face belongs to.
	Smooth bool   `json:"smooth,omitempty"`
	Group  uint32 `json:"group,omitempty"`

	// Sharp flags the face edges that render as sharp creases.
	Sharp [3]bool `json:"sharp"`
}

// Light is a point or spot light.
type Light struct {
	// Color is the emitted color. Energy is the power in watts.
	Color  Color3  `json:"color"`
	Energy float32 `json:"energy"`

	// Spot holds the spotlight cone. Nil for point lights.
	Spot *Spot `json:"spot,omitempty"`

	// Animation holds the light-level channels ("color", "spot_size",
	// "spot_blend"). May be nil.
	Animation *Animation `json:"animation,omitempty"`
}

func (*Light) kind() string { return "light" }

// Spot describes a spotlight cone.
type Spot struct {
	// Size is the full cone angle in radians. Blend is the fraction of
	// the cone occupied by the soft edge, in [0, 1].
	Size  float32 `json:"size"`
	Blend float32 `json:"blend"`

	// ShowCone and Square are display hints carried through to the
	// container.
	ShowCone bool `json:"show_cone,omitempty"`
	Square   bool `json:"square,omitempty"`
}

// Camera is a perspective camera.
type Camera struct {
	// Lens is the focal length in millimeters. SensorWidth is the sensor
	// width in millimeters.
	Lens        float32 `json:"lens"`
	SensorWidth float32 `json:"sensor_width"`

	// Animation holds the camera-level channels ("lens"). May be nil.
	Animation *Animation `json:"animation,omitempty"`
}

func (*Camera) kind() string { return "camera" }

// Angle returns the horizontal field of view in radians, derived from the
// focal length and sensor width.
func (c *Camera) Angle() float32 {
	if c.Lens == 0 {
		return 0
	}
	return fieldOfView(c.SensorWidth, c.Lens)
}

// Empty is an object with no renderable data, used as a grouping or
// animation target.
type Empty struct{}

func (*Empty) kind() string { return "empty" }

// Material is a resolved surface description. Values are already evaluated;
// no shading node graph is consulted at encode time.
type Material struct {
	// Name identifies the material. Mesh slots refer to it.
	Name string `json:"name"`

	// Nodes selects the node-based encoding, which maps the principled
	// channels below. Without it the legacy viewport colors are used.
	Nodes bool `json:"nodes,omitempty"`

	// BaseColor is the principled base color. DiffuseColor and
	// DiffuseAlpha are the legacy viewport color. LineColor is the
	// viewport wire color.
	BaseColor    Color3  `json:"base_color"`
	DiffuseColor Color3  `json:"diffuse_color"`
	DiffuseAlpha float32 `json:"diffuse_alpha"`
	LineColor    Color3  `json:"line_color"`

	// SpecularColor tints the highlight; Specular is its intensity.
	SpecularColor Color3  `json:"specular_color"`
	Specular      float32 `json:"specular"`

	// EmissionColor and EmissionStrength describe self-illumination.
	EmissionColor    Color3  `json:"emission_color"`
	EmissionStrength float32 `json:"emission_strength"`

	Roughness float32 `json:"roughness"`
	Metallic  float32 `json:"metallic"`
	Alpha     float32 `json:"alpha"`

	// Texture channels. Nil slots are unbound.
	DiffuseTexture    *TextureSlot `json:"diffuse_texture,omitempty"`
	SpecularTexture   *TextureSlot `json:"specular_texture,omitempty"`
	OpacityTexture    *TextureSlot `json:"opacity_texture,omitempty"`
	ReflectionTexture *TextureSlot `json:"reflection_texture,omitempty"`
	BumpTexture       *TextureSlot `json:"bump_texture,omitempty"`
	ShininessTexture  *TextureSlot `json:"shininess_texture,omitempty"`
	EmissionTexture   *TextureSlot `json:"emission_texture,omitempty"`

	// SecondaryImages are extra image names blended over the base
	// channel, written without mapping parameters.
	SecondaryImages []string `json:"secondary_images,omitempty"`
}

// Image returns the name of the image bound to the diffuse channel, or ""
// when the channel is unbound. It identifies the representative image used
// to group faces and materials.
func (m *Material) Image() string {
	if m == nil || m.DiffuseTexture == nil {
		return ""
	}
	return m.DiffuseTexture.Image
}

// TextureSlot binds an image to a material channel along with its mapping
// parameters.
type TextureSlot struct {
	// Image is the image name as referenced by the host, including any
	// extension. Only the base name is written to the container.
	Image string `json:"image"`

	// Extension selects how the image tiles outside [0, 1].
	Extension TextureExtension `json:"extension,omitempty"`

	// UseAlpha sources the image alpha channel. NonColor marks the image
	// as non-color data.
	UseAlpha bool `json:"use_alpha,omitempty"`
	NonColor bool `json:"non_color,omitempty"`

	// Scale and Offset map the UV space; Rotation is the mapping roll in
	// radians.
	Scale    UV      `json:"scale"`
	Offset   UV      `json:"offset"`
	Rotation float32 `json:"rotation,omitempty"`

	// Strength scales the channel effect. Only the bump channel encodes
	// it.
	Strength float32 `json:"strength,omitempty"`
}

// TextureExtension selects how an image tiles outside the unit UV square.
type TextureExtension uint8

const (
	// RepeatTexture tiles the image endlessly. It is the zero value.
	RepeatTexture TextureExtension = iota
	// ExtendTexture clamps to the border pixels.
	ExtendTexture
	// MirrorTexture tiles with alternating mirroring.
	MirrorTexture
	// ClipTexture renders nothing outside the unit square.
	ClipTexture
)

var textureExtensionStrings = [...]string{
	RepeatTexture: "repeat",
	ExtendTexture: "extend",
	MirrorTexture: "mirror",
	ClipTexture:   "clip",
}

// String returns a name for the extension mode, or "invalid".
func (t TextureExtension) String() string {
	if int(t) >= len(textureExtensionStrings) {
		return "invalid"
	}
	return textureExtensionStrings[t]
}

// MarshalText implements encoding.TextMarshaler.
func (t TextureExtension) MarshalText() ([]byte, error) {
	if int(t) >= len(textureExtensionStrings) {
		return nil, extensionError(t.String())
	}
	return []byte(textureExtensionStrings[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TextureExtension) UnmarshalText(b []byte) error {
	for i, s := range textureExtensionStrings {
		if s == string(b) {
			*t = TextureExtension(i)
			return nil
		}
	}
	return extensionError(string(b))
}

type extensionError string

func (err extensionError) Error() string {
	return "tdsfile: unknown texture extension \"" + string(err) + "\""
}
