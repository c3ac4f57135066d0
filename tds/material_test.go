package tds

import (
	"reflect"
	"testing"

	"github.com/scenekit/tdsfile"
)

// percentOf digs the percentage out of a percent chunk.
func percentOf(t *testing.T, c *chunk) uint16 {
	t.Helper()
	sub := childByTag(c, tagPercentInt)
	if sub == nil {
		t.Fatal("expected a percentage subchunk")
	}
	return uint16(sub.values[0].(valueUshort))
}

// byteColorOf digs the color out of a color chunk.
func byteColorOf(t *testing.T, c *chunk) valueByteColor {
	t.Helper()
	sub := childByTag(c, tagColorByte)
	if sub == nil {
		t.Fatal("expected a byte color subchunk")
	}
	return sub.values[0].(valueByteColor)
}

func TestPercentChunk(t *testing.T) {
	cases := []struct {
		pct  float32
		want uint16
	}{
		{0, 0},
		{0.8, 80},
		{1, 100},
		{1.5, 150},
	}
	for _, c := range cases {
		got := percentOf(t, percentChunk(tagMatShininess, c.pct))
		if got != c.want {
			t.Errorf("percent %g: expected %d, got %d", c.pct, c.want, got)
		}
	}
}

func TestBasename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain.png", "plain.png"},
		{"dir/sub/plain.png", "plain.png"},
		{`C:\tex\brick.png`, "brick.png"},
		{"mixed/dir\\brick.png", "brick.png"},
	}
	for _, c := range cases {
		if got := basename(c.in); got != c.want {
			t.Errorf("basename(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestTextureChunk(t *testing.T) {
	c := textureChunk(tagMatDiffuseMap, []string{"", "a.png", "dir/b.png"}, newNameRegistry())
	if c == nil {
		t.Fatal("expected a texture chunk")
	}
	var files []string
	for _, sub := range c.children {
		if sub.tag == tagMapFile {
			files = append(files, string(sub.values[0].(valueString)))
		}
	}
	if want := []string{"a.png", "b.png"}; !reflect.DeepEqual(files, want) {
		t.Errorf("wrong files (expected %v, got %v)", want, files)
	}
	if got := percentOf(t, c); got != 100 {
		t.Errorf("wrong strength (expected 100, got %d)", got)
	}

	if textureChunk(tagMatDiffuseMap, nil, newNameRegistry()) != nil {
		t.Error("expected nil chunk for no images")
	}
	if textureChunk(tagMatDiffuseMap, []string{""}, newNameRegistry()) != nil {
		t.Error("expected nil chunk for empty image names")
	}
}

func TestMaterialTextureChunkTiling(t *testing.T) {
	tint := &tdsfile.Color3{R: 1}
	cases := []struct {
		name string
		slot tdsfile.TextureSlot
		tint *tdsfile.Color3
		want uint16
	}{
		{"repeat", tdsfile.TextureSlot{Extension: tdsfile.RepeatTexture}, nil, 0},
		{"extend", tdsfile.TextureSlot{Extension: tdsfile.ExtendTexture}, nil, tileDecal},
		{"mirror", tdsfile.TextureSlot{Extension: tdsfile.MirrorTexture}, nil, tileMirror},
		{"clip", tdsfile.TextureSlot{Extension: tdsfile.ClipTexture}, nil, tileNoWrap},
		{"alpha untinted", tdsfile.TextureSlot{UseAlpha: true}, nil, tileAlphaSrc},
		{"alpha tinted", tdsfile.TextureSlot{UseAlpha: true}, tint, tileAlphaSrc | tileRGBTint},
		{"alpha non-color", tdsfile.TextureSlot{UseAlpha: true, NonColor: true}, tint, tileAlphaSrc | tileTint},
	}
	for _, c := range cases {
		slot := c.slot
		slot.Image = "tex.png"
		m := materialTextureChunk(tagMatDiffuseMap, &slot, 1, c.tint, newNameRegistry())
		if m == nil {
			t.Fatalf("%s: expected a map chunk", c.name)
		}
		tiling := childByTag(m, tagMapTiling)
		if tiling == nil {
			t.Fatalf("%s: expected a tiling chunk", c.name)
		}
		if got := uint16(tiling.values[0].(valueUshort)); got != c.want {
			t.Errorf("%s: wrong flags (expected %#x, got %#x)", c.name, c.want, got)
		}
	}
}

func TestMaterialTextureChunkLayout(t *testing.T) {
	slot := &tdsfile.TextureSlot{
		Image:    `maps\stone.png`,
		Scale:    tdsfile.UV{U: 2, V: 3},
		Offset:   tdsfile.UV{U: 0.5, V: 0.25},
		Rotation: 0.75,
	}
	tint := &tdsfile.Color3{R: 1, G: 0.5, B: 0}
	m := materialTextureChunk(tagMatSpecularMap, slot, 0.5, tint, newNameRegistry())
	if m == nil {
		t.Fatal("expected a map chunk")
	}

	want := []uint16{
		tagPercentInt, tagMapFile, tagMapTiling, tagMapBlur,
		tagMapUScale, tagMapVScale, tagMapUOffset, tagMapVOffset,
		tagMapAngle, tagMapColor1,
	}
	if got := childTags(m); !reflect.DeepEqual(got, want) {
		t.Errorf("wrong layout (expected %04X, got %04X)", want, got)
	}

	if got := string(childByTag(m, tagMapFile).values[0].(valueString)); got != "stone.png" {
		t.Errorf(`wrong file (expected "stone.png", got %q)`, got)
	}
	if got := childByTag(m, tagMapUScale).values[0].(valueFloat); got != 2 {
		t.Errorf("wrong U scale (expected 2, got %g)", got)
	}
	if got := childByTag(m, tagMapVOffset).values[0].(valueFloat); got != 0.25 {
		t.Errorf("wrong V offset (expected 0.25, got %g)", got)
	}
	if got := childByTag(m, tagMapColor1).values[0].(valueByteColor); got != (valueByteColor{R: 1, G: 0.5, B: 0}) {
		t.Errorf("wrong tint (got %v)", got)
	}

	// Without a tint the blend color chunk is absent.
	m = materialTextureChunk(tagMatOpacityMap, slot, 0.5, nil, newNameRegistry())
	if childByTag(m, tagMapColor1) != nil {
		t.Error("untinted channel must not carry a blend color")
	}

	if materialTextureChunk(tagMatDiffuseMap, nil, 1, nil, newNameRegistry()) != nil {
		t.Error("expected nil chunk for an unbound slot")
	}
	if materialTextureChunk(tagMatDiffuseMap, &tdsfile.TextureSlot{}, 1, nil, newNameRegistry()) != nil {
		t.Error("expected nil chunk for an imageless slot")
	}
}

func TestMaterialChunkDefault(t *testing.T) {
	c := materialChunk(nil, "ignored.png", newNameRegistry())

	want := []uint16{
		tagMatName, tagMatAmbient, tagMatDiffuse, tagMatSpecular,
		tagMatShininess, tagMatShin2, tagMatShading,
	}
	if got := childTags(c); !reflect.DeepEqual(got, want) {
		t.Errorf("wrong layout (expected %04X, got %04X)", want, got)
	}

	if got := string(childByTag(c, tagMatName).values[0].(valueString)); got != "None" {
		t.Errorf(`wrong name (expected "None", got %q)`, got)
	}
	if got := byteColorOf(t, childByTag(c, tagMatDiffuse)); got != (valueByteColor{R: 0.8, G: 0.8, B: 0.8}) {
		t.Errorf("wrong diffuse (got %v)", got)
	}
	if got := percentOf(t, childByTag(c, tagMatShininess)); got != 80 {
		t.Errorf("wrong shininess (expected 80, got %d)", got)
	}
	if got := childByTag(c, tagMatShading).values[0].(valueUshort); got != valueUshort(shadingFlat) {
		t.Errorf("wrong shading (expected %d, got %d)", shadingFlat, got)
	}
}

func TestMaterialChunkViewport(t *testing.T) {
	mat := &tdsfile.Material{
		Name:          "Wood",
		DiffuseColor:  tdsfile.Color3{R: 0.6, G: 0.4, B: 0.2},
		DiffuseAlpha:  0.75,
		LineColor:     tdsfile.Color3{R: 0.1, G: 0.1, B: 0.1},
		SpecularColor: tdsfile.Color3{R: 1, G: 1, B: 1},
		Specular:      0.5,
		Roughness:     0.25,
		Metallic:      0.1,
	}
	c := materialChunk(mat, "", newNameRegistry())

	want := []uint16{
		tagMatName, tagMatAmbient, tagMatDiffuse, tagMatSpecular,
		tagMatShininess, tagMatShin2, tagMatShin3, tagMatTrans,
		tagMatShading,
	}
	if got := childTags(c); !reflect.DeepEqual(got, want) {
		t.Errorf("wrong layout (expected %04X, got %04X)", want, got)
	}

	if got := childByTag(c, tagMatShading).values[0].(valueUshort); got != valueUshort(shadingGouraud) {
		t.Errorf("wrong shading (expected %d, got %d)", shadingGouraud, got)
	}
	if got := percentOf(t, childByTag(c, tagMatShininess)); got != 75 {
		t.Errorf("wrong shininess (expected 75, got %d)", got)
	}
	if got := percentOf(t, childByTag(c, tagMatShin2)); got != 50 {
		t.Errorf("wrong specular level (expected 50, got %d)", got)
	}
	if got := percentOf(t, childByTag(c, tagMatShin3)); got != 10 {
		t.Errorf("wrong metallic level (expected 10, got %d)", got)
	}
	if got := percentOf(t, childByTag(c, tagMatTrans)); got != 25 {
		t.Errorf("wrong transparency (expected 25, got %d)", got)
	}
	if got := byteColorOf(t, childByTag(c, tagMatAmbient)); got != valueByteColor(mat.LineColor) {
		t.Errorf("ambient must carry the wire color (got %v)", got)
	}
}

func TestMaterialChunkViewportImage(t *testing.T) {
	mat := &tdsfile.Material{
		Name:           "Bark",
		DiffuseTexture: &tdsfile.TextureSlot{Image: "textures/bark.png"},
	}
	c := materialChunk(mat, "textures/bark.png", newNameRegistry())

	m := childByTag(c, tagMatDiffuseMap)
	if m == nil {
		t.Fatal("expected a diffuse map chunk")
	}
	if got := string(childByTag(m, tagMapFile).values[0].(valueString)); got != "bark.png" {
		t.Errorf(`wrong file (expected "bark.png", got %q)`, got)
	}
	// The bare map chunk of the viewport path has no mapping parameters.
	if childByTag(m, tagMapTiling) != nil {
		t.Error("viewport map chunk must not carry tiling")
	}

	// A booked image without a bound diffuse channel yields no map.
	mat.DiffuseTexture = nil
	c = materialChunk(mat, "textures/bark.png", newNameRegistry())
	if childByTag(c, tagMatDiffuseMap) != nil {
		t.Error("expected no map chunk without a bound image")
	}
}

func TestMaterialChunkNodes(t *testing.T) {
	mat := &tdsfile.Material{
		Name:             "Shader",
		Nodes:            true,
		BaseColor:        tdsfile.Color3{R: 1},
		DiffuseColor:     tdsfile.Color3{R: 0.5, G: 0.5, B: 0.5},
		SpecularColor:    tdsfile.Color3{B: 1},
		EmissionColor:    tdsfile.Color3{R: 0.1, G: 0.1, B: 0.1},
		Specular:         0.25,
		Roughness:        0.5,
		Alpha:            1,
		EmissionStrength: 0.2,
		DiffuseTexture:   &tdsfile.TextureSlot{Image: "diff.png"},
		BumpTexture:      &tdsfile.TextureSlot{Image: "bump.png", Strength: 0.3},
		SecondaryImages:  []string{"extra.png"},
	}
	c := materialChunk(mat, "", newNameRegistry())

	want := []uint16{
		tagMatName, tagMatAmbient, tagMatDiffuse, tagMatSpecular,
		tagMatShininess, tagMatShin2, tagMatShin3, tagMatTrans,
		tagMatSelfIlmPct, tagMatShading,
		tagMatDiffuseMap, tagMatBumpMap, tagMatBumpPct, tagMatTex2Map,
	}
	if got := childTags(c); !reflect.DeepEqual(got, want) {
		t.Errorf("wrong layout (expected %04X, got %04X)", want, got)
	}

	if got := childByTag(c, tagMatShading).values[0].(valueUshort); got != valueUshort(shadingPhong) {
		t.Errorf("wrong shading (expected %d, got %d)", shadingPhong, got)
	}
	if got := byteColorOf(t, childByTag(c, tagMatDiffuse)); got != valueByteColor(mat.BaseColor) {
		t.Errorf("diffuse must carry the base color (got %v)", got)
	}
	if got := byteColorOf(t, childByTag(c, tagMatAmbient)); got != valueByteColor(mat.EmissionColor) {
		t.Errorf("ambient must carry the emission color (got %v)", got)
	}
	if got := percentOf(t, childByTag(c, tagMatSelfIlmPct)); got != 20 {
		t.Errorf("wrong self illumination (expected 20, got %d)", got)
	}
	if got := percentOf(t, childByTag(c, tagMatTrans)); got != 0 {
		t.Errorf("wrong transparency (expected 0, got %d)", got)
	}

	// Base color percent: 0.7 + (1+0+0)*0.1.
	diff := childByTag(c, tagMatDiffuseMap)
	if got := percentOf(t, diff); got != 80 {
		t.Errorf("wrong diffuse strength (expected 80, got %d)", got)
	}
	// The base color channel blends with the viewport diffuse color.
	if got := childByTag(diff, tagMapColor1); got == nil {
		t.Error("expected a blend color on the diffuse map")
	} else if tintc := got.values[0].(valueByteColor); tintc != valueByteColor(mat.DiffuseColor) {
		t.Errorf("wrong blend color (got %v)", tintc)
	}
	if got := percentOf(t, childByTag(c, tagMatBumpPct)); got != 30 {
		t.Errorf("wrong bump strength (expected 30, got %d)", got)
	}
}

func TestMaterialChunkNodesSecondaryFallback(t *testing.T) {
	mat := &tdsfile.Material{
		Name:            "Decal",
		Nodes:           true,
		Alpha:           1,
		SecondaryImages: []string{"decal.png"},
	}
	c := materialChunk(mat, "", newNameRegistry())

	// With no primary texture the extra image claims the diffuse slot.
	if childByTag(c, tagMatTex2Map) != nil {
		t.Error("expected no secondary map without a primary texture")
	}
	m := childByTag(c, tagMatDiffuseMap)
	if m == nil {
		t.Fatal("expected the extra image on the diffuse slot")
	}
	if got := string(childByTag(m, tagMapFile).values[0].(valueString)); got != "decal.png" {
		t.Errorf(`wrong file (expected "decal.png", got %q)`, got)
	}
}
