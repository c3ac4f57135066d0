package tds

import (
	"math"
	"strings"

	"github.com/scenekit/tdsfile"
)

// Shading methods written to the shading chunk.
const (
	shadingWire    uint16 = 0
	shadingFlat    uint16 = 1
	shadingGouraud uint16 = 2
	shadingPhong   uint16 = 3
)

// Tiling flag word bits.
const (
	tileDecal    uint16 = 0x1  // Clamp to border pixels.
	tileMirror   uint16 = 0x2  // Mirror on alternate tiles.
	tileNoWrap   uint16 = 0x10 // No tiling outside the unit square.
	tileAlphaSrc uint16 = 0x40 // Source the image alpha channel.
	tileTint     uint16 = 0x80 // Tint non-color data.
	tileRGBTint  uint16 = 0x200
)

// colorChunk wraps a color in a byte color subchunk.
func colorChunk(tag uint16, color tdsfile.Color3) *chunk {
	c := newChunk(tag)
	sub := newChunk(tagColorByte)
	sub.add(valueByteColor(color))
	c.addChild(sub)
	return c
}

// percentChunk wraps a ratio in an integer percentage subchunk. The ratio
// scales by 100 and rounds; it is not clamped.
func percentChunk(tag uint16, pct float32) *chunk {
	c := newChunk(tag)
	sub := newChunk(tagPercentInt)
	sub.add(valueUshort(uint16(int32(math.Round(float64(pct) * 100)))))
	c.addChild(sub)
	return c
}

// basename returns the final element of an image path. Host paths of
// either separator convention appear in image references.
func basename(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// textureChunk builds a texture map chunk from bare image names: a full
// strength ratio followed by one file name chunk per image, without
// mapping parameters. Returns nil when no image is named.
func textureChunk(tag uint16, images []string, names *nameRegistry) *chunk {
	c := percentChunk(tag, 1)
	found := false
	for _, img := range images {
		if img == "" {
			continue
		}
		file := newChunk(tagMapFile)
		file.add(valueString(names.resolve(basename(img))))
		c.addChild(file)
		found = true
	}
	if !found {
		return nil
	}
	return c
}

// materialTextureChunk builds a texture map chunk from a bound slot,
// carrying the slot's mapping parameters. tint is the blend color of the
// base color and specular channels and is nil for every other channel.
// Returns nil when the slot is unbound.
func materialTextureChunk(tag uint16, slot *tdsfile.TextureSlot, pct float32, tint *tdsfile.Color3, names *nameRegistry) *chunk {
	if slot == nil || slot.Image == "" {
		return nil
	}
	c := percentChunk(tag, pct)

	file := newChunk(tagMapFile)
	file.add(valueString(names.resolve(basename(slot.Image))))
	c.addChild(file)

	var flags uint16
	switch slot.Extension {
	case tdsfile.ExtendTexture:
		flags |= tileDecal
	case tdsfile.MirrorTexture:
		flags |= tileMirror
	case tdsfile.ClipTexture:
		flags |= tileNoWrap
	}
	if slot.UseAlpha {
		flags |= tileAlphaSrc
		// The alpha source bit requires a tint bit on tintable channels.
		if tint != nil {
			if slot.NonColor {
				flags |= tileTint
			} else {
				flags |= tileRGBTint
			}
		}
	}
	tiling := newChunk(tagMapTiling)
	tiling.add(valueUshort(flags))
	c.addChild(tiling)

	blur := newChunk(tagMapBlur)
	blur.add(valueFloat(1.0))
	c.addChild(blur)

	uscale := newChunk(tagMapUScale)
	uscale.add(valueFloat(round6(slot.Scale.U)))
	c.addChild(uscale)

	vscale := newChunk(tagMapVScale)
	vscale.add(valueFloat(round6(slot.Scale.V)))
	c.addChild(vscale)

	uoffset := newChunk(tagMapUOffset)
	uoffset.add(valueFloat(round6(slot.Offset.U)))
	c.addChild(uoffset)

	voffset := newChunk(tagMapVOffset)
	voffset.add(valueFloat(round6(slot.Offset.V)))
	c.addChild(voffset)

	angle := newChunk(tagMapAngle)
	angle.add(valueFloat(round6(slot.Rotation)))
	c.addChild(angle)

	if tint != nil {
		rgb := newChunk(tagMapColor1)
		rgb.add(valueByteColor(*tint))
		c.addChild(rgb)
	}

	return c
}

// materialChunk encodes one material of the library. A nil material
// stands for faces with an empty slot and encodes fixed defaults under
// the name "None". Node materials write the principled channels with
// phong shading and a texture map chunk per bound slot; other materials
// write the viewport colors with gouraud shading and, when image is not
// empty, a bare diffuse map chunk.
func materialChunk(mat *tdsfile.Material, image string, names *nameRegistry) *chunk {
	c := newChunk(tagMaterial)

	name := "None"
	if mat != nil {
		name = mat.Name
	}
	nameChunk := newChunk(tagMatName)
	nameChunk.add(valueString(names.resolve(name)))
	c.addChild(nameChunk)

	shading := newChunk(tagMatShading)

	switch {
	case mat == nil:
		shading.add(valueUshort(shadingFlat))
		c.addChild(colorChunk(tagMatAmbient, tdsfile.Color3{}))
		c.addChild(colorChunk(tagMatDiffuse, tdsfile.Color3{R: 0.8, G: 0.8, B: 0.8}))
		c.addChild(colorChunk(tagMatSpecular, tdsfile.Color3{R: 1, G: 1, B: 1}))
		c.addChild(percentChunk(tagMatShininess, 0.8))
		c.addChild(percentChunk(tagMatShin2, 1))
		c.addChild(shading)

	case mat.Nodes:
		shading.add(valueUshort(shadingPhong))
		c.addChild(colorChunk(tagMatAmbient, mat.EmissionColor))
		c.addChild(colorChunk(tagMatDiffuse, mat.BaseColor))
		c.addChild(colorChunk(tagMatSpecular, mat.SpecularColor))
		c.addChild(percentChunk(tagMatShininess, 1-mat.Roughness))
		c.addChild(percentChunk(tagMatShin2, mat.Specular))
		c.addChild(percentChunk(tagMatShin3, mat.Metallic))
		c.addChild(percentChunk(tagMatTrans, 1-mat.Alpha))
		c.addChild(percentChunk(tagMatSelfIlmPct, mat.EmissionStrength))
		c.addChild(shading)

		primaryTex := false

		cpct := 0.7 + (mat.BaseColor.R+mat.BaseColor.G+mat.BaseColor.B)*0.1
		if m := materialTextureChunk(tagMatDiffuseMap, mat.DiffuseTexture, cpct, &mat.DiffuseColor, names); m != nil {
			c.addChild(m)
			primaryTex = true
		}
		if m := materialTextureChunk(tagMatSpecularMap, mat.SpecularTexture, mat.Specular, &mat.SpecularColor, names); m != nil {
			c.addChild(m)
		}
		if m := materialTextureChunk(tagMatOpacityMap, mat.OpacityTexture, mat.DiffuseAlpha, nil, names); m != nil {
			c.addChild(m)
		}
		if m := materialTextureChunk(tagMatReflectMap, mat.ReflectionTexture, mat.Metallic, nil, names); m != nil {
			c.addChild(m)
		}
		if mat.BumpTexture != nil {
			bpct := mat.BumpTexture.Strength
			if m := materialTextureChunk(tagMatBumpMap, mat.BumpTexture, bpct, nil, names); m != nil {
				c.addChild(m)
				c.addChild(percentChunk(tagMatBumpPct, bpct))
			}
		}
		if m := materialTextureChunk(tagMatShinMap, mat.ShininessTexture, 1-mat.Roughness, nil, names); m != nil {
			c.addChild(m)
		}
		if m := materialTextureChunk(tagMatSelfIlmMap, mat.EmissionTexture, mat.EmissionStrength, nil, names); m != nil {
			c.addChild(m)
		}

		// Images that fit no channel ride along as a secondary texture,
		// or as the diffuse map when no channel claimed it.
		if len(mat.SecondaryImages) > 0 {
			tag := tagMatTex2Map
			if !primaryTex {
				tag = tagMatDiffuseMap
			}
			c.addChild(textureChunk(tag, mat.SecondaryImages, names))
		}

	default:
		shading.add(valueUshort(shadingGouraud))
		c.addChild(colorChunk(tagMatAmbient, mat.LineColor))
		c.addChild(colorChunk(tagMatDiffuse, mat.DiffuseColor))
		c.addChild(colorChunk(tagMatSpecular, mat.SpecularColor))
		c.addChild(percentChunk(tagMatShininess, 1-mat.Roughness))
		c.addChild(percentChunk(tagMatShin2, mat.Specular))
		c.addChild(percentChunk(tagMatShin3, mat.Metallic))
		c.addChild(percentChunk(tagMatTrans, 1-mat.DiffuseAlpha))
		c.addChild(shading)

		if image != "" {
			c.addChild(textureChunk(tagMatDiffuseMap, []string{mat.Image()}, names))
		}
	}

	return c
}
