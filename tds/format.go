// Package tds implements the encoding of scenes to the 3D Studio binary
// file format.
//
// Overview
//
// A .3ds file is a tree of chunks. Every chunk begins with a 6-byte header:
// a 16-bit tag identifying what the chunk contains, followed by a 32-bit
// length covering the header, the chunk's own data, and all nested chunks.
// Multi-byte values are little-endian. Counted arrays carry a 16-bit
// element count, which bounds meshes at 65535 vertices and faces.
//
// The file starts with a PRIMARY chunk wrapping everything else. Scene
// data (mesh version, master scale, ambient color, materials and objects)
// lives under an OBJECTINFO chunk; the optional animation hierarchy lives
// under a KFDATA chunk. Because every length covers the entire subtree,
// the encoder assembles the full chunk tree in memory, sizes it bottom-up,
// and only then streams it depth-first to the writer. Nothing is seeked
// or patched after the fact.
//
// The encoder in this package takes a tdsfile.Scene and produces a file
// laid out the way the established tooling expects: version 3 container,
// mesh version 3, keyframe revision 5.
package tds

// Container tags.
const (
	tagPrimary     uint16 = 0x4D4D // File root.
	tagVersion     uint16 = 0x0002 // Container version.
	tagObjectInfo  uint16 = 0x3D3D // Scene data root.
	tagMeshVersion uint16 = 0x3D3E // Mesh data version.
	tagKFData      uint16 = 0xB000 // Keyframe data root.
	tagMasterScale uint16 = 0x0100 // Global unit scale.
	tagAmbient     uint16 = 0x2100 // Scene ambient color.
)

// Shared value tags, nested inside color and percentage holders.
const (
	tagColorFloat    uint16 = 0x0010 // Color as 3 floats.
	tagColorByte     uint16 = 0x0011 // Color as 3 bytes.
	tagColorByteLin  uint16 = 0x0012 // Gamma-corrected byte color.
	tagColorFloatLin uint16 = 0x0013 // Gamma-corrected float color.
	tagPercentInt    uint16 = 0x0030 // Percentage as 16-bit integer.
	tagPercentFloat  uint16 = 0x0031 // Percentage as float.
)

// Material tags.
const (
	tagMaterial       uint16 = 0xAFFF // Material block.
	tagMatName        uint16 = 0xA000 // Material name.
	tagMatAmbient     uint16 = 0xA010 // Ambient color.
	tagMatDiffuse     uint16 = 0xA020 // Diffuse color.
	tagMatSpecular    uint16 = 0xA030 // Specular color.
	tagMatShininess   uint16 = 0xA040 // Shininess ratio.
	tagMatShin2       uint16 = 0xA041 // Shininess intensity.
	tagMatShin3       uint16 = 0xA042 // Reflection dimming.
	tagMatTrans       uint16 = 0xA050 // Transparency ratio.
	tagMatSelfIllum   uint16 = 0xA080 // Self illumination flag.
	tagMatSelfIlmPct  uint16 = 0xA084 // Self illumination ratio.
	tagMatWire        uint16 = 0xA085 // Wireframe rendering flag.
	tagMatWireSize    uint16 = 0xA087 // Wire size in pixels.
	tagMatFaceMap     uint16 = 0xA088 // Face mapped textures flag.
	tagMatPhongSoft   uint16 = 0xA08C // Phong softening flag.
	tagMatWireAbs     uint16 = 0xA08E // Wire size in units flag.
	tagMatShading     uint16 = 0xA100 // Shading method.
	tagMatDiffuseMap  uint16 = 0xA200 // Diffuse texture map.
	tagMatSpecularMap uint16 = 0xA204 // Specular texture map.
	tagMatOpacityMap  uint16 = 0xA210 // Opacity texture map.
	tagMatReflectMap  uint16 = 0xA220 // Reflection texture map.
	tagMatBumpMap     uint16 = 0xA230 // Bump texture map.
	tagMatBumpPct     uint16 = 0xA252 // Bump intensity ratio.
	tagMatTex2Map     uint16 = 0xA33A // Secondary texture map.
	tagMatShinMap     uint16 = 0xA33C // Shininess texture map.
	tagMatSelfIlmMap  uint16 = 0xA33D // Self illumination map.
)

// Texture map tags, nested inside material map chunks.
const (
	tagMapFile    uint16 = 0xA300 // Image file name.
	tagMapTiling  uint16 = 0xA351 // Tiling flag word.
	tagMapBlur    uint16 = 0xA353 // Texture blurring factor.
	tagMapUScale  uint16 = 0xA354 // U axis scale.
	tagMapVScale  uint16 = 0xA356 // V axis scale.
	tagMapUOffset uint16 = 0xA358 // U axis offset.
	tagMapVOffset uint16 = 0xA35A // V axis offset.
	tagMapAngle   uint16 = 0xA35C // Mapping rotation angle.
	tagMapColor1  uint16 = 0xA360 // Blend tint 1.
	tagMapColor2  uint16 = 0xA362 // Blend tint 2.
	tagMapColorR  uint16 = 0xA364 // Red tint.
	tagMapColorG  uint16 = 0xA366 // Green tint.
	tagMapColorB  uint16 = 0xA368 // Blue tint.
)

// Object tags.
const (
	tagObject       uint16 = 0x4000 // Named object block.
	tagObjectMesh   uint16 = 0x4100 // Triangle mesh.
	tagObjectLight  uint16 = 0x4600 // Light source.
	tagObjectCamera uint16 = 0x4700 // Camera.
)

// Mesh tags, nested inside a mesh chunk.
const (
	tagVertices     uint16 = 0x4110 // Vertex array.
	tagVertexFlags  uint16 = 0x4111 // Vertex flag array.
	tagFaces        uint16 = 0x4120 // Face array.
	tagFaceMaterial uint16 = 0x4130 // Faces assigned to a material.
	tagUV           uint16 = 0x4140 // Vertex texture coordinates.
	tagSmoothGroups uint16 = 0x4150 // Face smoothing groups.
	tagMeshMatrix   uint16 = 0x4160 // Local transform matrix.
)

// Light and camera tags.
const (
	tagLightMultiplier uint16 = 0x465B // Light energy multiplier.
	tagSpotlight       uint16 = 0x4610 // Spotlight parameters.
	tagSpotRoll        uint16 = 0x4656 // Spotlight roll angle.
	tagSpotShadowed    uint16 = 0x4630 // Spotlight casts shadows.
	tagSpotSeeCone     uint16 = 0x4650 // Show the spotlight cone.
	tagSpotRectangle   uint16 = 0x4651 // Rectangular spotlight.
	tagCameraRanges    uint16 = 0x4720 // Camera atmosphere ranges.
)

// Keyframe tags.
const (
	tagKFHeader      uint16 = 0xB00A // Keyframe header.
	tagKFSegment     uint16 = 0xB008 // Active animation segment.
	tagKFCurrentTime uint16 = 0xB009 // Current frame.
	tagAmbientNode   uint16 = 0xB001 // Ambient color node.
	tagObjectNode    uint16 = 0xB002 // Mesh or dummy node.
	tagCameraNode    uint16 = 0xB003 // Camera node.
	tagTargetNode    uint16 = 0xB004 // Camera target node.
	tagLightNode     uint16 = 0xB005 // Light node.
	tagLTargetNode   uint16 = 0xB006 // Spotlight target node.
	tagSpotNode      uint16 = 0xB007 // Spotlight node.
	tagNodeID        uint16 = 0xB030 // Node identifier.
	tagNodeHeader    uint16 = 0xB010 // Node name and flags.
	tagInstanceName  uint16 = 0xB011 // Instance name for dummies.
	tagParentName    uint16 = 0x80F0 // Parent object name.
	tagPivot         uint16 = 0xB013 // Object pivot point.
	tagBoundBox      uint16 = 0xB014 // Object bounding box.
	tagMorphSmooth   uint16 = 0xB015 // Auto smooth angle.
	tagPosTrack      uint16 = 0xB020 // Position track.
	tagRotTrack      uint16 = 0xB021 // Rotation track.
	tagScaleTrack    uint16 = 0xB022 // Scale track.
	tagFOVTrack      uint16 = 0xB023 // Field of view track.
	tagRollTrack     uint16 = 0xB024 // Roll track.
	tagColorTrack    uint16 = 0xB025 // Color track.
	tagHotspotTrack  uint16 = 0xB027 // Hotspot angle track.
	tagFalloffTrack  uint16 = 0xB028 // Falloff angle track.
)

// Protocol constants.
const (
	containerVersion uint32 = 3      // Written to the version chunk.
	meshVersion      uint32 = 3      // Written to the mesh version chunk.
	kfRevision       uint16 = 0x0005 // Keyframe header revision.
	masterScale             = 1.0    // Written to the master scale chunk.

	// noParent fills the parent slot of every node header; hierarchy is
	// carried by parent name chunks instead.
	noParent uint16 = 0xFFFF
)
