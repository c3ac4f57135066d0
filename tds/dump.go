package tds

import (
	"bufio"
	"fmt"
	"io"

	"github.com/scenekit/tdsfile"
)

// Dump writes to w a readable rendering of the chunk tree the scene
// encodes to. Each chunk prints its tag, its conventional name when one
// exists, and its encoded size; values and nested chunks indent beneath
// it. The rendering covers exactly what Encode would emit.
func (e Encoder) Dump(w io.Writer, scene *tdsfile.Scene) (warn, err error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	if scene == nil {
		return nil, ErrNilScene
	}

	sc := newSceneCodec(scene, e.transform(), e.SelectedOnly, e.Keyframes)
	root := sc.assemble()

	bw := bufio.NewWriter(w)
	dumpChunk(bw, 0, root)
	bw.WriteByte('\n')
	if err := bw.Flush(); err != nil {
		return sc.warns.Return(), err
	}
	return sc.warns.Return(), nil
}

func dumpChunk(w *bufio.Writer, indent int, c *chunk) {
	fmt.Fprintf(w, "%04X", c.tag)
	if name, ok := tagNames[c.tag]; ok {
		w.WriteByte(' ')
		w.WriteString(name)
	}
	fmt.Fprintf(w, " (size:%d) {", c.measure())
	for _, v := range c.values {
		dumpNewline(w, indent+1)
		if arr, ok := v.(*valueArray); ok {
			fmt.Fprintf(w, "(count:%d) {", arr.len())
			for _, item := range arr.values {
				dumpNewline(w, indent+2)
				w.WriteString(item.String())
			}
			dumpNewline(w, indent+1)
			w.WriteByte('}')
		} else {
			w.WriteString(v.String())
		}
	}
	for _, child := range c.children {
		dumpNewline(w, indent+1)
		dumpChunk(w, indent+1, child)
	}
	dumpNewline(w, indent)
	w.WriteByte('}')
}

func dumpNewline(w *bufio.Writer, indent int) {
	w.WriteByte('\n')
	for i := 0; i < indent; i++ {
		w.WriteByte('\t')
	}
}

// tagNames maps chunk tags to the names established 3D Studio tooling
// knows them by.
var tagNames = map[uint16]string{
	tagPrimary:     "PRIMARY",
	tagVersion:     "VERSION",
	tagObjectInfo:  "OBJECTINFO",
	tagMeshVersion: "MESHVERSION",
	tagKFData:      "KFDATA",
	tagMasterScale: "MASTERSCALE",
	tagAmbient:     "AMBIENTLIGHT",

	tagColorFloat:    "COLOR_F",
	tagColorByte:     "COLOR_24",
	tagColorByteLin:  "LIN_COLOR_24",
	tagColorFloatLin: "LIN_COLOR_F",
	tagPercentInt:    "INT_PERCENTAGE",
	tagPercentFloat:  "FLOAT_PERCENTAGE",

	tagMaterial:       "MATERIAL",
	tagMatName:        "MATNAME",
	tagMatAmbient:     "MATAMBIENT",
	tagMatDiffuse:     "MATDIFFUSE",
	tagMatSpecular:    "MATSPECULAR",
	tagMatShininess:   "MATSHINESS",
	tagMatShin2:       "MATSHIN2",
	tagMatShin3:       "MATSHIN3",
	tagMatTrans:       "MATTRANS",
	tagMatSelfIllum:   "MATSELFILLUM",
	tagMatSelfIlmPct:  "MATSELFILPCT",
	tagMatWire:        "MATWIRE",
	tagMatWireSize:    "MATWIRESIZE",
	tagMatFaceMap:     "MATFACEMAP",
	tagMatPhongSoft:   "MATPHONGSOFT",
	tagMatWireAbs:     "MATWIREABS",
	tagMatShading:     "MATSHADING",
	tagMatDiffuseMap:  "MATDIFFUSEMAP",
	tagMatSpecularMap: "MATSPECMAP",
	tagMatOpacityMap:  "MATOPACMAP",
	tagMatReflectMap:  "MATREFLMAP",
	tagMatBumpMap:     "MATBUMPMAP",
	tagMatBumpPct:     "MATBUMPPERCENT",
	tagMatTex2Map:     "MATTEX2MAP",
	tagMatShinMap:     "MATSHINMAP",
	tagMatSelfIlmMap:  "MATSELFILMAP",

	tagMapFile:    "MATMAPFILE",
	tagMapTiling:  "MATMAPTILING",
	tagMapBlur:    "MATMAPTEXBLUR",
	tagMapUScale:  "MATMAPUSCALE",
	tagMapVScale:  "MATMAPVSCALE",
	tagMapUOffset: "MATMAPUOFFSET",
	tagMapVOffset: "MATMAPVOFFSET",
	tagMapAngle:   "MATMAPANG",
	tagMapColor1:  "MATMAPCOL1",
	tagMapColor2:  "MATMAPCOL2",
	tagMapColorR:  "MATMAPRCOL",
	tagMapColorG:  "MATMAPGCOL",
	tagMapColorB:  "MATMAPBCOL",

	tagObject:       "OBJECT",
	tagObjectMesh:   "OBJECT_MESH",
	tagObjectLight:  "OBJECT_LIGHT",
	tagObjectCamera: "OBJECT_CAMERA",

	tagVertices:     "OBJECT_VERTICES",
	tagVertexFlags:  "OBJECT_VERTFLAGS",
	tagFaces:        "OBJECT_FACES",
	tagFaceMaterial: "OBJECT_MATERIAL",
	tagUV:           "OBJECT_UV",
	tagSmoothGroups: "OBJECT_SMOOTH",
	tagMeshMatrix:   "OBJECT_TRANS_MATRIX",

	tagLightMultiplier: "LIGHT_MULTIPLIER",
	tagSpotlight:       "LIGHT_SPOTLIGHT",
	tagSpotRoll:        "LIGHT_SPOT_ROLL",
	tagSpotShadowed:    "LIGHT_SPOT_SHADOWED",
	tagSpotSeeCone:     "LIGHT_SEE_CONE",
	tagSpotRectangle:   "LIGHT_SPOT_RECTANGLE",
	tagCameraRanges:    "OBJECT_CAM_RANGES",

	tagKFHeader:      "KFHDR",
	tagKFSegment:     "KFSEG",
	tagKFCurrentTime: "KFCURTIME",
	tagAmbientNode:   "AMBIENT_NODE",
	tagObjectNode:    "OBJECT_NODE",
	tagCameraNode:    "CAMERA_NODE",
	tagTargetNode:    "TARGET_NODE",
	tagLightNode:     "LIGHT_NODE",
	tagLTargetNode:   "LTARGET_NODE",
	tagSpotNode:      "SPOT_NODE",
	tagNodeID:        "NODE_ID",
	tagNodeHeader:    "NODE_HDR",
	tagInstanceName:  "INSTANCE_NAME",
	tagParentName:    "PARENT_NAME",
	tagPivot:         "PIVOT",
	tagBoundBox:      "BOUNDBOX",
	tagMorphSmooth:   "MORPH_SMOOTH",
	tagPosTrack:      "POS_TRACK",
	tagRotTrack:      "ROT_TRACK",
	tagScaleTrack:    "SCL_TRACK",
	tagFOVTrack:      "FOV_TRACK",
	tagRollTrack:     "ROLL_TRACK",
	tagColorTrack:    "COL_TRACK",
	tagHotspotTrack:  "HOTSPOT_TRACK",
	tagFalloffTrack:  "FALLOFF_TRACK",
}
