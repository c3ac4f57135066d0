package tds

import (
	"github.com/scenekit/tdsfile"
)

// Edge visibility bits of a face flag word, low bit first.
const (
	edgeCA uint16 = 0x1
	edgeBC uint16 = 0x2
	edgeAB uint16 = 0x4
)

// triangle is one mesh face flattened for encoding. Vertex indices refer
// to the mesh vertex array until dedupUV rebinds them to the expanded
// array.
type triangle struct {
	v     [3]uint32
	uv    [3]tdsfile.UV
	slot  int
	image string
	flag  uint16
	group uint32
}

// checkFaces verifies that every face corner refers to a mesh vertex.
func checkFaces(m *tdsfile.Mesh) error {
	n := uint32(len(m.Vertices))
	for i := range m.Faces {
		for _, vi := range m.Faces[i].V {
			if vi >= n {
				return ErrVertexIndex
			}
		}
	}
	return nil
}

// uvKey rounds a texture coordinate pair to the precision at which
// coordinates merge during deduplication. The rounded pair is also what
// the file carries.
func uvKey(uv tdsfile.UV) tdsfile.UV {
	return tdsfile.UV{U: round6(uv.U), V: round6(uv.V)}
}

// extractTriangles flattens mesh faces for encoding. A face whose third
// corner is vertex zero rotates so the zero leads, with sharp edge flags
// and texture coordinates following the rotation. Material slot indices
// outside the slot list fall back to slot zero. Every triangle carries
// the mesh's representative image name.
func extractTriangles(m *tdsfile.Mesh, image string) []triangle {
	tris := make([]triangle, 0, len(m.Faces))
	for _, face := range m.Faces {
		v1, v2, v3 := face.V[0], face.V[1], face.V[2]
		ab, bc, ca := face.Sharp[0], face.Sharp[1], face.Sharp[2]
		var uv1, uv2, uv3 tdsfile.UV
		if m.HasUV {
			uv1 = uvKey(face.UV[0])
			uv2 = uvKey(face.UV[1])
			uv3 = uvKey(face.UV[2])
		}

		if v3 == 0 {
			v1, v2, v3 = v3, v1, v2
			ab, bc, ca = ca, ab, bc
			uv1, uv2, uv3 = uv3, uv1, uv2
		}

		var flag uint16
		if ca {
			flag |= edgeCA
		}
		if bc {
			flag |= edgeBC
		}
		if ab {
			flag |= edgeAB
		}

		slot := face.Material
		if slot < 0 || slot >= len(m.Materials) {
			slot = 0
		}

		var group uint32
		if face.Smooth {
			group = face.Group
		}

		tris = append(tris, triangle{
			v:     [3]uint32{v1, v2, v3},
			uv:    [3]tdsfile.UV{uv1, uv2, uv3},
			slot:  slot,
			image: image,
			flag:  flag,
			group: group,
		})
	}
	return tris
}

// dedupUV converts per-face texture coordinates to per-vertex ones. The
// format stores one coordinate pair per vertex, so a vertex appearing
// with several distinct pairs is emitted once per pair, duplicates
// contiguous in first-seen order, and triangle corners are rebound to the
// expanded array.
func dedupUV(verts []tdsfile.Vector3, tris []triangle) (vertArray, uvArray *valueArray) {
	unique := make([]map[tdsfile.UV]uint32, len(verts))
	coords := make([][]tdsfile.UV, len(verts))
	for i := range unique {
		unique[i] = make(map[tdsfile.UV]uint32)
	}

	for t := range tris {
		for i := 0; i < 3; i++ {
			vi := tris[t].v[i]
			key := tris[t].uv[i]
			if _, ok := unique[vi][key]; !ok {
				unique[vi][key] = uint32(len(coords[vi]))
				coords[vi] = append(coords[vi], key)
			}
		}
	}

	vertArray = newValueArray()
	uvArray = newValueArray()
	starts := make([]uint32, len(verts))
	next := uint32(0)
	for i, vert := range verts {
		starts[i] = next
		for _, uv := range coords[i] {
			vertArray.add(valuePoint(vert))
			uvArray.add(valueUV(uv))
		}
		next += uint32(len(coords[i]))
	}

	for t := range tris {
		for i := 0; i < 3; i++ {
			vi := tris[t].v[i]
			tris[t].v[i] = starts[vi] + unique[vi][tris[t].uv[i]]
		}
	}
	return vertArray, uvArray
}

// faceValue narrows a triangle to the wire face record.
func faceValue(t *triangle) valueFace {
	return valueFace{
		v1:   uint16(t.v[0]),
		v2:   uint16(t.v[1]),
		v3:   uint16(t.v[2]),
		flag: t.flag,
	}
}

// facesChunk builds the face array chunk and its material assignment
// subchunks. With texture coordinates present, faces group by their
// (material, image) pair in first-seen order and materialless faces
// group under the name "None". Without coordinates, assignment chunks
// exist only for named slots and face slot indices bind to the compacted
// slot list.
func facesChunk(m *tdsfile.Mesh, tris []triangle, names *nameRegistry) *chunk {
	faces := newChunk(tagFaces)
	faceList := newValueArray()

	if m.HasUV {
		type groupKey struct {
			material string
			image    string
		}
		type faceGroup struct {
			name  string
			faces *valueArray
		}
		groups := make(map[groupKey]*faceGroup)
		var order []*faceGroup
		for i := range tris {
			faceList.add(faceValue(&tris[i]))

			material := ""
			if len(m.Materials) > 0 {
				material = m.Materials[tris[i].slot]
			}
			key := groupKey{material: material, image: tris[i].image}
			group, ok := groups[key]
			if !ok {
				name := key.material
				if name == "" {
					name = "None"
				}
				group = &faceGroup{name: names.resolve(name), faces: newValueArray()}
				groups[key] = group
				order = append(order, group)
			}
			group.faces.add(valueUshort(uint16(i)))
		}

		faces.add(faceList)
		for _, group := range order {
			sub := newChunk(tagFaceMaterial)
			sub.add(valueString(group.name))
			sub.add(group.faces)
			faces.addChild(sub)
		}
	} else {
		var matNames []string
		var matFaces []*valueArray
		for _, name := range m.Materials {
			if name != "" {
				matNames = append(matNames, names.resolve(name))
				matFaces = append(matFaces, newValueArray())
			}
		}

		for i := range tris {
			faceList.add(faceValue(&tris[i]))
			if tris[i].slot < len(matFaces) {
				matFaces[tris[i].slot].add(valueUshort(uint16(i)))
			}
		}

		faces.add(faceList)
		for i, name := range matNames {
			sub := newChunk(tagFaceMaterial)
			sub.add(valueString(name))
			sub.add(matFaces[i])
			faces.addChild(sub)
		}
	}

	smooth := false
	for i := range m.Faces {
		if m.Faces[i].Smooth {
			smooth = true
			break
		}
	}
	if smooth {
		sub := newChunk(tagSmoothGroups)
		for i := range tris {
			sub.add(valueUint(tris[i].group))
		}
		faces.addChild(sub)
	}

	return faces
}

// matrixChunk encodes the local transform: the rotation rows of the
// transposed matrix, then the translation, every component rounded to
// six places. The translation of an object whose parent is tracked is
// the cross product of its position and the negated parent position.
func matrixChunk(obj *tdsfile.Object, matrix tdsfile.Matrix4, positions map[string]tdsfile.Vector3) *chunk {
	c := newChunk(tagMeshMatrix)

	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			c.add(valueFloat(round6(matrix[row][col])))
		}
	}

	translate := matrix.Translation()
	if parent, ok := positions[obj.Parent]; obj.Parent != "" && ok {
		translate = positions[obj.Name].Cross(parent.Neg())
	}
	c.add(valueFloat(round6(translate.X)))
	c.add(valueFloat(round6(translate.Y)))
	c.add(valueFloat(round6(translate.Z)))

	return c
}

// meshChunk builds the triangle mesh chunk for an object: vertices,
// faces with material assignments, texture coordinates when present, and
// the local transform. Vertices are expected in final export space.
func meshChunk(obj *tdsfile.Object, m *tdsfile.Mesh, verts []tdsfile.Vector3, matrix tdsfile.Matrix4, image string, names *nameRegistry, positions map[string]tdsfile.Vector3) *chunk {
	tris := extractTriangles(m, image)

	var vertArray, uvArray *valueArray
	if m.HasUV {
		vertArray, uvArray = dedupUV(verts, tris)
	} else {
		vertArray = newValueArray()
		for _, vert := range verts {
			vertArray.add(valuePoint(vert))
		}
	}

	mesh := newChunk(tagObjectMesh)

	vertChunk := newChunk(tagVertices)
	vertChunk.add(vertArray)
	mesh.addChild(vertChunk)

	mesh.addChild(facesChunk(m, tris, names))

	if uvArray != nil {
		uvChunk := newChunk(tagUV)
		uvChunk.add(uvArray)
		mesh.addChild(uvChunk)
	}

	mesh.addChild(matrixChunk(obj, matrix, positions))

	return mesh
}
