package tds

import (
	"github.com/chewxy/math32"

	"github.com/scenekit/tdsfile"
	"github.com/scenekit/tdsfile/errors"
)

// materialKey identifies one material chunk: a material name paired with
// a representative image name, either of which may be empty.
type materialKey struct {
	material string
	image    string
}

// meshEntry is a mesh object with its geometry baked for export.
type meshEntry struct {
	obj    *tdsfile.Object
	mesh   *tdsfile.Mesh
	matrix tdsfile.Matrix4
	verts  []tdsfile.Vector3
	image  string
}

// sceneCodec carries the state of one encoding session: the exported
// object set, the name registry, channel memos feeding the keyframe
// nodes, node identifiers, and warnings collected along the way.
type sceneCodec struct {
	scene     *tdsfile.Scene
	objects   []*tdsfile.Object
	transform tdsfile.Matrix4
	keyframes bool

	names *nameRegistry
	warns errors.Errors

	// Rest-state memos taken from the object channels. Keyframe nodes
	// and parented mesh transforms read these.
	positions map[string]tdsfile.Vector3
	rotations map[string]tdsfile.Quaternion
	scales    map[string]tdsfile.Vector3

	// nodeID doubles as the set of objects hierarchy lookups can see.
	nodeID map[string]uint16
	nextID uint16

	matSeen  map[materialKey]bool
	matOrder []materialKey
}

func newSceneCodec(scene *tdsfile.Scene, transform tdsfile.Matrix4, selectedOnly, keyframes bool) *sceneCodec {
	sc := &sceneCodec{
		scene:     scene,
		transform: transform,
		keyframes: keyframes,
		names:     newNameRegistry(),
		positions: make(map[string]tdsfile.Vector3),
		rotations: make(map[string]tdsfile.Quaternion),
		scales:    make(map[string]tdsfile.Vector3),
		nodeID:    make(map[string]uint16),
		matSeen:   make(map[materialKey]bool),
	}
	for _, obj := range scene.Objects {
		if obj == nil || obj.Hidden || obj.Data == nil {
			continue
		}
		if selectedOnly && !obj.Selected {
			continue
		}
		sc.objects = append(sc.objects, obj)
	}
	return sc
}

// allocID returns the next node identifier in sequence.
func (sc *sceneCodec) allocID() uint16 {
	id := sc.nextID
	sc.nextID++
	return id
}

// memoize records the channel rest state of an object and assigns its
// node identifier. Mesh and dummy memos store the inverse rotation;
// light and camera memos store it plain.
func (sc *sceneCodec) memoize(obj *tdsfile.Object, invert bool) {
	q := obj.Rotation.Quaternion()
	if invert {
		q = q.Inverse()
	}
	sc.positions[obj.Name] = obj.Position
	sc.rotations[obj.Name] = q
	sc.scales[obj.Name] = obj.Scale
	sc.nodeID[obj.Name] = sc.allocID()
}

// bookMaterial registers a material pair the first time it is seen.
// Material chunks are later emitted in booking order.
func (sc *sceneCodec) bookMaterial(name, image string) {
	key := materialKey{material: name, image: image}
	if !sc.matSeen[key] {
		sc.matSeen[key] = true
		sc.matOrder = append(sc.matOrder, key)
	}
}

// collectMeshes bakes mesh geometry through the scene transform and
// books the material pairs their faces use. Meshes with texture
// coordinates book one pair per face, pairing each face's material with
// that material's image; meshes without book each named slot with no
// image.
func (sc *sceneCodec) collectMeshes() []meshEntry {
	var entries []meshEntry
	for _, obj := range sc.objects {
		mesh, ok := obj.Data.(*tdsfile.Mesh)
		if !ok {
			continue
		}

		matrix := sc.transform.Mul(obj.Matrix)
		verts := make([]tdsfile.Vector3, len(mesh.Vertices))
		for i, v := range mesh.Vertices {
			verts[i] = matrix.TransformPoint(v)
		}

		image := ""
		if mesh.HasUV {
			// The representative image riding every face is the image of
			// the last material slot, bound or not.
			for _, slot := range mesh.Materials {
				image = sc.scene.Material(slot).Image()
			}
			for i := range mesh.Faces {
				name := ""
				if len(mesh.Materials) > 0 {
					slot := mesh.Faces[i].Material
					if slot < 0 || slot >= len(mesh.Materials) {
						slot = 0
					}
					name = mesh.Materials[slot]
				}
				sc.bookMaterial(name, sc.scene.Material(name).Image())
			}
		} else {
			for _, name := range mesh.Materials {
				if name != "" {
					sc.bookMaterial(name, "")
				}
			}
		}

		entries = append(entries, meshEntry{
			obj:    obj,
			mesh:   mesh,
			matrix: matrix,
			verts:  verts,
			image:  image,
		})
	}
	return entries
}

// kfdataChunk builds the keyframe data root: header with revision, scene
// name and segment length, the active segment, and the current time.
func (sc *sceneCodec) kfdataChunk() *chunk {
	kf := newChunk(tagKFData)

	name := asciiName(sc.scene.Name)
	if name == "" {
		name = "Untitled"
	}

	hdr := newChunk(tagKFHeader)
	hdr.add(valueUshort(kfRevision))
	hdr.add(valueString(name))
	hdr.add(valueUint(uint32(int32(sc.scene.FrameEnd - sc.scene.FrameStart))))
	kf.addChild(hdr)

	seg := newChunk(tagKFSegment)
	seg.add(valueUint(uint32(int32(sc.scene.FrameStart))))
	seg.add(valueUint(uint32(int32(sc.scene.FrameEnd))))
	kf.addChild(seg)

	cur := newChunk(tagKFCurrentTime)
	cur.add(valueUint(uint32(int32(sc.scene.FrameCurrent))))
	kf.addChild(cur)

	return kf
}

// assemble builds the chunk tree for the whole scene. Scene data nests
// under the object info chunk in a fixed order: versions and scale, the
// ambient color, material chunks in booking order, then object chunks
// for meshes, lights and cameras. The keyframe hierarchy, when enabled,
// collects nodes in the same order with dummies after meshes.
func (sc *sceneCodec) assemble() *chunk {
	primary := newChunk(tagPrimary)

	version := newChunk(tagVersion)
	version.add(valueUint(containerVersion))
	primary.addChild(version)

	info := newChunk(tagObjectInfo)

	meshVer := newChunk(tagMeshVersion)
	meshVer.add(valueUint(meshVersion))
	info.addChild(meshVer)

	mscale := newChunk(tagMasterScale)
	mscale.add(valueFloat(masterScale))
	info.addChild(mscale)

	var kf *chunk
	if sc.keyframes {
		kf = sc.kfdataChunk()
	}

	if world := sc.scene.World; world != nil {
		amb := newChunk(tagAmbient)
		rgb := newChunk(tagColorFloat)
		rgb.add(valueFloatColor(world.AmbientColor))
		amb.addChild(rgb)
		info.addChild(amb)
		if kf != nil {
			kf.addChild(sc.ambientNode(world))
		}
	}

	entries := sc.collectMeshes()

	for _, key := range sc.matOrder {
		info.addChild(materialChunk(sc.scene.Material(key.material), key.image, sc.names))
	}

	// Meshes memoize first, then dummies, so their node identifiers come
	// out in that order. Lights and cameras memoize at their visit.
	for _, e := range entries {
		sc.memoize(e.obj, true)
	}
	for _, obj := range sc.objects {
		if _, ok := obj.Data.(*tdsfile.Empty); ok {
			sc.memoize(obj, true)
		}
	}

	for _, e := range entries {
		if err := checkFaces(e.mesh); err != nil {
			sc.warns = sc.warns.Append(ObjectError{Object: e.obj.Name, Cause: err})
		} else {
			objChunk := newChunk(tagObject)
			objChunk.add(valueString(sc.names.resolve(e.obj.Name)))
			objChunk.addChild(meshChunk(e.obj, e.mesh, e.verts, e.matrix, e.image, sc.names, sc.positions))

			// Meshes too large for the 16-bit array counts are dropped;
			// the export continues without them.
			if objChunk.validate() {
				info.addChild(objChunk)
			} else {
				sc.warns = sc.warns.Append(ObjectError{Object: e.obj.Name, Cause: ErrArrayLimit})
			}
		}
		if kf != nil {
			kf.addChild(sc.objectNode(e.obj))
		}
	}

	if kf != nil {
		for _, obj := range sc.objects {
			if _, ok := obj.Data.(*tdsfile.Empty); ok {
				kf.addChild(sc.objectNode(obj))
			}
		}
	}

	for _, obj := range sc.objects {
		light, ok := obj.Data.(*tdsfile.Light)
		if !ok {
			continue
		}

		objChunk := newChunk(tagObject)
		objChunk.add(valueString(sc.names.resolve(obj.Name)))

		lightChunk := newChunk(tagObjectLight)
		lightChunk.add(valuePoint(obj.Position))

		rgb := newChunk(tagColorFloat)
		rgb.add(valueFloatColor(light.Color))
		lightChunk.addChild(rgb)

		mult := newChunk(tagLightMultiplier)
		mult.add(valueFloat(light.Energy * 0.001))
		lightChunk.addChild(mult)

		if spot := light.Spot; spot != nil {
			cone := degrees(spot.Size)
			hotspot := cone - spot.Blend*math32.Floor(cone)

			spotChunk := newChunk(tagSpotlight)
			spotChunk.add(valuePoint(aimTarget(obj.Position, obj.Rotation.X, obj.Rotation.Z)))
			spotChunk.add(valueFloat(round4(hotspot)))
			spotChunk.add(valueFloat(round4(cone)))

			roll := newChunk(tagSpotRoll)
			roll.add(valueFloat(round6(obj.Rotation.Y)))
			spotChunk.addChild(roll)

			if spot.ShowCone {
				spotChunk.addChild(newChunk(tagSpotSeeCone))
			}
			if spot.Square {
				spotChunk.addChild(newChunk(tagSpotRectangle))
			}
			lightChunk.addChild(spotChunk)
		}

		objChunk.addChild(lightChunk)
		info.addChild(objChunk)

		if kf != nil {
			sc.memoize(obj, false)
			kf.addChild(sc.objectNode(obj))
			if light.Spot != nil {
				kf.addChild(sc.targetNode(obj))
			}
		}
	}

	for _, obj := range sc.objects {
		camera, ok := obj.Data.(*tdsfile.Camera)
		if !ok {
			continue
		}

		objChunk := newChunk(tagObject)
		objChunk.add(valueString(sc.names.resolve(obj.Name)))

		camChunk := newChunk(tagObjectCamera)
		camChunk.add(valuePoint(obj.Position))
		camChunk.add(valuePoint(aimTarget(obj.Position, obj.Rotation.X, obj.Rotation.Z)))
		camChunk.add(valueFloat(round6(obj.Rotation.Y)))
		camChunk.add(valueFloat(camera.Lens))
		objChunk.addChild(camChunk)
		info.addChild(objChunk)

		if kf != nil {
			sc.memoize(obj, false)
			kf.addChild(sc.objectNode(obj))
			kf.addChild(sc.targetNode(obj))
		}
	}

	primary.addChild(info)
	if kf != nil {
		primary.addChild(kf)
	}
	return primary
}
