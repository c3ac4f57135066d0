package tds

import (
	"github.com/chewxy/math32"

	"github.com/scenekit/tdsfile"
)

// Node header names for nodes that do not carry the object name.
const (
	dummyName   = "$$$DUMMY"
	ambientName = "$AMBIENT$"
)

// Node header flag words.
const (
	nodeFlagsObject uint16 = 0x0040 // Renderable object nodes.
	nodeFlagsDummy  uint16 = 0x4000 // Dummy and ambient nodes.
	nodeFlagsTarget uint16 = 0x0010 // Aim target nodes.

	nodeFlags2Smooth uint16 = 0x02 // Auto smooth bit of the second word.
)

func nodeIDChunk(id uint16) *chunk {
	c := newChunk(tagNodeID)
	c.add(valueUshort(id))
	return c
}

// nodeHeader builds the node header chunk: name, two flag words, and the
// parent slot. The parent slot always holds the no-parent sentinel;
// hierarchy rides in separate parent name chunks.
func nodeHeader(name string, flags1, flags2 uint16) *chunk {
	h := newChunk(tagNodeHeader)
	h.add(valueString(name))
	h.add(valueUshort(flags1))
	h.add(valueUshort(flags2))
	h.add(valueUshort(noParent))
	return h
}

// meshBounds returns the axis-aligned corners of the mesh in local space.
func meshBounds(verts []tdsfile.Vector3) (min, max tdsfile.Vector3) {
	if len(verts) == 0 {
		return
	}
	min, max = verts[0], verts[0]
	for _, v := range verts[1:] {
		min.X = math32.Min(min.X, v.X)
		min.Y = math32.Min(min.Y, v.Y)
		min.Z = math32.Min(min.Z, v.Z)
		max.X = math32.Max(max.X, v.X)
		max.Y = math32.Max(max.Y, v.Y)
		max.Z = math32.Max(max.Z, v.Z)
	}
	return min, max
}

// aimTarget derives the point an object at pos aims at, from its X tilt
// and Z heading. The vertical reach scales with the distance to the
// vertical axis, signed like Y.
func aimTarget(pos tdsfile.Vector3, rx, rz float32) tdsfile.Vector3 {
	diag := math32.Copysign(math32.Sqrt(pos.X*pos.X+pos.Y*pos.Y), pos.Y)
	return tdsfile.Vector3{
		X: pos.X + pos.Y*math32.Tan(rz),
		Y: pos.Y + pos.X*math32.Tan(halfPi-rz),
		Z: diag * math32.Tan(halfPi-rx),
	}
}

// objectNode builds the keyframe node for one object. Meshes and
// anything unrecognized become object nodes, empties become dummy nodes
// named through an instance name chunk, lights and cameras get their own
// node tags. The node identifier must already be allocated.
func (sc *sceneCodec) objectNode(obj *tdsfile.Object) *chunk {
	var (
		mesh   *tdsfile.Mesh
		light  *tdsfile.Light
		camera *tdsfile.Camera
		empty  bool
	)
	tag := tagObjectNode
	switch data := obj.Data.(type) {
	case *tdsfile.Mesh:
		mesh = data
	case *tdsfile.Empty:
		empty = true
	case *tdsfile.Light:
		light = data
		if light.Spot != nil {
			tag = tagSpotNode
		} else {
			tag = tagLightNode
		}
	case *tdsfile.Camera:
		camera = data
		tag = tagCameraNode
	}
	node := newChunk(tag)

	node.addChild(nodeIDChunk(sc.nodeID[obj.Name]))

	if empty {
		node.addChild(nodeHeader(dummyName, nodeFlagsDummy, 0))
	} else {
		flags2 := uint16(0)
		if mesh != nil && mesh.AutoSmooth {
			flags2 = nodeFlags2Smooth
		}
		node.addChild(nodeHeader(sc.names.resolve(obj.Name), nodeFlagsObject, flags2))
	}

	parented := false
	if obj.Parent != "" {
		_, parented = sc.nodeID[obj.Parent]
	}
	if parented {
		p := newChunk(tagParentName)
		p.add(valueString(sc.names.resolve(obj.Parent)))
		node.addChild(p)
	}

	if empty {
		inst := newChunk(tagInstanceName)
		inst.add(valueString(sc.names.resolve(obj.Name)))
		node.addChild(inst)
	}

	if mesh != nil || empty {
		pivot := newChunk(tagPivot)
		pivot.add(valuePoint(sc.positions[obj.Name]))
		node.addChild(pivot)

		bmin := tdsfile.Vector3{X: -1, Y: -1, Z: -1}
		bmax := tdsfile.Vector3{X: 1, Y: 1, Z: 1}
		if mesh != nil {
			bmin, bmax = meshBounds(mesh.Vertices)
		}
		bounds := newChunk(tagBoundBox)
		bounds.add(valuePoint(bmin))
		bounds.add(valuePoint(bmax))
		node.addChild(bounds)

		if mesh != nil && mesh.AutoSmooth {
			ms := newChunk(tagMorphSmooth)
			ms.add(valueFloat(round6(mesh.AutoSmoothAngle)))
			node.addChild(ms)
		}
	}

	// Rest values come from the memos. A child of a tracked parent rests
	// relative to it, with unit scale.
	pos := sc.positions[obj.Name]
	rot := sc.rotations[obj.Name]
	size := sc.scales[obj.Name]
	if parented {
		pos = pos.Sub(sc.positions[obj.Parent])
		rot = rot.Mul(sc.rotations[obj.Parent].Inverse())
		size = tdsfile.Vector3{X: 1, Y: 1, Z: 1}
	}

	node.addChild(positionTrack(obj.Animation, pos))
	if mesh != nil || empty {
		node.addChild(rotationTrack(obj.Animation, obj.Rotation, rot))
		node.addChild(scaleTrack(obj.Animation, size))
	}
	if camera != nil {
		node.addChild(fovTrack(camera.Animation, camera))
		node.addChild(rollTrack(obj.Animation, obj.Rotation.Y))
	}
	if light != nil {
		node.addChild(colorTrack(light.Animation, light.Color))
		if light.Spot != nil {
			node.addChild(hotspotTrack(light.Animation, light.Spot))
			node.addChild(falloffTrack(light.Animation, light.Spot))
			node.addChild(rollTrack(obj.Animation, obj.Rotation.Y))
		}
	}

	return node
}

// targetNode builds the aim target companion node of a camera or
// spotlight. The target carries only a position track, derived from the
// owner's location and rotation channels with the vertical reach
// negated.
func (sc *sceneCodec) targetNode(obj *tdsfile.Object) *chunk {
	tag := tagTargetNode
	if _, ok := obj.Data.(*tdsfile.Light); ok {
		tag = tagLTargetNode
	}
	node := newChunk(tag)
	node.addChild(nodeIDChunk(sc.allocID()))
	node.addChild(nodeHeader(sc.names.resolve(obj.Name), nodeFlagsTarget, 0))

	pos := sc.positions[obj.Name]
	euler := sc.rotations[obj.Name].Euler()

	anim := obj.Animation
	node.addChild(buildTrack(tagPosTrack, anim,
		func(c *chunk, frame float32) {
			p := evalVector(anim, "location", frame, pos)
			e := evalEuler(anim, frame, euler)
			t := aimTarget(p, e.X, e.Z)
			t.Z = -t.Z
			c.add(valuePoint(t))
		},
		func(c *chunk) {
			t := aimTarget(pos, euler.X, euler.Z)
			t.Z = -t.Z
			c.add(valuePoint(t))
		}))

	return node
}

// ambientNode builds the scene ambient color node. Its identifier is the
// no-parent sentinel rather than an allocated one.
func (sc *sceneCodec) ambientNode(world *tdsfile.World) *chunk {
	node := newChunk(tagAmbientNode)
	node.addChild(nodeIDChunk(noParent))
	node.addChild(nodeHeader(ambientName, nodeFlagsDummy, 0))
	node.addChild(colorTrack(world.Animation, world.AmbientColor))
	return node
}
