package tds

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/scenekit/tdsfile"
)

// trackFlags is the flag word of every track header. 0x40 selects a
// single repeating segment.
const trackFlags uint16 = 0x40

const halfPi = math32.Pi / 2

// degrees converts radians to degrees.
func degrees(rad float32) float32 {
	return rad * (180 / math32.Pi)
}

// leadCurve returns the animation's first non-nil curve, whose key times
// define the keys of every track built from it. Nil when the animation
// has no usable curve.
func leadCurve(anim *tdsfile.Animation) *tdsfile.Curve {
	if anim == nil {
		return nil
	}
	for _, c := range anim.Curves {
		if c != nil {
			return c
		}
	}
	return nil
}

// keyTimes returns the lead curve's key times, distinct and ascending,
// with frame zero forced in. nkeys is the count the track header
// declares; it is taken before deduplication.
func keyTimes(lead *tdsfile.Curve) (frames []float32, nkeys int) {
	frames = make([]float32, 0, len(lead.Keys)+1)
	for _, kf := range lead.Keys {
		frames = append(frames, kf.Frame)
	}
	nkeys = len(frames)

	zero := false
	for _, f := range frames {
		if f == 0 {
			zero = true
			break
		}
	}
	if !zero {
		frames = append(frames, 0)
		nkeys++
	}

	seen := make(map[float32]bool, len(frames))
	distinct := frames[:0]
	for _, f := range frames {
		if !seen[f] {
			seen[f] = true
			distinct = append(distinct, f)
		}
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] < distinct[j] })
	return distinct, nkeys
}

// buildTrack assembles one track chunk. With curves present, animated
// appends the track value once per distinct lead-curve key time;
// otherwise static appends a single rest value keyed at frame zero. Key
// times truncate to whole frames on write.
func buildTrack(tag uint16, anim *tdsfile.Animation, animated func(*chunk, float32), static func(*chunk)) *chunk {
	c := newChunk(tag)
	c.add(valueUshort(trackFlags))

	if lead := leadCurve(anim); lead != nil {
		frames, nkeys := keyTimes(lead)
		c.add(valueUint(uint32(int32(anim.FrameStart))))
		c.add(valueUint(uint32(int32(anim.FrameEnd))))
		c.add(valueUint(uint32(nkeys)))
		for _, frame := range frames {
			c.add(valueUint(uint32(int32(frame))))
			c.add(valueUshort(0))
			animated(c, frame)
		}
		return c
	}

	c.add(valueUint(0))
	c.add(valueUint(0))
	c.add(valueUint(1))
	c.add(valueUint(0))
	c.add(valueUshort(0))
	static(c)
	return c
}

// evalChannel returns the channel component evaluated at frame, or rest
// when the component has no curve.
func evalChannel(anim *tdsfile.Animation, path string, index int, frame, rest float32) float32 {
	if c := anim.CurveFor(path, index); c != nil {
		return c.Evaluate(frame)
	}
	return rest
}

// evalVector evaluates a three-component channel, filling uncurved
// components from rest.
func evalVector(anim *tdsfile.Animation, path string, frame float32, rest tdsfile.Vector3) tdsfile.Vector3 {
	return tdsfile.Vector3{
		X: evalChannel(anim, path, 0, frame, rest.X),
		Y: evalChannel(anim, path, 1, frame, rest.Y),
		Z: evalChannel(anim, path, 2, frame, rest.Z),
	}
}

// evalEuler evaluates the rotation channel, filling uncurved components
// from rest.
func evalEuler(anim *tdsfile.Animation, frame float32, rest tdsfile.Euler) tdsfile.Euler {
	return tdsfile.Euler{
		X: evalChannel(anim, "rotation_euler", 0, frame, rest.X),
		Y: evalChannel(anim, "rotation_euler", 1, frame, rest.Y),
		Z: evalChannel(anim, "rotation_euler", 2, frame, rest.Z),
	}
}

// positionTrack keys the location channel; rest is the memoized position,
// parent-relative when the parent is tracked.
func positionTrack(anim *tdsfile.Animation, rest tdsfile.Vector3) *chunk {
	return buildTrack(tagPosTrack, anim,
		func(c *chunk, frame float32) {
			c.add(valuePoint(evalVector(anim, "location", frame, rest)))
		},
		func(c *chunk) {
			c.add(valuePoint(rest))
		})
}

// rotationTrack keys the rotation channel as axis-angle pairs. Animated
// keys derive from the euler channel as keyed; the rest value is the
// memoized quaternion, which carries the inversion and any parent
// composition.
func rotationTrack(anim *tdsfile.Animation, restEuler tdsfile.Euler, rest tdsfile.Quaternion) *chunk {
	return buildTrack(tagRotTrack, anim,
		func(c *chunk, frame float32) {
			axis, angle := evalEuler(anim, frame, restEuler).Quaternion().AxisAngle()
			c.add(valueAxisAngle{angle: angle, x: axis.X, y: axis.Y, z: axis.Z})
		},
		func(c *chunk) {
			axis, angle := rest.AxisAngle()
			c.add(valueAxisAngle{angle: angle, x: axis.X, y: axis.Y, z: axis.Z})
		})
}

// scaleTrack keys the scale channel; rest is the memoized scale, unit for
// parented objects.
func scaleTrack(anim *tdsfile.Animation, rest tdsfile.Vector3) *chunk {
	return buildTrack(tagScaleTrack, anim,
		func(c *chunk, frame float32) {
			c.add(valuePoint(evalVector(anim, "scale", frame, rest)))
		},
		func(c *chunk) {
			c.add(valuePoint(rest))
		})
}

// rollTrack keys the bank angle in degrees, read from the second euler
// component.
func rollTrack(anim *tdsfile.Animation, restY float32) *chunk {
	return buildTrack(tagRollTrack, anim,
		func(c *chunk, frame float32) {
			y := evalChannel(anim, "rotation_euler", 1, frame, restY)
			c.add(valueFloat(round4(degrees(y))))
		},
		func(c *chunk) {
			c.add(valueFloat(round4(degrees(restY))))
		})
}

// colorTrack keys the color channel as float triples.
func colorTrack(anim *tdsfile.Animation, rest tdsfile.Color3) *chunk {
	return buildTrack(tagColorTrack, anim,
		func(c *chunk, frame float32) {
			c.add(valueFloatColor(tdsfile.Color3{
				R: evalChannel(anim, "color", 0, frame, rest.R),
				G: evalChannel(anim, "color", 1, frame, rest.G),
				B: evalChannel(anim, "color", 2, frame, rest.B),
			}))
		},
		func(c *chunk) {
			c.add(valueFloatColor(rest))
		})
}

// fovTrack keys the field of view in degrees, derived from the lens
// channel and the fixed sensor width.
func fovTrack(anim *tdsfile.Animation, cam *tdsfile.Camera) *chunk {
	return buildTrack(tagFOVTrack, anim,
		func(c *chunk, frame float32) {
			lens := evalChannel(anim, "lens", 0, frame, cam.Lens)
			fov := 2 * math32.Atan(cam.SensorWidth/(2*lens))
			c.add(valueFloat(round4(degrees(fov))))
		},
		func(c *chunk) {
			c.add(valueFloat(round4(degrees(cam.Angle()))))
		})
}

// hotspotTrack keys the inner cone angle in degrees. The beam angle stays
// fixed; only the blend channel is keyed.
func hotspotTrack(anim *tdsfile.Animation, spot *tdsfile.Spot) *chunk {
	beam := degrees(spot.Size)
	return buildTrack(tagHotspotTrack, anim,
		func(c *chunk, frame float32) {
			blend := evalChannel(anim, "spot_blend", 0, frame, spot.Blend)
			c.add(valueFloat(round4(beam - blend*math32.Floor(beam))))
		},
		func(c *chunk) {
			c.add(valueFloat(round4(beam - spot.Blend*math32.Floor(beam))))
		})
}

// falloffTrack keys the outer cone angle in degrees from the spot size
// channel.
func falloffTrack(anim *tdsfile.Animation, spot *tdsfile.Spot) *chunk {
	return buildTrack(tagFalloffTrack, anim,
		func(c *chunk, frame float32) {
			size := evalChannel(anim, "spot_size", 0, frame, spot.Size)
			c.add(valueFloat(round4(degrees(size))))
		},
		func(c *chunk) {
			c.add(valueFloat(round4(degrees(spot.Size))))
		})
}
