package tdsfile

// Animation is a set of keyframed channels over a frame range.
//
// Channels are addressed by a path and a component index, mirroring how
// hosts address animatable properties: "location" index 1 is the Y
// position, "color" index 0 is red, and so on. Scalar channels use
// index 0.
type Animation struct {
	// FrameStart and FrameEnd delimit the authored range.
	FrameStart int `json:"frame_start"`
	FrameEnd   int `json:"frame_end"`

	// Curves holds the animated channels in authored order.
	Curves []*Curve `json:"curves"`
}

// CurveFor returns the curve animating the given channel component, or nil.
func (a *Animation) CurveFor(path string, index int) *Curve {
	if a == nil {
		return nil
	}
	for _, c := range a.Curves {
		if c != nil && c.Path == path && c.Index == index {
			return c
		}
	}
	return nil
}

// Curve is one keyframed channel component.
type Curve struct {
	// Path names the channel; Index selects the component.
	Path  string `json:"path"`
	Index int    `json:"index"`

	// Keys are the keyframes, sorted by ascending frame.
	Keys []Keyframe `json:"keys"`
}

// Keyframe is a single key on a curve. Frames may be fractional.
type Keyframe struct {
	Frame float32 `json:"frame"`
	Value float32 `json:"value"`
}

// Evaluate samples the curve at a frame. Between keys the value is
// interpolated linearly; outside the keyed range it clamps to the first or
// last key. A curve with no keys evaluates to zero.
func (c *Curve) Evaluate(frame float32) float32 {
	keys := c.Keys
	if len(keys) == 0 {
		return 0
	}
	if frame <= keys[0].Frame {
		return keys[0].Value
	}
	last := keys[len(keys)-1]
	if frame >= last.Frame {
		return last.Value
	}
	for i := 1; i < len(keys); i++ {
		if frame > keys[i].Frame {
			continue
		}
		a, b := keys[i-1], keys[i]
		if b.Frame == a.Frame {
			return b.Value
		}
		t := (frame - a.Frame) / (b.Frame - a.Frame)
		return a.Value + t*(b.Value-a.Value)
	}
	return last.Value
}
