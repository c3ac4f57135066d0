package tdsfile

import (
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Vector3 is a 3D vector or point.
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Add returns v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Neg returns the negation of v.
func (v Vector3) Neg() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of v and w.
func (v Vector3) Dot(w Vector3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product of v and w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// UV is a 2D texture coordinate.
type UV struct {
	U float32 `json:"u"`
	V float32 `json:"v"`
}

// Color3 is an RGB color with components nominally in [0, 1].
type Color3 struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
}

// Euler is a rotation as XYZ euler angles in radians: the X rotation is
// applied first, then Y, then Z.
type Euler struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Quaternion returns the rotation as a quaternion.
func (e Euler) Quaternion() Quaternion {
	cx, sx := math32.Cos(e.X/2), math32.Sin(e.X/2)
	cy, sy := math32.Cos(e.Y/2), math32.Sin(e.Y/2)
	cz, sz := math32.Cos(e.Z/2), math32.Sin(e.Z/2)
	return Quaternion{
		W: cz*cy*cx + sz*sy*sx,
		X: cz*cy*sx - sz*sy*cx,
		Y: cz*sy*cx + sz*cy*sx,
		Z: sz*cy*cx - cz*sy*sx,
	}
}

// Quaternion is a rotation quaternion with the scalar part first.
type Quaternion struct {
	W float32 `json:"w"`
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Mul returns the composed rotation q then applied after r, that is the
// quaternion product q*r.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y + q.Y*r.W + q.Z*r.X - q.X*r.Z,
		Z: q.W*r.Z + q.Z*r.W + q.X*r.Y - q.Y*r.X,
	}
}

// Inverse returns the inverse rotation. The zero quaternion inverts to
// itself.
func (q Quaternion) Inverse() Quaternion {
	n := q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
	if n == 0 {
		return q
	}
	return Quaternion{q.W / n, -q.X / n, -q.Y / n, -q.Z / n}
}

// AxisAngle returns the rotation as an axis and an angle in radians. The
// identity rotation yields a zero axis with a zero angle.
func (q Quaternion) AxisAngle() (axis Vector3, angle float32) {
	w := q.W
	if w > 1 {
		w = 1
	} else if w < -1 {
		w = -1
	}
	ha := math32.Acos(w)
	si := math32.Sin(ha)
	if math32.Abs(si) < 1e-7 {
		si = 1
	}
	return Vector3{q.X / si, q.Y / si, q.Z / si}, 2 * ha
}

// Euler returns the rotation as XYZ euler angles. The quaternion must be
// normalized.
func (q Quaternion) Euler() Euler {
	m00 := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	m10 := 2 * (q.X*q.Y + q.W*q.Z)
	m20 := 2 * (q.X*q.Z - q.W*q.Y)
	m21 := 2 * (q.Y*q.Z + q.W*q.X)
	m22 := 1 - 2*(q.X*q.X+q.Y*q.Y)
	m11 := 1 - 2*(q.X*q.X+q.Z*q.Z)
	m12 := 2 * (q.Y*q.Z - q.W*q.X)

	cy := math32.Hypot(m00, m10)
	if cy > 1e-7 {
		return Euler{
			X: math32.Atan2(m21, m22),
			Y: math32.Atan2(-m20, cy),
			Z: math32.Atan2(m10, m00),
		}
	}
	return Euler{
		X: math32.Atan2(-m12, m11),
		Y: math32.Atan2(-m20, cy),
		Z: 0,
	}
}

// Matrix4 is a 4x4 transform indexed as [row][column], applied to column
// vectors. The zero value is the degenerate all-zero matrix, which callers
// that accept an optional transform treat as the identity.
type Matrix4 [4][4]float32

// Identity returns the identity transform.
func Identity() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns the matrix product m*n.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var out Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[i][k] * n[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// TransformPoint applies the transform to a point.
func (m Matrix4) TransformPoint(v Vector3) Vector3 {
	return Vector3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3],
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3],
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3],
	}
}

// Translation returns the translation column of the transform.
func (m Matrix4) Translation() Vector3 {
	return Vector3{m[0][3], m[1][3], m[2][3]}
}

var axisVectors = map[string]Vector3{
	"X":  {X: 1},
	"Y":  {Y: 1},
	"Z":  {Z: 1},
	"-X": {X: -1},
	"-Y": {Y: -1},
	"-Z": {Z: -1},
}

// AxisMatrix builds the rotation that maps the scene's Y-forward, Z-up
// frame onto the given forward and up axes. Each axis is one of "X", "Y",
// "Z", "-X", "-Y" or "-Z", case-insensitive. The axes must be
// perpendicular.
func AxisMatrix(forward, up string) (Matrix4, error) {
	f, ok := axisVectors[strings.ToUpper(forward)]
	if !ok {
		return Matrix4{}, &AxisError{Axis: forward}
	}
	u, ok := axisVectors[strings.ToUpper(up)]
	if !ok {
		return Matrix4{}, &AxisError{Axis: up}
	}
	if f.Dot(u) != 0 {
		return Matrix4{}, &AxisError{Axis: forward + "/" + up, Conflict: true}
	}
	r := f.Cross(u)
	return Matrix4{
		{r.X, f.X, u.X, 0},
		{r.Y, f.Y, u.Y, 0},
		{r.Z, f.Z, u.Z, 0},
		{0, 0, 0, 1},
	}, nil
}

// AxisError indicates an invalid axis pair given to AxisMatrix.
type AxisError struct {
	// Axis is the offending axis name, or the pair when Conflict is set.
	Axis string
	// Conflict indicates the axes were valid but not perpendicular.
	Conflict bool
}

func (err *AxisError) Error() string {
	if err.Conflict {
		return "axes " + err.Axis + " are not perpendicular"
	}
	return "invalid axis " + strconv.Quote(err.Axis)
}

// fieldOfView returns the horizontal view angle in radians for a sensor
// width and focal length, both in millimeters.
func fieldOfView(sensor, lens float32) float32 {
	return 2 * math32.Atan(sensor/(2*lens))
}
