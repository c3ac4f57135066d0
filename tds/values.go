package tds

import (
	"fmt"
	"math"
	"strconv"

	"github.com/anaminus/parse"

	"github.com/scenekit/tdsfile"
)

// round6 rounds v to six decimal places. The scaled value is formed in
// float64; float32 runs out of precision there.
func round6(v float32) float32 {
	return float32(math.Round(float64(v)*1e6) / 1e6)
}

// round4 rounds v to four decimal places.
func round4(v float32) float32 {
	return float32(math.Round(float64(v)*1e4) / 1e4)
}

// Byte sizes of the fixed primitives.
const (
	zb     = 1
	zu16   = 2
	zu32   = 4
	zf32   = 4
	zHead  = 6 // Chunk header: tag + length.
	zPoint = 3 * zf32
	zUV    = 2 * zf32
	zFace  = 4 * zu16
)

// value is a unit of chunk payload. Writes go through the shared
// BinaryWriter; a true result signals that the writer has failed and the
// caller must unwind.
type value interface {
	fmt.Stringer

	// size returns the number of bytes the value encodes to.
	size() uint32

	// write encodes the value. Returns true if the write failed.
	write(fw *parse.BinaryWriter) bool
}

// valueUshort is a 16-bit unsigned integer.
type valueUshort uint16

func (v valueUshort) size() uint32 { return zu16 }

func (v valueUshort) write(fw *parse.BinaryWriter) bool {
	return fw.Number(uint16(v))
}

func (v valueUshort) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// valueUint is a 32-bit unsigned integer.
type valueUint uint32

func (v valueUint) size() uint32 { return zu32 }

func (v valueUint) write(fw *parse.BinaryWriter) bool {
	return fw.Number(uint32(v))
}

func (v valueUint) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// valueFloat is a 32-bit IEEE 754 float.
type valueFloat float32

func (v valueFloat) size() uint32 { return zf32 }

func (v valueFloat) write(fw *parse.BinaryWriter) bool {
	return fw.Number(float32(v))
}

func (v valueFloat) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// valueString is a NUL-terminated string.
type valueString string

func (v valueString) size() uint32 { return uint32(len(v)) + 1 }

func (v valueString) write(fw *parse.BinaryWriter) bool {
	if fw.Bytes([]byte(v)) {
		return true
	}
	return fw.Number(byte(0))
}

func (v valueString) String() string {
	return strconv.Quote(string(v))
}

// valuePoint is three floats: a position, a scale, or any other vector.
type valuePoint tdsfile.Vector3

func (v valuePoint) size() uint32 { return zPoint }

func (v valuePoint) write(fw *parse.BinaryWriter) bool {
	if fw.Number(v.X) {
		return true
	}
	if fw.Number(v.Y) {
		return true
	}
	return fw.Number(v.Z)
}

func (v valuePoint) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// valueAxisAngle is a rotation as an angle in radians followed by the
// rotation axis.
type valueAxisAngle struct {
	angle   float32
	x, y, z float32
}

func (v valueAxisAngle) size() uint32 { return 4 * zf32 }

func (v valueAxisAngle) write(fw *parse.BinaryWriter) bool {
	if fw.Number(v.angle) {
		return true
	}
	if fw.Number(v.x) {
		return true
	}
	if fw.Number(v.y) {
		return true
	}
	return fw.Number(v.z)
}

func (v valueAxisAngle) String() string {
	return fmt.Sprintf("(%g: %g, %g, %g)", v.angle, v.x, v.y, v.z)
}

// valueUV is a texture coordinate pair.
type valueUV tdsfile.UV

func (v valueUV) size() uint32 { return zUV }

func (v valueUV) write(fw *parse.BinaryWriter) bool {
	if fw.Number(v.U) {
		return true
	}
	return fw.Number(v.V)
}

func (v valueUV) String() string {
	return fmt.Sprintf("(%g, %g)", v.U, v.V)
}

// valueFloatColor is a color as three floats.
type valueFloatColor tdsfile.Color3

func (v valueFloatColor) size() uint32 { return 3 * zf32 }

func (v valueFloatColor) write(fw *parse.BinaryWriter) bool {
	if fw.Number(v.R) {
		return true
	}
	if fw.Number(v.G) {
		return true
	}
	return fw.Number(v.B)
}

func (v valueFloatColor) String() string {
	return fmt.Sprintf("{%g, %g, %g}", v.R, v.G, v.B)
}

// valueByteColor is a color as three bytes. Components scale by 255 and
// truncate toward zero, never round.
type valueByteColor tdsfile.Color3

func (v valueByteColor) size() uint32 { return 3 * zb }

func (v valueByteColor) write(fw *parse.BinaryWriter) bool {
	if fw.Number(uint8(int32(255 * v.R))) {
		return true
	}
	if fw.Number(uint8(int32(255 * v.G))) {
		return true
	}
	return fw.Number(uint8(int32(255 * v.B)))
}

func (v valueByteColor) String() string {
	return fmt.Sprintf("{%d, %d, %d}", int32(255*v.R), int32(255*v.G), int32(255*v.B))
}

// valueFace is a triangle: three vertex indices and a flag word carrying
// the edge visibility bits.
type valueFace struct {
	v1, v2, v3 uint16
	flag       uint16
}

func (v valueFace) size() uint32 { return zFace }

func (v valueFace) write(fw *parse.BinaryWriter) bool {
	if fw.Number(v.v1) {
		return true
	}
	if fw.Number(v.v2) {
		return true
	}
	if fw.Number(v.v3) {
		return true
	}
	return fw.Number(v.flag)
}

func (v valueFace) String() string {
	return fmt.Sprintf("[%d, %d, %d], flag 0x%X", v.v1, v.v2, v.v3, v.flag)
}

// arrayLimit is the largest element count the 16-bit array count field
// can carry.
const arrayLimit = 65535

// valueArray is a 16-bit element count followed by the elements.
type valueArray struct {
	values []value
	sz     uint32
}

func newValueArray() *valueArray {
	return &valueArray{sz: zu16}
}

func (v *valueArray) add(item value) {
	v.values = append(v.values, item)
	v.sz += item.size()
}

func (v *valueArray) len() int { return len(v.values) }

// valid reports whether the element count fits the 16-bit count field.
func (v *valueArray) valid() bool { return len(v.values) <= arrayLimit }

func (v *valueArray) size() uint32 { return v.sz }

func (v *valueArray) write(fw *parse.BinaryWriter) bool {
	if fw.Number(uint16(len(v.values))) {
		return true
	}
	for _, item := range v.values {
		if item.write(fw) {
			return true
		}
	}
	return false
}

func (v *valueArray) String() string {
	return fmt.Sprintf("(%d items)", len(v.values))
}
