package tds

import (
	"bufio"
	"io"
	"os"

	"github.com/scenekit/tdsfile"
)

// Encoder encodes a Scene to the binary container format.
type Encoder struct {
	// SelectedOnly limits the export to selected objects.
	SelectedOnly bool

	// Keyframes emits the keyframe hierarchy along with the scene data.
	Keyframes bool

	// Transform is applied to mesh geometry, converting the scene into
	// the axis convention of the output. The zero matrix means identity.
	Transform tdsfile.Matrix4
}

// Encode writes the scene to w.
//
// Objects that cannot be represented drop out of the output and are
// reported through warn; the export itself continues. err is non-nil
// when no usable file was produced.
func (e Encoder) Encode(w io.Writer, scene *tdsfile.Scene) (warn, err error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	if scene == nil {
		return nil, ErrNilScene
	}

	sc := newSceneCodec(scene, e.transform(), e.SelectedOnly, e.Keyframes)
	root := sc.assemble()
	if _, err := root.WriteTo(w); err != nil {
		return sc.warns.Return(), err
	}
	return sc.warns.Return(), nil
}

// EncodeFile encodes the scene to the named file.
func (e Encoder) EncodeFile(name string, scene *tdsfile.Scene) (warn, err error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriter(f)
	warn, err = e.Encode(bw, scene)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return warn, err
}

func (e Encoder) transform() tdsfile.Matrix4 {
	if e.Transform == (tdsfile.Matrix4{}) {
		return tdsfile.Identity()
	}
	return e.Transform
}
