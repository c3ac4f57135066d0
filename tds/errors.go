package tds

import (
	"fmt"

	"github.com/scenekit/tdsfile/errors"
)

var (
	// ErrNilWriter is returned when encoding to a nil writer.
	ErrNilWriter = errors.New("writer is nil")

	// ErrNilScene is returned when encoding a nil scene.
	ErrNilScene = errors.New("scene is nil")

	// ErrChunkOverflow is returned when the assembled chunk tree exceeds
	// the 32-bit length field of the container.
	ErrChunkOverflow = errors.New("chunk tree exceeds the 32-bit size limit")

	// ErrArrayLimit reports a counted array that cannot fit its 16-bit
	// element count. It surfaces wrapped in an ObjectError warning.
	ErrArrayLimit = errors.New("element count exceeds 65535")

	// ErrVertexIndex reports a face referring to a vertex that is not in
	// the mesh. It surfaces wrapped in an ObjectError warning.
	ErrVertexIndex = errors.New("face vertex index out of range")
)

// ObjectError associates a warning or error with the scene object that
// produced it.
type ObjectError struct {
	// Object is the name of the object.
	Object string
	// Cause is the underlying error.
	Cause error
}

func (err ObjectError) Error() string {
	return fmt.Sprintf("object %q: %s", err.Object, err.Cause.Error())
}

func (err ObjectError) Unwrap() error {
	return err.Cause
}
