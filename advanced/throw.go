package advanced

import "github.com/pkg/errors"

// Threading errors through every recursive walk of the mesh would add a ton of
// complexity to the code. Instead, we panic, and the public API recovers to
// convert the panic into an error.

// MeshError is what fatalf panics with. Any other panic, runtime errors
// included, is not ours and is re-raised by HandlePanicRecover.
type MeshError struct{ error }

// Panic with a MeshError.
func fatalf(format string, args ...interface{}) {
	panic(MeshError{errors.Errorf(format, args...)})
}

func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if meshError, ok := r.(MeshError); ok {
			return meshError
		}
		panic(r)
	}
	return nil
}
