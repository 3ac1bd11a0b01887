package numeric

import (
	"errors"
	"sync"
)

var (
	accelMu sync.RWMutex
	accel   Backend
)

// RegisterAccelerator registers a backend as the accelerated execution path.
//
// Only one accelerator can be registered; subsequent calls replace the
// previous one. The bundled batch backend registers itself from its init()
// so that importing it for side effects enables accelerated mode. A nil
// backend is rejected.
func RegisterAccelerator(b Backend) error {
	if b == nil {
		return errors.New("numeric: accelerator must not be nil")
	}
	accelMu.Lock()
	accel = b
	accelMu.Unlock()
	return nil
}

// ClearAccelerator removes the registered accelerator.
// Requests for accelerated execution then resolve to the scalar path.
// This is useful for testing the downgrade behavior.
func ClearAccelerator() {
	accelMu.Lock()
	accel = nil
	accelMu.Unlock()
}

// Accelerator returns the registered accelerated backend, if any.
func Accelerator() (Backend, bool) {
	accelMu.RLock()
	b := accel
	accelMu.RUnlock()
	return b, b != nil
}
