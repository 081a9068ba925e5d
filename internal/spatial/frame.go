package spatial

import (
	"fmt"
	"sync"
)

// Frame identifies a Cartesian coordinate frame. Frames are cheap value
// types; equality means identity. The zero Frame is invalid.
type Frame int32

var (
	frameMu    sync.Mutex
	frameNames = []string{"<invalid>"}
)

// NewFrame registers a new frame with the given debug name.
func NewFrame(name string) Frame {
	frameMu.Lock()
	defer frameMu.Unlock()
	frameNames = append(frameNames, name)
	return Frame(len(frameNames) - 1)
}

// Name returns the name the frame was registered with.
func (f Frame) Name() string {
	frameMu.Lock()
	defer frameMu.Unlock()
	if f <= 0 || int(f) >= len(frameNames) {
		return "<invalid>"
	}
	return frameNames[f]
}

func (f Frame) String() string {
	return fmt.Sprintf("%s(%d)", f.Name(), int32(f))
}

// IsValid reports whether the frame was produced by NewFrame.
func (f Frame) IsValid() bool {
	frameMu.Lock()
	defer frameMu.Unlock()
	return f > 0 && int(f) < len(frameNames)
}

// checkFrame panics unless the two frames are identical.
func checkFrame(got, want Frame) {
	if got != want {
		panic(fmt.Sprintf("spatial: frame mismatch: %v vs %v", got, want))
	}
}
