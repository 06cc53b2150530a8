package protocol

import "errors"

// MaxTreeDepth limits the nesting depth of decoded trees, including trees
// carried inside patches.
const MaxTreeDepth = 256

// ErrMaxDepthExceeded is returned when a decoded tree nests deeper than
// MaxTreeDepth.
var ErrMaxDepthExceeded = errors.New("protocol: maximum nesting depth exceeded")

// depthContext tracks the current decoding depth of recursive structures.
type depthContext struct {
	current int
	max     int
}

func newDepthContext(max int) *depthContext {
	return &depthContext{max: max}
}

// enter increments the depth, failing if the limit would be exceeded.
// The depth is only incremented on success.
func (dc *depthContext) enter() error {
	if dc.current >= dc.max {
		return ErrMaxDepthExceeded
	}
	dc.current++
	return nil
}

func (dc *depthContext) leave() {
	dc.current--
}
