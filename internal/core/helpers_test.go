package core

import (
	"fmt"
	"testing"
)

// stubIDs replaces the id generator with a deterministic sequence for the
// duration of the test.
func stubIDs(t *testing.T) {
	t.Helper()
	orig := newIDFunc
	n := 0
	newIDFunc = func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
	t.Cleanup(func() { newIDFunc = orig })
}
