package token

import "time"

// Clock supplies the current time for claim construction and verification.
// Injecting a fixed clock makes time-window behavior deterministic in tests.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Now must not panic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock { return fixedClock{t: t} }

// Ensure implementations satisfy Clock
var (
	_ Clock = systemClock{}
	_ Clock = fixedClock{}
)
