package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time lookups so date math can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Module provides the system clock via Fx.
var Module = fx.Provide(func() Clock { return SystemClock{} })
