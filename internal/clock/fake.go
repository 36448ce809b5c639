package clock

import "time"

// FakeClock reports a fixed instant until moved with Advance, so tests
// can pin anchor-day and invoice-date math to known dates.
type FakeClock struct {
	current time.Time
}

func NewFakeClock(at time.Time) *FakeClock {
	return &FakeClock{current: at.UTC()}
}

func (f *FakeClock) Now() time.Time {
	return f.current
}

// Advance moves the clock forward (or backward, with a negative d).
func (f *FakeClock) Advance(d time.Duration) {
	f.current = f.current.Add(d)
}
