package gpio

// FakeWriter is a test double that records channel writes.
type FakeWriter struct {
	// Pins is the channel to pin mapping reported in Writes.
	Pins Pins

	// Writes contains every channel write in the order it happened.
	Writes []Write

	// Calls counts SetMotorOutputs invocations.
	Calls int

	// WriteError, if set, is returned by SetMotorOutputs after the
	// writes have been recorded.
	WriteError error

	// Parked tracks if Park was called
	Parked bool

	// Closed tracks if Close was called
	Closed bool
}

// Write is a single recorded channel write.
type Write struct {
	Channel int // 1-based
	Pin     int
	High    bool
}

// NewFakeWriter creates a FakeWriter with the given pin mapping.
func NewFakeWriter(pins Pins) *FakeWriter {
	return &FakeWriter{Pins: pins}
}

// SetMotorOutputs records three writes in channel order.
func (f *FakeWriter) SetMotorOutputs(m1, m2, m3 bool) error {
	f.Calls++
	for i, high := range [3]bool{m1, m2, m3} {
		f.Writes = append(f.Writes, Write{Channel: i + 1, Pin: f.Pins[i], High: high})
	}
	return f.WriteError
}

// Level returns the last value written to channel (1-based) and whether
// it was written at all.
func (f *FakeWriter) Level(channel int) (high bool, written bool) {
	for i := len(f.Writes) - 1; i >= 0; i-- {
		if f.Writes[i].Channel == channel {
			return f.Writes[i].High, true
		}
	}
	return false, false
}

// Park marks the writer as parked. Recorded writes are kept.
func (f *FakeWriter) Park() error {
	f.Parked = true
	return nil
}

// Close marks the writer as closed.
func (f *FakeWriter) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded writes.
func (f *FakeWriter) Reset() {
	f.Writes = nil
	f.Calls = 0
	f.WriteError = nil
	f.Parked = false
	f.Closed = false
}
