package gpio

import (
	log "github.com/sirupsen/logrus"
)

// SimulatedWriter logs channel writes instead of driving hardware.
type SimulatedWriter struct {
	pins Pins
}

// NewSimulatedWriter creates a SimulatedWriter for the given pins.
func NewSimulatedWriter(pins Pins) (*SimulatedWriter, error) {
	if err := pins.Validate(); err != nil {
		return nil, err
	}
	log.Printf("simulated gpio: initialized pins %v", pins)
	return &SimulatedWriter{pins: pins}, nil
}

// SetMotorOutputs logs one line per channel, in channel order.
func (s *SimulatedWriter) SetMotorOutputs(m1, m2, m3 bool) error {
	for i, high := range [3]bool{m1, m2, m3} {
		log.WithFields(log.Fields{
			"channel": i + 1,
			"pin":     s.pins[i],
			"value":   levelValue(high),
		}).Info("simulated gpio: write")
	}
	return nil
}

// Park logs the reset of every channel.
func (s *SimulatedWriter) Park() error {
	log.Printf("simulated gpio: parking pins %v (LOW, input pull-down)", s.pins)
	return nil
}

// Close logs the release.
func (s *SimulatedWriter) Close() error {
	log.Printf("simulated gpio: closing")
	return nil
}
