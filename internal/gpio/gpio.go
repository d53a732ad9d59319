// Package gpio provides motor output driving with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "fmt"

// Writer drives the three motor output channels.
type Writer interface {
	// SetMotorOutputs writes HIGH for true and LOW for false to channels
	// 1, 2 and 3, in that order.
	SetMotorOutputs(m1, m2, m3 bool) error

	// Park drives every channel inactive and reverts the pins to inputs
	// with pull-down. Used when outputs should not outlive the process.
	Park() error

	// Close releases GPIO resources. Outputs keep their last written level.
	Close() error
}

// Default pin definitions (BCM numbering, the line offsets on gpiochip0).
// These are wiringPi pins 2, 3 and 4.
const (
	DefaultPinMotor1 = 27
	DefaultPinMotor2 = 22
	DefaultPinMotor3 = 23
)

// Pins maps the logical channels 1..3 to line offsets on the chip.
type Pins [3]int

// DefaultPins returns the default channel to pin mapping.
func DefaultPins() Pins {
	return Pins{DefaultPinMotor1, DefaultPinMotor2, DefaultPinMotor3}
}

// Validate rejects negative or duplicated offsets.
func (p Pins) Validate() error {
	seen := make(map[int]int, len(p))
	for i, pin := range p {
		if pin < 0 {
			return fmt.Errorf("channel %d: invalid pin %d", i+1, pin)
		}
		if prev, ok := seen[pin]; ok {
			return fmt.Errorf("channel %d: pin %d already used by channel %d", i+1, pin, prev)
		}
		seen[pin] = i + 1
	}
	return nil
}

func levelValue(high bool) int {
	if high {
		return 1
	}
	return 0
}
