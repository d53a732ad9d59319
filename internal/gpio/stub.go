//go:build !linux

package gpio

import "errors"

// RealWriter is not available on non-Linux platforms.
type RealWriter struct{}

// NewRealWriter returns an error on non-Linux platforms.
func NewRealWriter(chipName string, pins Pins, activeLow [3]bool) (*RealWriter, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// SetMotorOutputs is not implemented on non-Linux platforms.
func (w *RealWriter) SetMotorOutputs(m1, m2, m3 bool) error {
	return errors.New("gpio: not supported")
}

// Park is not implemented on non-Linux platforms.
func (w *RealWriter) Park() error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (w *RealWriter) Close() error {
	return nil
}
