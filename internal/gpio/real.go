//go:build linux

package gpio

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// outputLine is the subset of *gpiocdev.Line used by RealWriter.
type outputLine interface {
	SetValue(value int) error
	Reconfigure(options ...gpiocdev.LineConfigOption) error
	Close() error
}

type requestFunc func(offset int, options ...gpiocdev.LineReqOption) (outputLine, error)

// RealWriter drives motor outputs on actual hardware using the Linux GPIO
// character device.
type RealWriter struct {
	chip  interface{ Close() error }
	lines [3]outputLine
	pins  Pins
}

// NewRealWriter opens the chip and requests the three pins as outputs,
// initially inactive. activeLow inverts the physical level per channel.
func NewRealWriter(chipName string, pins Pins, activeLow [3]bool) (*RealWriter, error) {
	if err := pins.Validate(); err != nil {
		return nil, err
	}

	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	request := func(offset int, options ...gpiocdev.LineReqOption) (outputLine, error) {
		return chip.RequestLine(offset, options...)
	}
	return newRealWriter(chip, request, pins, activeLow)
}

func newRealWriter(chip interface{ Close() error }, request requestFunc, pins Pins, activeLow [3]bool) (*RealWriter, error) {
	w := &RealWriter{chip: chip, pins: pins}
	for i, pin := range pins {
		opts := []gpiocdev.LineReqOption{gpiocdev.AsOutput(0)}
		if activeLow[i] {
			opts = append(opts, gpiocdev.AsActiveLow)
		}
		line, err := request(pin, opts...)
		if err != nil {
			w.release()
			return nil, fmt.Errorf("request motor %d pin %d: %w", i+1, pin, err)
		}
		w.lines[i] = line
	}

	return w, nil
}

// SetMotorOutputs writes each channel in order. A failed write does not stop
// the remaining channels; all failures are returned together.
func (w *RealWriter) SetMotorOutputs(m1, m2, m3 bool) error {
	var errs []error
	for i, high := range [3]bool{m1, m2, m3} {
		if err := w.lines[i].SetValue(levelValue(high)); err != nil {
			errs = append(errs, fmt.Errorf("write motor %d pin %d: %w", i+1, w.pins[i], err))
		}
	}
	return errors.Join(errs...)
}

// Park drives every channel inactive, then reconfigures the pins as inputs
// with pull-down (the Pi boot default).
func (w *RealWriter) Park() error {
	var errs []error
	for i, line := range w.lines {
		if line == nil {
			continue
		}
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("reset motor %d: %w", i+1, err))
		}
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure motor %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases the lines and chip without touching their values.
func (w *RealWriter) Close() error {
	return errors.Join(w.release()...)
}

func (w *RealWriter) release() []error {
	var errs []error
	for i, line := range w.lines {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close motor %d: %w", i+1, err))
		}
		w.lines[i] = nil
	}
	if w.chip != nil {
		if err := w.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		w.chip = nil
	}
	return errs
}
