// Package control applies motor decisions to the output driver.
package control

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/sweeney/motor-control/internal/gpio"
	"github.com/sweeney/motor-control/internal/logic"
)

// UnknownHandler runs when at least one motor state is unknown.
// It receives the states that caused the outputs to be withheld.
type UnknownHandler func(m logic.Motors)

// NoopUnknown is the default UnknownHandler. It does nothing; resolving
// unknown states (e.g. waiting for sensor input) belongs here.
func NoopUnknown(logic.Motors) {}

// Controller turns motor states into channel writes.
type Controller struct {
	out       gpio.Writer
	onUnknown UnknownHandler
}

// Option configures a Controller.
type Option func(*Controller)

// WithUnknownHandler replaces the default no-op unknown-state handler.
func WithUnknownHandler(h UnknownHandler) Option {
	return func(c *Controller) {
		if h != nil {
			c.onUnknown = h
		}
	}
}

// New creates a Controller driving the given writer.
func New(out gpio.Writer, opts ...Option) *Controller {
	c := &Controller{out: out, onUnknown: NoopUnknown}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply decides on m and carries out the result: either all three channels
// are written or the unknown handler runs, never both.
func (c *Controller) Apply(m logic.Motors) (logic.Action, error) {
	action := m.Decide()

	switch action.Kind {
	case logic.ActionDrive:
		o := action.Outputs
		log.Printf("drive: M1=%s M2=%s M3=%s -> %s", m[0], m[1], m[2], action)
		if err := c.out.SetMotorOutputs(o.M1, o.M2, o.M3); err != nil {
			return action, fmt.Errorf("set motor outputs: %w", err)
		}
	default:
		log.Warnf("unknown state on channel(s) %v (M1=%s M2=%s M3=%s), withholding outputs",
			m.UnknownChannels(), m[0], m[1], m[2])
		c.onUnknown(m)
	}

	return action, nil
}
