package main

import (
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/sweeney/motor-control/internal/config"
	"github.com/sweeney/motor-control/internal/gpio"
)

func fakeFactory(w *gpio.FakeWriter) func(config.Config) (gpio.Writer, error) {
	return func(cfg config.Config) (gpio.Writer, error) {
		w.Pins = cfg.Pins()
		return w, nil
	}
}

func withStates(states ...string) config.Config {
	cfg := config.Default()
	for i, s := range states {
		cfg.Motor[i].State = s
	}
	return cfg
}

func TestRunDefaultsWithholdOutputs(t *testing.T) {
	w := gpio.NewFakeWriter(gpio.Pins{})

	// Built-in defaults are ON, OFF, UNKNOWN.
	if err := run(config.Default(), fakeFactory(w), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Writes) != 0 {
		t.Errorf("expected no writes, got %+v", w.Writes)
	}
	if !w.Closed {
		t.Error("writer should be closed on exit")
	}
}

func TestRunDrivesKnownStates(t *testing.T) {
	w := gpio.NewFakeWriter(gpio.Pins{})

	if err := run(withStates("ON", "OFF", "OFF"), fakeFactory(w), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []gpio.Write{
		{Channel: 1, Pin: 27, High: true},
		{Channel: 2, Pin: 22, High: false},
		{Channel: 3, Pin: 23, High: false},
	}
	if len(w.Writes) != len(want) {
		t.Fatalf("expected %d writes, got %+v", len(want), w.Writes)
	}
	for i := range want {
		if w.Writes[i] != want[i] {
			t.Errorf("write %d: got %+v, want %+v", i, w.Writes[i], want[i])
		}
	}
	if !w.Closed {
		t.Error("writer should be closed on exit")
	}
	if w.Parked {
		t.Error("outputs must stay driven when not holding")
	}
	if high, _ := w.Level(1); !high {
		t.Error("channel 1 should remain HIGH after exit")
	}
}

func TestRunInitFailureIsReturned(t *testing.T) {
	initErr := errors.New("no such chip")
	factory := func(config.Config) (gpio.Writer, error) { return nil, initErr }

	err := run(withStates("ON", "ON", "ON"), factory, nil)
	if !errors.Is(err, initErr) {
		t.Errorf("expected init error, got %v", err)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	w := gpio.NewFakeWriter(gpio.Pins{})
	cfg := withStates("ON", "sideways", "OFF")

	if err := run(cfg, fakeFactory(w), nil); err == nil {
		t.Fatal("expected error for invalid state")
	}
	if w.Calls != 0 || w.Closed {
		t.Error("writer must not be opened for an invalid config")
	}
}

func TestRunWriteErrorStillCloses(t *testing.T) {
	w := gpio.NewFakeWriter(gpio.Pins{})
	w.WriteError = errors.New("line busy")

	if err := run(withStates("OFF", "OFF", "ON"), fakeFactory(w), nil); err == nil {
		t.Fatal("expected write error")
	}
	if !w.Closed {
		t.Error("writer should be closed after a write error")
	}
}

func TestRunHoldWaitsForSignal(t *testing.T) {
	w := gpio.NewFakeWriter(gpio.Pins{})
	cfg := withStates("ON", "ON", "OFF")
	cfg.Hold = true

	sig := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() { done <- run(cfg, fakeFactory(w), sig) }()

	select {
	case err := <-done:
		t.Fatalf("run returned before signal: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	sig <- syscall.SIGTERM
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not return after signal")
	}
	if !w.Parked {
		t.Error("outputs should be parked after a held shutdown")
	}
	if !w.Closed {
		t.Error("writer should be closed after shutdown")
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	v := flagValues{
		chip:   "gpiochip9",
		pins:   [3]int{17, 5, 6},
		states: [3]string{"OFF", "ON", "ON"},
		hold:   true,
	}
	set := map[string]bool{"chip": true, "pin-m2": true, "motor3": true, "hold": true}

	applyOverrides(&cfg, v, func(name string) bool { return set[name] })

	if cfg.Chip != "gpiochip9" {
		t.Errorf("Chip: got %q", cfg.Chip)
	}
	if cfg.Pins() != (gpio.Pins{27, 5, 23}) {
		t.Errorf("Pins: got %v, want [27 5 23]", cfg.Pins())
	}
	if cfg.Motor[0].State != "ON" || cfg.Motor[2].State != "ON" {
		t.Errorf("States: got %q %q", cfg.Motor[0].State, cfg.Motor[2].State)
	}
	if !cfg.Hold {
		t.Error("expected Hold=true")
	}
	if cfg.DryRun {
		t.Error("DryRun was not set and should stay false")
	}
}
