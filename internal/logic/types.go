// Package logic contains the pure motor decision logic.
// This package has NO external dependencies (no GPIO, OS, or logging).
package logic

import (
	"fmt"
	"strings"
)

// MotorState is the commanded condition of a single motor.
type MotorState int

const (
	StateOff MotorState = iota
	StateOn
	StateUnknown
)

func (s MotorState) String() string {
	switch s {
	case StateOff:
		return "OFF"
	case StateOn:
		return "ON"
	default:
		return "UNKNOWN"
	}
}

// Known reports whether s is ON or OFF.
func (s MotorState) Known() bool {
	return s == StateOn || s == StateOff
}

// ParseMotorState converts a name (ON, OFF, UNKNOWN, case-insensitive) or
// one of the shorthands 1, 0, ? into a MotorState.
func ParseMotorState(s string) (MotorState, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ON", "1":
		return StateOn, nil
	case "OFF", "0":
		return StateOff, nil
	case "UNKNOWN", "?":
		return StateUnknown, nil
	}
	return StateUnknown, fmt.Errorf("invalid motor state %q", s)
}

// Motors holds the three motor states in channel order.
type Motors [3]MotorState

// UnknownChannels returns the 1-based channel numbers whose state is not known.
func (m Motors) UnknownChannels() []int {
	var out []int
	for i, s := range m {
		if !s.Known() {
			out = append(out, i+1)
		}
	}
	return out
}

// Decide evaluates the three states. See Decide.
func (m Motors) Decide() Action {
	return Decide(m[0], m[1], m[2])
}

// ActionKind identifies the branch chosen by Decide.
type ActionKind int

const (
	ActionHandleUnknown ActionKind = iota
	ActionDrive
)

func (k ActionKind) String() string {
	if k == ActionDrive {
		return "DRIVE"
	}
	return "HANDLE_UNKNOWN"
}

// Outputs is the requested level per channel: true = HIGH, false = LOW.
type Outputs struct {
	M1 bool
	M2 bool
	M3 bool
}

// Action is the result of a decision. Outputs is only meaningful when
// Kind is ActionDrive.
type Action struct {
	Kind    ActionKind
	Outputs Outputs
}

// Drive returns a drive action with the given outputs.
func Drive(m1, m2, m3 bool) Action {
	return Action{Kind: ActionDrive, Outputs: Outputs{M1: m1, M2: m2, M3: m3}}
}

// HandleUnknown returns the action that withholds all outputs.
func HandleUnknown() Action {
	return Action{Kind: ActionHandleUnknown}
}

func (a Action) String() string {
	if a.Kind != ActionDrive {
		return a.Kind.String()
	}
	return fmt.Sprintf("DRIVE(%s,%s,%s)", level(a.Outputs.M1), level(a.Outputs.M2), level(a.Outputs.M3))
}

func level(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}
