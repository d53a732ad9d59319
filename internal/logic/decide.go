package logic

// Decide converts three motor states into an action.
// If any state is not known the result is HandleUnknown and no motor is
// driven, even when the other two are known. Otherwise each output is HIGH
// exactly when its state is ON.
func Decide(m1, m2, m3 MotorState) Action {
	if !m1.Known() || !m2.Known() || !m3.Known() {
		return HandleUnknown()
	}
	return Drive(m1 == StateOn, m2 == StateOn, m3 == StateOn)
}
