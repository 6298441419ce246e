package modem

// ResetLine is the digital output wired to the modem's reset input.
// SetLevel(false) holds the modem in reset, SetLevel(true) releases it.
type ResetLine interface {
	SetLevel(high bool) error
}

// DTRSetter is implemented by serial ports that can drive DTR,
// go.bug.st/serial.Port among them.
type DTRSetter interface {
	SetDTR(dtr bool) error
}

// DTRResetLine drives the reset input from the serial port's DTR line.
// With Inverted set the line is active high, as on boards that put a
// transistor between DTR and the modem's reset pin.
type DTRResetLine struct {
	Port     DTRSetter
	Inverted bool
}

func (l DTRResetLine) SetLevel(high bool) error {
	return l.Port.SetDTR(high != l.Inverted)
}

// NopResetLine is used for modems without a reset wire. Reset then only
// restarts the boot delay.
type NopResetLine struct{}

func (NopResetLine) SetLevel(bool) error { return nil }
