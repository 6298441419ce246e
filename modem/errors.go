package modem

import "errors"

var (
	// ErrNoDialer is returned when a Modem is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to the modem.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotInitialized is returned when the Dialer hands back no Transport.
	ErrNotInitialized = errors.New("modem not initialized")

	// ErrAlreadyClosed is returned by any operation on a Modem that has
	// already been closed.
	ErrAlreadyClosed = errors.New("modem already closed")

	// ErrNoResetLine is returned when DTR reset is requested but the
	// Transport cannot drive the DTR line.
	ErrNoResetLine = errors.New("transport has no DTR line for reset")

	// ErrNoPrompt is returned when the modem did not ask for the message
	// body after AT+CMGS.
	ErrNoPrompt = errors.New("did not receive SMS prompt")

	// ErrCommandFailed is returned by the high level helpers when the modem
	// answered with anything but OK.
	ErrCommandFailed = errors.New("command failed")
)
