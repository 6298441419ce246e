// Package at contains the wire-level pieces of the AT command protocol:
// framing constants, the line accumulator that turns a byte stream into
// classified lines, and the hook registry that captures free-form lines.
package at

const (
	// Terminal Control
	CR           = '\r'
	LF           = '\n'
	CtrlZ        = 0x1A
	PromptMarker = "> "

	// CommandPrefix is written before every non-continuation command.
	CommandPrefix = "AT"

	// Response Codes
	OK    = "OK"
	ERROR = "ERROR"

	// URCs (Unsolicited Result Codes)
	UrcNewMsg    = "+CMTI:"
	UrcMsgDirect = "+CMT:"
	UrcSendRef   = "+CMGS:"
	UrcCall      = "RING"
)

// Startup configuration commands, without the "AT" prefix.
const (
	CmdAutoBaud    = ""
	CmdSetBaudRate = "+IPR="
	CmdSetTextMode = "+CMGF=1"
	CmdRouteSMS    = "+CNMI=1,2,0,0,0"
	CmdTerseErrors = "+CMEE=0"
	CmdEchoOff     = "E0"
	CmdSaveProfile = "&W"
	CmdSendSMS     = "+CMGS="
)

// LineCapacity is the maximum number of bytes kept for a single line,
// excluding the terminating LF.
const LineCapacity = 128
