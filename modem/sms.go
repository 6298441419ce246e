package modem

import (
	"context"
	"fmt"
	"strings"

	"i4.energy/across/simgw/at"
)

// SendSMS sends a text message to the specified recipient and returns the
// message reference reported by the network.
//
// The modem must be in text mode (see Start). The recipient should be in
// international format (e.g., "+1234567890"). The command half waits for the
// "> " prompt, so it always takes the full command timeout; the body is then
// sent as a continuation with the message timeout.
func (m *Modem) SendSMS(ctx context.Context, recipient, message string) (string, error) {
	res, err := m.SendCommand(ctx, fmt.Sprintf(`%s"%s"`, at.CmdSendSMS, recipient))
	if err != nil {
		return "", fmt.Errorf("AT+CMGS command failed: %w", err)
	}
	if res != at.Prompt {
		return "", fmt.Errorf("%w, got %s", ErrNoPrompt, res)
	}

	// Anything captured while waiting for the prompt is not ours.
	m.sendRef.Reset()
	res, err = m.SendMessage(ctx, message)
	if err != nil {
		return "", fmt.Errorf("SMS send failed: %w", err)
	}
	if res != at.Success {
		return "", fmt.Errorf("SMS send: %w: %s", ErrCommandFailed, res)
	}

	ref := strings.TrimSpace(strings.TrimPrefix(m.sendRef.String(), at.UrcSendRef))
	m.log.Info("SMS sent", "recipient", recipient, "reference", ref, "length", len(message))
	return ref, nil
}
