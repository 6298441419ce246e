package modem_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
	"i4.energy/across/simgw/modem"
)

func TestSendSMS(t *testing.T) {
	// SendSMS implements the text mode sequence for sending a message:
	//
	//  1. Write: AT+CMGS="+1234567890"\r
	//  2. Read:  "> " (left open until the command timeout expires)
	//  3. Write: "Hello World\x1a" (only after the prompt)
	//  4. Read:  "+CMGS: 123\r\nOK\r\n"
	//
	// The mock sequence releases each reply only after its Write, so writing
	// the body before the prompt was seen would fail the test.
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTransport := modem.NewMockTransport(ctrl)
		gomock.InOrder(NewMockSequence(mockTransport).
			Expect(`AT+CMGS="+1234567890"`+"\r", "> ").
			Expect("Hello World\x1a", "\r\n+CMGS: 123\r\n\r\nOK\r\n").
			Build()...)

		m := newTestModem(t, mockTransport, modem.NewTestClock(0, 1))
		ref, err := m.SendSMS(context.Background(), "+1234567890", "Hello World")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ref != "123" {
			t.Errorf("expected message reference 123, got %q", ref)
		}
	})

	t.Run("Error on no prompt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTransport := modem.NewMockTransport(ctrl)
		gomock.InOrder(NewMockSequence(mockTransport).
			Expect(`AT+CMGS="+1234567890"`+"\r", "ERROR\r\n").
			Build()...)

		m := newTestModem(t, mockTransport, modem.NewTestClock(0, 1))
		_, err := m.SendSMS(context.Background(), "+1234567890", "Hello World")
		if !errors.Is(err, modem.ErrNoPrompt) {
			t.Errorf("expected ErrNoPrompt, got: %v", err)
		}
	})

	t.Run("Error when the network rejects the message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTransport := modem.NewMockTransport(ctrl)
		gomock.InOrder(NewMockSequence(mockTransport).
			Expect(`AT+CMGS="+1234567890"`+"\r", "> ").
			Expect("Hello World\x1a", "\r\nERROR\r\n").
			Build()...)

		m := newTestModem(t, mockTransport, modem.NewTestClock(0, 1))
		_, err := m.SendSMS(context.Background(), "+1234567890", "Hello World")
		if !errors.Is(err, modem.ErrCommandFailed) {
			t.Errorf("expected ErrCommandFailed, got: %v", err)
		}
	})

	t.Run("Stale reference is not reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTransport := modem.NewMockTransport(ctrl)
		gomock.InOrder(NewMockSequence(mockTransport).
			Unsolicited("+CMGS: 99\r\n").
			Expect(`AT+CMGS="+1234567890"`+"\r", "> ").
			Expect("Hello World\x1a", "OK\r\n").
			Build()...)

		m := newTestModem(t, mockTransport, modem.NewTestClock(0, 1))
		ref, err := m.SendSMS(context.Background(), "+1234567890", "Hello World")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ref != "" {
			t.Errorf("expected no reference, got %q", ref)
		}
	})
}
