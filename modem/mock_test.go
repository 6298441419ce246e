package modem_test

import (
	"bytes"
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
	"i4.energy/across/simgw/modem"
)

// MockSequenceBuilder scripts a MockTransport: every expected Write makes
// its reply readable, and Read serves those replies, returning (0, nil)
// while nothing is pending like a serial port with a read timeout.
type MockSequenceBuilder struct {
	transport *modem.MockTransport
	rx        *bytes.Buffer
	calls     []any
}

func NewMockSequence(transport *modem.MockTransport) *MockSequenceBuilder {
	b := &MockSequenceBuilder{
		transport: transport,
		rx:        &bytes.Buffer{},
		calls:     []any{},
	}
	transport.EXPECT().Read(gomock.Any()).DoAndReturn(b.read).AnyTimes()
	return b
}

func (b *MockSequenceBuilder) read(p []byte) (int, error) {
	if b.rx.Len() == 0 {
		return 0, nil
	}
	return b.rx.Read(p)
}

// Expect adds a Write of exactly frame, answered with reply.
func (b *MockSequenceBuilder) Expect(frame, reply string) *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.transport.EXPECT().Write([]byte(frame)).DoAndReturn(func(p []byte) (int, error) {
			b.rx.WriteString(reply)
			return len(p), nil
		}),
	)
	return b
}

func (b *MockSequenceBuilder) AT() *MockSequenceBuilder {
	return b.Expect("AT\r", "AT\r\r\nOK\r\n")
}

func (b *MockSequenceBuilder) BaudRate(rate int) *MockSequenceBuilder {
	cmd := "AT+IPR=" + strconv.Itoa(rate) + "\r"
	return b.Expect(cmd, cmd+"\r\nOK\r\n")
}

func (b *MockSequenceBuilder) SMSTextMode() *MockSequenceBuilder {
	return b.Expect("AT+CMGF=1\r", "AT+CMGF=1\r\r\nOK\r\n")
}

func (b *MockSequenceBuilder) RouteSMS() *MockSequenceBuilder {
	return b.Expect("AT+CNMI=1,2,0,0,0\r", "OK\r\n")
}

func (b *MockSequenceBuilder) TerseErrors() *MockSequenceBuilder {
	return b.Expect("AT+CMEE=0\r", "OK\r\n")
}

func (b *MockSequenceBuilder) EchoOff() *MockSequenceBuilder {
	return b.Expect("ATE0\r", "ATE0\r\r\nOK\r\n")
}

func (b *MockSequenceBuilder) SaveProfile() *MockSequenceBuilder {
	return b.Expect("AT&W\r", "OK\r\n")
}

// Startup adds the whole configuration sequence run by Start.
func (b *MockSequenceBuilder) Startup(rate int) *MockSequenceBuilder {
	return b.AT().
		BaudRate(rate).
		SMSTextMode().
		RouteSMS().
		TerseErrors().
		EchoOff().
		SaveProfile()
}

// Unsolicited makes data readable before the next Write.
func (b *MockSequenceBuilder) Unsolicited(data string) *MockSequenceBuilder {
	b.rx.WriteString(data)
	return b
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}

// newTestModem builds a Modem on top of transport with a dialer mock that
// hands it out. Extra builder options can be applied through opts.
func newTestModem(t *testing.T, transport modem.Transport, clock modem.Clock, opts ...func(*modem.ConfigBuilder)) *modem.Modem {
	t.Helper()

	ctrl := gomock.NewController(t)
	dialer := modem.NewMockDialer(ctrl)
	dialer.EXPECT().Dial(gomock.Any()).Return(transport, nil)

	b := modem.NewConfigBuilder().
		WithDialer(dialer).
		WithClock(clock)
	for _, opt := range opts {
		opt(b)
	}
	config, err := b.Build()
	require.NoError(t, err)

	m, err := modem.New(context.Background(), config)
	require.NoError(t, err)
	return m
}
