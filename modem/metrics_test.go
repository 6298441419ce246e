package modem_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"i4.energy/across/simgw/at"
	"i4.energy/across/simgw/modem"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := modem.NewMetrics(reg)

	tr := modem.NewTestTransport()
	m := newTestModem(t, tr, modem.NewTestClock(0, 1), func(b *modem.ConfigBuilder) {
		b.WithMetrics(metrics)
	})
	csq := at.NewHook("+CSQ:")
	m.RegisterHook(csq)

	long := strings.Repeat("x", 200)
	tr.Reply(
		"+CSQ: 20,99\r\nOK\r\n",
		long+"\r\nERROR\r\n",
	)

	res, err := m.SendCommand(context.Background(), "+CSQ")
	require.NoError(t, err)
	require.Equal(t, at.Success, res)
	res, err = m.SendCommand(context.Background(), "+CSQ=?")
	require.NoError(t, err)
	require.Equal(t, at.Failure, res)

	expected := `
# HELP simgw_commands_total Commands and continuations sent to the modem, by result
# TYPE simgw_commands_total counter
simgw_commands_total{result="failure"} 1
simgw_commands_total{result="success"} 1
# HELP simgw_lines_total Non-terminal lines received from the modem, by whether a hook claimed them
# TYPE simgw_lines_total counter
simgw_lines_total{dispatch="matched"} 1
simgw_lines_total{dispatch="unmatched"} 1
# HELP simgw_lines_truncated_total Lines longer than the line buffer that were cut short
# TYPE simgw_lines_truncated_total counter
simgw_lines_truncated_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))
}
