package report

import (
	"bytes"
	"testing"

	"github.com/coredepth/matchcore/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteAccept(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	require.NoError(t, w.Write(protocol.NewAccept(1)))
	require.NoError(t, w.Flush())
	assert.Equal(t, "1 - Accept\n", buf.String())
}

func TestWriter_WriteAllPreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	events := []*protocol.Event{
		protocol.NewAccept(1),
		protocol.NewCancelReject(999, protocol.CodeOrderDoesNotExist, "Order does not exist"),
	}
	require.NoError(t, w.WriteAll(events))
	require.NoError(t, w.Flush())
	assert.Equal(t, "1 - Accept\n999 - CancelReject - 404 - Order does not exist\n", buf.String())
}

func TestWriter_WriteTrade(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	price, err := protocol.ParsePrice("104.53")
	require.NoError(t, err)
	sellPrice, err := protocol.ParsePrice("104.42")
	require.NoError(t, err)
	trade := protocol.NewTrade("AB", 1, protocol.Limit, 100, price, sellPrice, 100, protocol.Limit, 2)
	require.NoError(t, w.Write(trade))
	require.NoError(t, w.Flush())
	assert.Equal(t, "AB|1,L,100,104.53|104.42,100,L,2\n", buf.String())
}
