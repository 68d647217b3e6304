package notify

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestNotificationString(t *testing.T) {
	n := Error(CategoryContractReverted, "Purchase failed", "ProductOutOfStock")
	require.Equal(t, "[contract-reverted] Purchase failed: ProductOutOfStock", n.String())

	n = Success("Listed", "")
	require.Equal(t, "Listed", n.String())
}

func TestMultiAndRecorder(t *testing.T) {
	var a, b Recorder
	s := Multi(&a, nil, &b)

	s.Show(Success("one", ""))
	s.Show(Warn(CategoryValidation, "two", "no wallet"))

	for _, r := range []*Recorder{&a, &b} {
		require.Len(t, r.All(), 2)
		require.Equal(t, 1, r.Count(SeveritySuccess))
		require.Equal(t, 1, r.Count(SeverityWarn))
		last, ok := r.Last()
		require.True(t, ok)
		require.Equal(t, CategoryValidation, last.Category)
	}

	a.Reset()
	_, ok := a.Last()
	require.False(t, ok)
}

func TestConsole(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Show(Error(CategoryNetwork, "Read failed", "timeout"))
	require.Equal(t, "error   [network] Read failed: timeout\n", buf.String())
}
