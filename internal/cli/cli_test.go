package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		want   string
		amount int64
	}{
		{amount: 0, want: "$0"},
		{amount: 65, want: "$65"},
		{amount: 1234, want: "$1,234"},
		{amount: 1234567, want: "$1,234,567"},
		{amount: -70, want: "-$70"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}

func TestConfirmer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "explicit yes", input: "y\n", want: true},
		{name: "full yes", input: "yes\n", want: true},
		{name: "uppercase yes", input: "Y\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty defaults to no", input: "\n", want: false},
		{name: "garbage defaults to no", input: "sure\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConfirmer(strings.NewReader(tt.input), &out)

			got, err := c.Confirm(context.Background(), "Delete everything?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

func TestConfirmer_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	c := NewConfirmer(blockingReader{}, &out)
	_, err := c.Confirm(ctx, "Proceed?")
	require.ErrorIs(t, err, ErrInputCancelled)
}

// blockingReader never returns, standing in for a user who walks away.
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}
