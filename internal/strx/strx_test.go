package strx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no change", in: "9999900000", want: "9999900000"},
		{name: "surrounding spaces", in: "  alpha  ", want: "alpha"},
		{name: "tabs and newlines", in: "\tbeta\n", want: "beta"},
		{name: "only whitespace", in: "   ", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanPtr(t *testing.T) {
	p := CleanPtr("  value ")
	require.NotNil(t, p)
	assert.Equal(t, "value", *p)

	assert.Nil(t, CleanPtr(""))
	assert.Nil(t, CleanPtr("   "))
}

func TestFromPtr(t *testing.T) {
	v := "x"
	assert.Equal(t, "x", FromPtr(&v))
	assert.Equal(t, "", FromPtr(nil))
}
