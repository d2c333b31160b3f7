package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text passes through", input: "Peripherals", want: "Peripherals"},
		{name: "percent is literal", input: "100%", want: `100\%`},
		{name: "underscore is literal", input: "a_b", want: `a\_b`},
		{name: "backslash is doubled", input: `a\b`, want: `a\\b`},
		{name: "escaped metacharacter stays escaped", input: `\%`, want: `\\\%`},
		{name: "empty string", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.input))
		})
	}
}
