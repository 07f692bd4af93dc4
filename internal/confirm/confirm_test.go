// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package confirm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccepts(t *testing.T) {
	for _, a := range []string{"s", "S", "sim", "SIM\n", " y ", "yes"} {
		assert.True(t, Accepts(a), "Accepts(%q)", a)
	}
	for _, a := range []string{"", "n", "nao", "não", "no", "talvez"} {
		assert.False(t, Accepts(a), "Accepts(%q)", a)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		interactive bool
		assumeYes   bool
		want        bool
		wantOut     string
	}{
		{"interactive yes", "s\n", true, false, true, "Apagar? (s/n): "},
		{"interactive no", "n\n", true, false, false, "Apagar? (s/n): "},
		{"interactive eof", "", true, false, false, "Apagar? (s/n): "},
		{"answer without newline", "sim", true, false, true, ""},
		{"non interactive declines", "s\n", false, false, false, "pass --yes"},
		{"assume yes", "", false, true, true, "(--yes)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out, tt.interactive, tt.assumeYes)
			got, err := p.Confirm("Apagar?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}
