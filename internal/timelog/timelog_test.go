package timelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty becomes sentinel", "", NoDescription},
		{"plain text unchanged", "fixed the login flow", "fixed the login flow"},
		{"quotes escaped", `said "done"`, `said \"done\"`},
		{"newlines collapsed", "line one\nline two", "line one line two"},
		{"both", "a \"b\"\nc", `a \"b\" c`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "config_missing", Kind(ErrConfigMissing))
	assert.Equal(t, "invalid_input", Kind(ErrInvalidInput))
	assert.Equal(t, "upstream_http", Kind(ErrUpstreamStatus))
	assert.Equal(t, "upstream_protocol", Kind(ErrUpstreamProtocol))
	assert.Equal(t, "internal", Kind(assert.AnError))
}
