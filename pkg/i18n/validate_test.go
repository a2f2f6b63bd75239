package i18n_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeoblyv/spider/pkg/i18n"
)

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "en", want: "en", ok: true},
		{in: "  fr ", want: "fr", ok: true},
		{in: "pt-BR", want: "pt-BR", ok: true},
		{in: "zh-Hant-TW", want: "zh-Hant-TW", ok: true},
		{in: "", ok: false},
		{in: "   ", ok: false},
		{in: "../etc/passwd", ok: false},
		{in: `..\secret`, ok: false},
		{in: "en/fr", ok: false},
		{in: "en.json", ok: false},
		{in: "en\x00", ok: false},
		{in: "not a tag", ok: false},
		{in: strings.Repeat("a", 36), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := i18n.NormalizeCode(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
