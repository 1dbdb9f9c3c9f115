package app_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pouriyajamshidi/tcprobe/internal/app"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{input: "500ms", want: 500 * time.Millisecond},
		{input: "1ms", want: time.Millisecond},
		{input: "2s", want: 2 * time.Second},
		{input: "1.5s", want: 1500 * time.Millisecond},
		{input: "0.25s", want: 250 * time.Millisecond},
		{input: "3", want: 3 * time.Second},
		{input: " 10s ", want: 10 * time.Second},

		// unparsable text falls back to the default
		{input: "", want: app.DefaultTimeout},
		{input: "abc", want: app.DefaultTimeout},
		{input: "xms", want: app.DefaultTimeout},
		{input: "1.5ms", want: app.DefaultTimeout},
		{input: "fives", want: app.DefaultTimeout},
		{input: "2m", want: app.DefaultTimeout},
		{input: "-3", want: app.DefaultTimeout},

		// a timeout must be positive
		{input: "0", want: app.DefaultTimeout},
		{input: "0ms", want: app.DefaultTimeout},
		{input: "-1s", want: app.DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, app.ParseDuration(tt.input))
		})
	}
}
