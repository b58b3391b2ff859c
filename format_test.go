package logsys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swforge/logsys"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{
			name:     "AutoIndex",
			template: "{} + {} = {}",
			args:     []any{2, 3, 5},
			want:     "2 + 3 = 5",
		},
		{
			name:     "Positional",
			template: "{1} before {0}",
			args:     []any{"b", "a"},
			want:     "a before b",
		},
		{
			name:     "RepeatedPositional",
			template: "{0}{0}{0}",
			args:     []any{"x"},
			want:     "xxx",
		},
		{
			name:     "EscapedBraces",
			template: "{{}} and {}",
			args:     []any{1},
			want:     "{} and 1",
		},
		{
			name:     "NoPlaceholders",
			template: "plain text",
			args:     nil,
			want:     "plain text",
		},
		{
			name:     "Floats",
			template: "{} {} {}",
			args:     []any{1.0, 2.5, float32(3)},
			want:     "1 2.5 3",
		},
		{
			name:     "MixedTypes",
			template: "{}={} ok={}",
			args:     []any{"count", int64(42), true},
			want:     "count=42 ok=true",
		},
		{
			name:     "NilValue",
			template: "v={}",
			args:     []any{nil},
			want:     "v=<nil>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logsys.Format(tt.template, tt.args...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
	}{
		{name: "UnterminatedBrace", template: "broken {", args: []any{1}},
		{name: "UnmatchedClose", template: "broken }", args: []any{1}},
		{name: "NonNumericSpec", template: "{:x}", args: []any{1}},
		{name: "IndexOutOfRange", template: "{3}", args: []any{1}},
		{name: "MissingArgument", template: "{} {}", args: []any{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected a panic")
				_, ok := r.(*logsys.FormatError)
				assert.True(t, ok, "expected *FormatError, got %T", r)
			}()
			logsys.Format(tt.template, tt.args...)
		})
	}
}

func TestAppendFormat(t *testing.T) {
	dst := []byte("prefix: ")
	dst = logsys.AppendFormat(dst, "{}-{}", "a", 1)
	assert.Equal(t, "prefix: a-1", string(dst))
}
