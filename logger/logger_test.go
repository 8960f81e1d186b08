package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{name: "debug级别", value: "debug", want: slog.LevelDebug},
		{name: "大小写不敏感", value: "WARN", want: slog.LevelWarn},
		{name: "warning别名", value: "warning", want: slog.LevelWarn},
		{name: "error级别", value: "error", want: slog.LevelError},
		{name: "空值回到info", value: "", want: slog.LevelInfo},
		{name: "未知值回到info", value: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.value))
		})
	}
}
