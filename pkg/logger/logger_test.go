package logger

import (
	"testing"

	"whereabouts/backend/config"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("format=%s 初始化失败: %v", format, err)
		}
		if !l.Core().Enabled(-1) {
			t.Errorf("format=%s 期望 debug 级别启用", format)
		}
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "verbose"}); err == nil {
		t.Error("无效日志级别应返回错误")
	}
}
