package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L 全局日志实例
// 在 main 中调用 Init 后即可在各层使用
var L = zap.NewNop()

// Init 初始化 zap 日志
// mode: "debug" 使用开发配置（彩色、易读），其他使用生产配置（JSON）
func Init(mode string) *zap.Logger {
	var cfg zap.Config
	if mode == "debug" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// 日志系统构建失败没有降级空间，直接 panic
		panic("日志初始化失败: " + err.Error())
	}

	L = l
	return l
}

// Sync 刷新缓冲日志，main 退出前调用
func Sync() {
	_ = L.Sync()
}
