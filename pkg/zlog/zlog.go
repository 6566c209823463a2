package zlog

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *zap.Logger
	once   sync.Once
)

// Init configures the global logger. When logPath is empty, logs go to stdout only.
func Init(logPath string) {
	once.Do(func() {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder := zapcore.NewJSONEncoder(encoderConfig)

		cores := []zapcore.Core{
			zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel),
		}
		if logPath != "" {
			rotator := &lumberjack.Logger{
				Filename:   filepath.Join(logPath, "app.log"),
				MaxSize:    64, // MB
				MaxBackups: 7,
				MaxAge:     30, // days
				Compress:   true,
			}
			cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), zapcore.InfoLevel))
		}
		logger = zap.New(zapcore.NewTee(cores...), zap.AddCallerSkip(1))
	})
}

func get() *zap.Logger {
	if logger == nil {
		Init("")
	}
	return logger
}

func Debug(msg string) {
	get().Debug(msg)
}

func Info(msg string) {
	get().Info(msg)
}

func Warn(msg string) {
	get().Warn(msg)
}

func Error(msg string) {
	get().Error(msg)
}

func Fatal(msg string) {
	get().Fatal(msg)
}
