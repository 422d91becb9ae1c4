package zlog

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

// Init configures the global logger. With an empty logPath only console output
// is used. Calling it again replaces the logger, so log calls made before
// configuration is loaded (package init paths) go to the console and later
// calls pick up the file sink.
func Init(logPath string) {
	logger.Store(newLogger(logPath))
}

func newLogger(logPath string) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zapcore.DebugLevel),
	}
	if logPath != "" {
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(logPath, "expertbridge.log"),
			MaxSize:    100, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), zapcore.InfoLevel))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCallerSkip(1), zap.AddCaller())
}

func get() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	l := newLogger("")
	if logger.CompareAndSwap(nil, l) {
		return l
	}
	return logger.Load()
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
