package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFileName is where InitLogger sends INFO and above.
const LogFileName = "scripthub.log"

var (
	Log       *zap.SugaredLogger = zap.NewNop().Sugar()
	ZapLogger *zap.Logger        = zap.NewNop() // Expose the raw zap Logger
)

// EncoderConfig returns the console encoder layout shared by the file core.
func EncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "T",
		LevelKey:         "L",
		NameKey:          "N",
		CallerKey:        "",              // Disable caller key
		FunctionKey:      zapcore.OmitKey, // Disable function key
		MessageKey:       "M",
		StacktraceKey:    "S",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration:   zapcore.SecondsDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: "  ",
	}
}

// New builds a logger writing INFO and above to w.
func New(w zapcore.WriteSyncer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(EncoderConfig()),
		w,
		zap.InfoLevel,
	)
	return zap.New(core)
}

func InitLogger() {
	logFile, err := os.OpenFile(LogFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("can't open log file: %v", err)
	}

	// The TUI owns stdout, so everything goes to the file.
	ZapLogger = New(zapcore.AddSync(logFile))
	Log = ZapLogger.Sugar()
	Log.Info("Logger initialized, logging to " + LogFileName)
}

func Sync() {
	if ZapLogger != nil {
		_ = ZapLogger.Sync() // flushes buffer, if any
	}
}
