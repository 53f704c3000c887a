package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

var levelColors = map[zapcore.Level]*color.Color{
	zapcore.DebugLevel: color.New(color.FgHiBlack),
	zapcore.InfoLevel:  color.New(color.FgBlue),
	zapcore.WarnLevel:  color.New(color.FgYellow),
	zapcore.ErrorLevel: color.New(color.FgRed),
	zapcore.FatalLevel: color.New(color.FgMagenta),
}

func coloredLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	name := fmt.Sprintf("%-5s", l.CapitalString())
	if c, ok := levelColors[l]; ok {
		name = c.Sprint(name)
	}
	enc.AppendString(name)
}

// ColoredLogger writes the CLI's human readable log lines: a bracketed
// timestamp, a colored level and the message. DEBUG lines only appear in
// verbose mode; ERROR and FATAL go to the error writers.
type ColoredLogger struct {
	mu         sync.RWMutex
	level      zap.AtomicLevel
	writers    []io.Writer
	errWriters []io.Writer
	sugar      *zap.SugaredLogger
}

var globalLogger *ColoredLogger

func init() {
	globalLogger = &ColoredLogger{
		level:      zap.NewAtomicLevelAt(zapcore.InfoLevel),
		writers:    []io.Writer{os.Stdout},
		errWriters: []io.Writer{os.Stdout},
	}
	globalLogger.rebuild()
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      coloredLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout("[06-01-02 15:04:05]"),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func syncer(writers []io.Writer) zapcore.WriteSyncer {
	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, w := range writers {
		syncers = append(syncers, zapcore.AddSync(w))
	}
	return zapcore.NewMultiWriteSyncer(syncers...)
}

// rebuild must be called with mu held for writing (or during init).
func (cl *ColoredLogger) rebuild() {
	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l < zapcore.ErrorLevel && cl.level.Enabled(l)
	})
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.ErrorLevel && cl.level.Enabled(l)
	})
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), syncer(cl.writers), low),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), syncer(cl.errWriters), high),
	)
	cl.sugar = zap.New(core).Sugar()
}

func SetVerbose(verbose bool) {
	if verbose {
		globalLogger.level.SetLevel(zapcore.DebugLevel)
		return
	}
	globalLogger.level.SetLevel(zapcore.InfoLevel)
}

func IsVerbose() bool {
	return globalLogger.level.Enabled(zapcore.DebugLevel)
}

func SetWriterForAll(writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.writers = []io.Writer{writer}
	globalLogger.errWriters = []io.Writer{writer}
	globalLogger.rebuild()
}

func AddWriterForAll(writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.writers = append(globalLogger.writers, writer)
	globalLogger.errWriters = append(globalLogger.errWriters, writer)
	globalLogger.rebuild()
}

func SetErrorWriter() {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.errWriters = []io.Writer{os.Stderr}
	globalLogger.rebuild()
}

// Sync flushes buffered output. Call it before the process exits.
func Sync() error {
	globalLogger.mu.RLock()
	defer globalLogger.mu.RUnlock()
	return globalLogger.sugar.Sync()
}

func (cl *ColoredLogger) log(level LogLevel, format string, args ...interface{}) {
	cl.mu.RLock()
	sugar := cl.sugar
	cl.mu.RUnlock()

	switch level {
	case DEBUG:
		sugar.Debugf(format, args...)
	case INFO:
		sugar.Infof(format, args...)
	case WARN:
		sugar.Warnf(format, args...)
	case ERROR:
		sugar.Errorf(format, args...)
	case FATAL:
		sugar.Fatalf(format, args...)
	default:
		sugar.Infof(format, args...)
	}
}

func Debug(format string, args ...interface{}) {
	globalLogger.log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.log(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.log(ERROR, format, args...)
}

func Fatal(format string, args ...interface{}) {
	globalLogger.log(FATAL, format, args...)
}

