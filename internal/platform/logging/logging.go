package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger keeps call sites in the msg + key/value style:
//
//	log.Info("payment request created", "request_id", id)
type Logger struct {
	s *zap.SugaredLogger
}

func New(service string, level string) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{s: z.Named(service).Sugar()}, nil
}

func NewNop() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}

// With returns a child logger that adds kv to every entry.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{s: l.s.With(kv...)}
}

func (l *Logger) Debug(msg string, kv ...any) { l.s.Debugw(msg, kv...) }

func (l *Logger) Info(msg string, kv ...any) { l.s.Infow(msg, kv...) }

func (l *Logger) Warn(msg string, kv ...any) { l.s.Warnw(msg, kv...) }

func (l *Logger) Error(msg string, kv ...any) { l.s.Errorw(msg, kv...) }

// Errorf suits libraries that report through a printf-style callback.
func (l *Logger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }

func (l *Logger) Sync() error { return l.s.Sync() }
