package log

import (
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

func init() { logger.Store(zap.NewNop()) }

// New builds the production JSON logger. An empty file logs to stdout only.
func New(level, file string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if file != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, file)
	}
	return cfg.Build()
}

// SetLogger replaces the sink used by the package level helpers.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func L() *zap.Logger { return logger.Load() }

func write(level zapcore.Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	l := logger.Load()
	ce := l.Check(level, action)
	if ce == nil {
		return
	}
	zf := make([]zap.Field, 0, 8)
	zf = append(zf, zap.String("action", action))
	if c != nil {
		zf = append(zf,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			zf = append(zf, zap.String("req_id", rid))
		}
		if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
			zf = append(zf, zap.String("user_id", uid))
		}
	}
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	if len(fields) > 0 {
		zf = append(zf, zap.Any("fields", fields))
	}
	ce.Write(zf...)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, c, action, nil, fields)
}

// Audit records a state change made on behalf of a user.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, c, action, nil, merge(fields, "audit", true))
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, c, action, nil, fields)
}

// Warn is for failures outside a request that were recovered from.
func Warn(action string, err error, fields map[string]any) {
	write(zapcore.WarnLevel, nil, action, err, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, c, action, err, fields)
}

func merge(fields map[string]any, k string, v any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for fk, fv := range fields {
		out[fk] = fv
	}
	out[k] = v
	return out
}
