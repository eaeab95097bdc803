package kernel

import (
	"sync"

	"go.uber.org/zap"
)

const kernelVersion = "1.9.0"

var (
	initOnce    sync.Once
	initialized bool

	log     *zap.Logger
	logOnce sync.Once
)

// logger returns the kernel's logger. No-op by default; SetLogger installs
// a real one.
func logger() *zap.Logger {
	logOnce.Do(func() {
		if log == nil {
			log = zap.NewNop()
		}
	})
	return log
}

// SetLogger installs a logger for kernel diagnostics. Must be called
// before the first boundary operation to take effect.
func SetLogger(l *zap.Logger) {
	log = l
}

// Init performs the one-time process-wide initialization: operator and
// builtin symbol tables. Safe to call from any goroutine; runs exactly
// once. Returns true when initialization completed.
func Init() bool {
	initOnce.Do(func() {
		initOperatorTable()
		initBuiltinTable()
		initialized = true
		logger().Debug("kernel initialized",
			zap.Int("builtins", len(builtins)),
			zap.String("version", kernelVersion))
	})
	return initialized
}

// Version returns the kernel version string.
func Version() string {
	return kernelVersion
}
