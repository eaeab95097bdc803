package giacbridge

import (
	"go.uber.org/zap"

	"github.com/casworks/giacbridge/helpdb"
	"github.com/casworks/giacbridge/internal/kernel"
)

// SetLogger installs a logger for kernel diagnostics. Call before the
// first boundary operation; the default is a no-op logger.
func SetLogger(l *zap.Logger) {
	kernel.SetLogger(l)
}

// Version is the bridge library version.
const Version = "0.1.0"

// BridgeVersion returns the bridge library version.
func BridgeVersion() string {
	return Version
}

// KernelVersion returns the version of the wrapped algebra kernel.
func KernelVersion() string {
	return kernel.Version()
}

// ListCommands returns the documented command names from the help
// database. Empty until helpdb.InitHelp has loaded one.
func ListCommands() []string {
	return helpdb.Commands()
}

// CommandCount returns the number of documented commands.
func CommandCount() int {
	return helpdb.Count()
}

// Available reports whether the kernel completed its one-time
// initialization. Initialization is currently infallible, so this returns
// true once any boundary operation has run; calling it forces
// initialization itself.
func Available() bool {
	return kernel.Init()
}
