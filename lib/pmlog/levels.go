package pmlog

import (
	"os"

	logging "github.com/ipfs/go-log/v2"
)

// SetupLogLevels sets the default levels. GOLOG_LOG_LEVEL, when set, is left
// to go-log.
func SetupLogLevels() {
	if _, set := os.LookupEnv("GOLOG_LOG_LEVEL"); set {
		return
	}
	_ = logging.SetLogLevel("*", "INFO")
	_ = logging.SetLogLevel("rpc", "ERROR")
	_ = logging.SetLogLevel("retry", "WARN")
}

// SetLevel applies level to every subsystem matching expr.
func SetLevel(expr, level string) error {
	return logging.SetLogLevelRegex(expr, level)
}
