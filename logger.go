// FILE: lixenwraith/hparams/logger.go
package hparams

import (
	"os"

	"github.com/rs/zerolog"
)

// defaultLogger writes warnings to stderr. Each Configs carries its own copy,
// replaced through SetLogger or Builder.WithLogger.
func defaultLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().
		Timestamp().
		Str("component", "hparams").
		Logger()
}
