// Package logging builds the zap logger shared by the server, the booking
// service and the background consumers.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// New returns a JSON production logger for env "prod"/"production" and a
// human-readable development logger for everything else.
//
// When outputs are given, log lines go only there instead of stderr.  The
// server passes a file while the admin console owns the terminal.
func New(env string, outputs ...string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	if len(outputs) > 0 {
		for _, out := range outputs {
			if out == "stdout" || out == "stderr" {
				continue
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return nil, fmt.Errorf("log dir: %w", err)
			}
		}
		cfg.OutputPaths = outputs
		cfg.ErrorOutputPaths = outputs
	}
	return cfg.Build()
}
