package cli

import (
	"errors"
	"strings"

	"github.com/netdebug/wgflip/internal/domain"
)

// userMessage turns an error into one line that names the failing file.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		path := strings.TrimSpace(oe.Path)
		cause := ""
		if oe.Err != nil {
			cause = ": " + oe.Err.Error()
		}

		switch oe.Kind {
		case domain.KindNotFound:
			if path == "" {
				return "Not found" + cause
			}
			return "File not found: " + path

		case domain.KindInvalidConfig:
			if path == "" {
				return "Invalid config" + cause
			}
			return "Invalid config at " + path + cause

		case domain.KindIO:
			return "Cannot access " + path + cause

		default:
			if path != "" {
				return "Failed on " + path + cause
			}
		}
	}

	return err.Error()
}
