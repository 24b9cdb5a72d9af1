package ports

import "github.com/netdebug/wgflip/internal/domain"

// Journal records applied file operations for later inspection.
type Journal interface {
	Record(run domain.RunResult) error
}
