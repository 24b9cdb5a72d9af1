package ports

import "github.com/netdebug/wgflip/internal/domain"

// DocumentStore reads and writes source files as line documents.
type DocumentStore interface {
	Read(path string) (domain.Document, error)
	Write(doc domain.Document) error
	Remove(path string) error
}
