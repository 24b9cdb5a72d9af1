package cli

import (
	"github.com/netdebug/wgflip/internal/infra/fsdoc"
	"github.com/netdebug/wgflip/internal/infra/workspacefinder"
	"github.com/netdebug/wgflip/internal/ports"
)

// adapters are the filesystem implementations behind a flip run.
type adapters struct {
	locator ports.WorkspaceLocator
	lister  ports.SourceLister
	store   ports.DocumentStore
}

func defaultAdapters() adapters {
	return adapters{
		locator: workspacefinder.NewFinder(),
		lister:  fsdoc.NewLister(),
		store:   fsdoc.NewStore(),
	}
}
