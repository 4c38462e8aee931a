package ingest

import (
	"log/slog"

	"github.com/gridironlabs/waiverwire/internal/identity"
	"github.com/gridironlabs/waiverwire/internal/storage"
)

// Ingestor runs the feed adapters. One instance per batch run; the embedded
// resolver caches are not safe for concurrent use.
type Ingestor struct {
	stores   *storage.Stores
	resolver *identity.Resolver
	logger   *slog.Logger
}

// New wires an ingestor over the given stores.
func New(stores *storage.Stores, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		stores:   stores,
		resolver: identity.NewResolver(stores.Players, logger),
		logger:   logger,
	}
}

// Resolver exposes the ingestor's identity resolver for stats reporting.
func (ig *Ingestor) Resolver() *identity.Resolver {
	return ig.resolver
}
