package main

import (
	"fmt"
	"path/filepath"

	"github.com/spacemeshos/go-bloomsync/database"
	"github.com/spacemeshos/go-bloomsync/evtstore"
)

func (a *app) storePath() string {
	return filepath.Join(a.cfg.DataDir, "store")
}

func (a *app) digestDir() string {
	return filepath.Join(a.cfg.DataDir, "digests")
}

// openStore opens the event store in the data directory. The returned function
// closes the underlying database.
func (a *app) openStore() (*evtstore.Store, func(), error) {
	db, err := database.NewLDBDatabase(a.storePath(), 0, 0, a.logger.Named("db"))
	if err != nil {
		return nil, nil, fmt.Errorf("open event store: %w", err)
	}
	return evtstore.New(db, evtstore.WithLogger(a.logger.Named("evtstore"))), db.Close, nil
}
