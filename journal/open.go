package journal

import (
	"fmt"

	"github.com/rustyeddy/careerloans/config"
)

// Open builds the journal named by cfg.Type. "none" discards everything.
func Open(cfg config.JournalConfig) (Journal, error) {
	switch cfg.Type {
	case "", "none":
		return Discard, nil
	case "csv":
		return NewCSV(cfg.PaymentsFile, cfg.EventsFile)
	case "sqlite":
		return NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}
