package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/daypilot/internal/constants"
	apperrors "github.com/julianstephens/daypilot/internal/errors"
	"github.com/julianstephens/daypilot/internal/keyring"
	"github.com/julianstephens/daypilot/internal/logger"
	"github.com/julianstephens/daypilot/internal/storage"
	"github.com/julianstephens/daypilot/internal/storage/postgres"
	"github.com/julianstephens/daypilot/internal/storage/sqlite"
	"github.com/julianstephens/daypilot/internal/utils"
)

const (
	memoryTarget   = ":memory:"
	postgresTarget = "postgres"
)

// OpenStore picks a storage backend for target:
//
//   - "postgres" uses the connection string from DAYPILOT_DB_CONNECTION or the keyring
//   - postgres:// or postgresql:// URLs use PostgreSQL directly
//   - paths ending in .json use the JSON file store
//   - ":memory:" keeps everything in process memory
//   - anything else is a SQLite database path
//
// The store is not loaded.
func OpenStore(target string) (storage.Provider, error) {
	target = strings.TrimSpace(target)

	switch {
	case target == postgresTarget:
		connStr, source, err := keyring.ResolveConnectionString("")
		if err != nil {
			return nil, apperrors.WithHint(err, fmt.Sprintf(
				"Store one with 'daypilot keyring set' or export %s.", constants.ConnectionEnvVar))
		}
		logger.Debug("Using PostgreSQL connection string", "source", source)
		return openPostgres(connStr)
	case postgres.IsConnString(target):
		return openPostgres(target)
	case target == memoryTarget:
		return storage.NewMemoryStore(0), nil
	}

	path, err := utils.ExpandHome(target)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

func openPostgres(connStr string) (storage.Provider, error) {
	if ok, err := postgres.ValidateConnString(connStr); !ok {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, apperrors.WithHint(err,
				"Use the OS keyring ('daypilot keyring set'), DAYPILOT_DB_CONNECTION, or a .pgpass file.")
		}
		return nil, err
	}
	return postgres.New(connStr), nil
}
