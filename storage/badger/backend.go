package badger

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Backend owns the BadgerDB handle backing the snapshot store.
type Backend struct {
	db *badger.DB
}

// badgerSlog routes badger's internal logging through slog.
type badgerSlog struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerSlog)(nil)

func (l *badgerSlog) Errorf(msg string, items ...any)   { l.logger.Error(fmt.Sprintf(msg, items...)) }
func (l *badgerSlog) Warningf(msg string, items ...any) { l.logger.Warn(fmt.Sprintf(msg, items...)) }
func (l *badgerSlog) Infof(msg string, items ...any)    { l.logger.Debug(fmt.Sprintf(msg, items...)) }
func (l *badgerSlog) Debugf(msg string, items ...any)   { l.logger.Debug(fmt.Sprintf(msg, items...)) }

// OpenBackend opens the snapshot database at filePath, creating the
// directory when needed. With inMemory set, nothing touches disk; the
// snapshot then lives only for the lifetime of the process, which is what
// the tests want.
func OpenBackend(filePath string, inMemory bool) (*Backend, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(filePath, 0755); err != nil {
			return nil, fmt.Errorf("creating snapshot directory: %w", err)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerSlog{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Backend{db: db}, nil
}

// Close closes the underlying database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// WithTx runs fn inside a transaction, read-write when isWrite is set. The
// transaction is discarded unless fn commits it.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}
