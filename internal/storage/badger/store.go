// Package badger stores records in an embedded BadgerDB directory.
package badger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/julianstephens/elevate/internal/storage"
)

const (
	recordPrefix = "record/"
	versionKey   = "meta/version"
	formatV1     = "1"
)

// Config controls how the database is opened.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps everything in RAM; used by tests.
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
	// Logger receives BadgerDB's internal messages. Nil silences them.
	Logger *slog.Logger
	// GCDiscardRatio is passed to a value log GC pass on Close. Zero skips GC.
	GCDiscardRatio float64
}

func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		SyncWrites:     true,
		GCDiscardRatio: 0.5,
	}
}

func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// slogAdapter satisfies badger.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (l *slogAdapter) Errorf(format string, args ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *slogAdapter) Warningf(format string, args ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *slogAdapter) Infof(format string, args ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *slogAdapter) Debugf(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

type Store struct {
	cfg Config
	db  *badger.DB
}

func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

func (s *Store) open() error {
	var opts badger.Options
	if s.cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if s.cfg.Path == "" {
			return errors.New("path is required for persistent database")
		}
		opts = badger.DefaultOptions(s.cfg.Path)
	}

	opts = opts.WithSyncWrites(s.cfg.SyncWrites).WithNumVersionsToKeep(1)
	if s.cfg.Logger != nil {
		opts = opts.WithLogger(&slogAdapter{logger: s.cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open badger database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) initialized() bool {
	_, err := os.Stat(filepath.Join(s.cfg.Path, "MANIFEST"))
	return err == nil
}

func (s *Store) Init() error {
	if !s.cfg.InMemory {
		if s.initialized() {
			return fmt.Errorf("storage already initialized at %s", s.cfg.Path)
		}
		if err := os.MkdirAll(s.cfg.Path, 0700); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if err := s.open(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(versionKey), []byte(formatV1))
	})
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if !s.cfg.InMemory && !s.initialized() {
		return fmt.Errorf("storage not initialized, run 'elevate init' first")
	}
	if err := s.open(); err != nil {
		return err
	}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(versionKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			if string(v) != formatV1 {
				return fmt.Errorf("unsupported badger store format %q", v)
			}
			return nil
		})
	})
	if err != nil {
		s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Close runs one value log GC pass when configured, then closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	if s.cfg.GCDiscardRatio > 0 && !s.cfg.InMemory {
		if err := s.db.RunValueLogGC(s.cfg.GCDiscardRatio); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
			if s.cfg.Logger != nil {
				s.cfg.Logger.Warn("badger value log GC failed", slog.String("error", err.Error()))
			}
		}
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) Get(key string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(recordPrefix + key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record %q: %w", key, err)
	}
	return out, nil
}

func (s *Store) Put(key string, data []byte) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(recordPrefix+key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write record %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(recordPrefix + key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete record %q: %w", key, err)
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(recordPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, strings.TrimPrefix(string(it.Item().Key()), recordPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return keys, nil
}

func (s *Store) GetConfigPath() string {
	if s.cfg.InMemory {
		return ":memory:"
	}
	return s.cfg.Path
}
