package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName      = "config"
	configType      = "toml"
	storePathKey    = "store.path"
	storePathEnv    = "BM_STORE_PATH"
	storeConfigDir  = ".bm"
	recordExt       = ".toml"
	recordFileMode  = 0o600
	recordDirMode   = 0o700
	tempFilePattern = ".record-*.toml.tmp"
)

// Store maps logical record paths to TOML files under a single root
// directory. Reads treat missing and undecodable files identically as
// "not found"; writes go through a temp file and rename.
type Store struct {
	root string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	rootLockMap    = map[string]*sync.RWMutex{}
)

func NewStore(cfg *viper.Viper) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultRoot := filepath.Join(homeDir, storeConfigDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(defaultRoot)
	cfg.SetDefault(storePathKey, defaultRoot)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	root := cfg.GetString(storePathKey)
	if env := os.Getenv(storePathEnv); env != "" {
		root = env
	}
	if root == "" {
		return nil, errors.New("store path is empty")
	}

	root, err = filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	root = filepath.Clean(root)

	return &Store{root: root, mu: lockForRoot(root)}, nil
}

// NewStoreAt bypasses config resolution and roots the store at an
// explicit directory. Used by tests and by hosts that manage their own
// configuration.
func NewStoreAt(root string) (*Store, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	root = filepath.Clean(root)

	return &Store{root: root, mu: lockForRoot(root)}, nil
}

func (s *Store) Root() string {
	return s.root
}

func lockForRoot(root string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := rootLockMap[root]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	rootLockMap[root] = mu
	return mu
}

func (s *Store) path(logical string) string {
	return filepath.Join(s.root, filepath.FromSlash(logical)+recordExt)
}

// readRecord decodes the record at the logical path into out. It
// reports false without an error when the file is missing or cannot be
// decoded: callers must treat "not found" and "corrupt" identically.
func (s *Store) readRecord(logical string, out any) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(logical))
	if err != nil {
		return false
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return false
	}

	return true
}

// writeRecord fully overwrites the record at the logical path, creating
// parent directories as needed. The temp-file-then-rename keeps a
// failed write from truncating the previous record.
func (s *Store) writeRecord(logical string, record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.path(logical)

	if err := os.MkdirAll(filepath.Dir(target), recordDirMode); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}

	data, err := toml.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(target), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp record file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp record file: %w", err)
	}

	if err := tempFile.Chmod(recordFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp record file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp record file: %w", err)
	}

	if err := os.Rename(tempName, target); err != nil {
		return fmt.Errorf("replace record file: %w", err)
	}

	cleanup = false

	return nil
}

// deleteRecord removes the record at the logical path. Deleting a
// record that does not exist succeeds.
func (s *Store) deleteRecord(logical string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(logical)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete record file: %w", err)
	}

	return nil
}

// listRecords enumerates the logical names of records directly under a
// logical directory, sorted ascending. A missing directory lists as
// empty.
func (s *Store) listRecords(logicalDir string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.root, filepath.FromSlash(logicalDir)))
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), recordExt))
	}
	sort.Strings(names)

	return names
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func secondsToDuration(seconds int64) time.Duration {
	return time.Duration(seconds) * time.Second
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
