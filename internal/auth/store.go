// Package auth holds the bearer token the list client sends and the session
// storage it wipes when the server reports an expired session.
package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"unifiedlist/internal/infra/logx"
)

const tokenKey = "token"

// Store is the session storage consumed by the request builder and the
// session-expiry handler.
type Store interface {
	// Token returns the stored bearer token or "" when there is none.
	Token() string
	// Save replaces the stored token.
	Save(token string) error
	// Clear removes everything the store persisted.
	Clear() error
}

// FileStore keeps KEY=VALUE lines in a 0600 file, one of them being token.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file need not exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) read() (map[string]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vals := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		vals[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return vals, sc.Err()
}

func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	vals, err := s.read()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logx.Warnf("read token file %s: %v", s.path, err)
		}
		return ""
	}
	tok := vals[tokenKey]
	logx.RegisterSecret(tok)
	return tok
}

func (s *FileStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	logx.RegisterSecret(token)
	data := fmt.Sprintf("%s=%s\n", strings.ToUpper(tokenKey), token)
	return os.WriteFile(s.path, []byte(data), 0o600)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session storage: %w", err)
	}
	return nil
}

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu  sync.Mutex
	tok string
}

func NewMemoryStore(token string) *MemoryStore { return &MemoryStore{tok: token} }

func (s *MemoryStore) Token() string { s.mu.Lock(); defer s.mu.Unlock(); return s.tok }

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	s.tok = strings.TrimSpace(token)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear() error { s.mu.Lock(); s.tok = ""; s.mu.Unlock(); return nil }
