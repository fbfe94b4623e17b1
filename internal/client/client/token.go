package client

import (
	"context"
	"sync"

	"github.com/cacutler/recipearchive/internal/client/repositories/metadata"
	"github.com/cacutler/recipearchive/internal/common"
	"github.com/cacutler/recipearchive/internal/logging"
)

// TokenStore is the process-wide credential slot.
//
// Reads never fail: a storage problem is reported as "no credential".
// Remove never fails either. Implementations must be safe for concurrent
// use; concurrent writers race last-write-wins.
type TokenStore interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, token string) error
	Remove(ctx context.Context)
}

// MetadataTokenStore keeps the credential in the metadata repository so that
// it survives restarts.
type MetadataTokenStore struct {
	repo   metadata.Repository
	logger logging.Logger
}

func NewMetadataTokenStore(repo metadata.Repository, logger logging.Logger) *MetadataTokenStore {
	if logger == nil {
		logger = logging.Discard()
	}
	return &MetadataTokenStore{repo: repo, logger: logger}
}

func (s *MetadataTokenStore) Get(ctx context.Context) (string, bool) {
	v, ok, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		s.logger.Warn(ctx, "reading credential failed", "error", err)
		return "", false
	}
	if !ok || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

func (s *MetadataTokenStore) Set(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenStorageKey, []byte(token))
}

func (s *MetadataTokenStore) Remove(ctx context.Context) {
	if err := s.repo.Delete(ctx, common.TokenStorageKey); err != nil {
		s.logger.Warn(ctx, "removing credential failed", "error", err)
	}
}

// MemoryTokenStore keeps the credential for the lifetime of the process.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Get(context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryTokenStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryTokenStore) Remove(context.Context) {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// NopTokenStore is used where no persistent storage exists. It never holds
// a credential, so authenticated requests go out without one.
type NopTokenStore struct{}

func (NopTokenStore) Get(context.Context) (string, bool) { return "", false }
func (NopTokenStore) Set(context.Context, string) error  { return nil }
func (NopTokenStore) Remove(context.Context)             {}
