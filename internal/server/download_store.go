package server

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

type download struct {
	csv       []byte
	workbook  []byte
	prefix    string
	expiresAt time.Time
}

// downloadStore holds finished conversion outputs under one-time
// tokens until the browser fetches them.
type downloadStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]download
}

func newDownloadStore(ttl time.Duration) *downloadStore {
	return &downloadStore{
		ttl:   ttl,
		items: make(map[string]download),
	}
}

func (s *downloadStore) put(csv, workbook []byte, prefix string) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = newRandomToken(24)
	s.items[token] = download{
		csv:       csv,
		workbook:  workbook,
		prefix:    prefix,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token
}

func (s *downloadStore) get(token string) (download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return download{}, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, token)
		return download{}, false
	}
	return v, true
}

func (s *downloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
