package api

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

type reportDownload struct {
	name      string
	data      []byte
	expiresAt time.Time
}

// downloadStore 一次性下载的压缩包（内存保存，带过期时间）
type downloadStore struct {
	mu    sync.Mutex
	items map[string]reportDownload
}

func newDownloadStore() *downloadStore {
	return &downloadStore{
		items: make(map[string]reportDownload),
	}
}

func (s *downloadStore) put(name string, data []byte, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = newRandomToken(24)
	s.items[token] = reportDownload{
		name:      name,
		data:      data,
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

// take 取出并删除下载项
func (s *downloadStore) take(token string) (reportDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return reportDownload{}, false
	}
	delete(s.items, token)
	return v, true
}

func (s *downloadStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked(time.Now())
	return len(s.items)
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
