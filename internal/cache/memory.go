package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/riskgate/riskgate/internal/configuration"
)

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

// MemoryCache is a process-local ICache used for single-instance deployments
// and tests.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (m *MemoryCache) get(key string) (memoryEntry, bool) {
	entry, ok := m.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}

func (m *MemoryCache) GetTOTPAttempts(userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.get(fmt.Sprintf(configuration.CacheTOTPAttemptsKey, userID))
	if !ok {
		return 0, nil
	}
	return entry.count, nil
}

func (m *MemoryCache) IncrementTOTPAttempts(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf(configuration.CacheTOTPAttemptsKey, userID)
	entry, _ := m.get(key)
	m.entries[key] = memoryEntry{
		count:     entry.count + 1,
		expiresAt: time.Now().Add(configuration.TOTPLockoutSeconds * time.Second),
	}
	return nil
}

func (m *MemoryCache) ResetTOTPAttempts(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, fmt.Sprintf(configuration.CacheTOTPAttemptsKey, userID))
	return nil
}

func (m *MemoryCache) IsTOTPCodeUsed(userID string, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.get(fmt.Sprintf(configuration.CacheTOTPUsedKey, userID, code))
	return ok, nil
}

func (m *MemoryCache) MarkTOTPCodeUsed(userID string, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf(configuration.CacheTOTPUsedKey, userID, code)
	if _, ok := m.get(key); ok {
		return false, nil
	}
	m.entries[key] = memoryEntry{
		count:     1,
		expiresAt: time.Now().Add(configuration.TOTPCodeTTL * time.Second),
	}
	return true, nil
}

func (m *MemoryCache) Close() {}

var _ ICache = (*MemoryCache)(nil)
