package cache

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Clock источник текущего времени; подменяется в тестах
type Clock func() time.Time

// Memory in-memory кэш доступности по турам с TTL
//
// Кэш перезаписывается при обновлении и не претендует на строгую
// консистентность: просроченная запись означает промах, свежая запись
// никогда не старше TTL. Безопасен для конкурентных запросов
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	clock   Clock
	entries map[string]memoryEntry
}

type memoryEntry struct {
	values    []domain.DateAvailability
	expiresAt time.Time
}

// NewMemory создает in-memory кэш. clock = nil означает time.Now
func NewMemory(ttl time.Duration, clock Clock) *Memory {
	if clock == nil {
		clock = time.Now
	}
	return &Memory{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]memoryEntry),
	}
}

// Get возвращает закэшированную доступность тура
// Просроченная запись считается промахом
func (c *Memory) Get(_ context.Context, tourSlug string) ([]domain.DateAvailability, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[tourSlug]
	if !ok || c.clock().After(entry.expiresAt) {
		return nil, false, nil
	}

	return entry.values, true, nil
}

// Set сохраняет доступность тура со свежим TTL
func (c *Memory) Set(_ context.Context, tourSlug string, values []domain.DateAvailability) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[tourSlug] = memoryEntry{
		values:    values,
		expiresAt: c.clock().Add(c.ttl),
	}
	return nil
}
