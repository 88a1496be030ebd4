// Package store holds issued reports for lookup by report ID.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dshills/clauseguard/internal/errs"
	"github.com/dshills/clauseguard/internal/schema"
)

// ErrExists is returned when a report ID is stored twice.
var ErrExists = errors.New("report already stored")

// ReportStore is a write-once report repository. Implementations must be
// safe for concurrent use.
type ReportStore interface {
	Put(ctx context.Context, r *schema.Report) error
	Get(ctx context.Context, id string) (*schema.Report, error)
}

// Memory is an in-process ReportStore bounded by size and TTL. Evicted or
// expired reports are reported as not found.
type Memory struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, *schema.Report]
}

// NewMemory returns a Memory store. size 0 means unbounded and ttl 0 means
// reports never expire.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size < 0 {
		size = 0
	}
	return &Memory{lru: expirable.NewLRU[string, *schema.Report](size, nil, ttl)}
}

// Put stores r under its ReportID. A second Put for the same ID fails with
// ErrExists and leaves the first report in place.
func (m *Memory) Put(_ context.Context, r *schema.Report) error {
	if r == nil || r.ReportID == "" {
		return fmt.Errorf("%w: report has no id", errs.ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lru.Contains(r.ReportID) {
		return fmt.Errorf("%w: %s", ErrExists, r.ReportID)
	}
	m.lru.Add(r.ReportID, r)
	return nil
}

// Get returns the report stored under id or an error wrapping errs.ErrNotFound.
func (m *Memory) Get(_ context.Context, id string) (*schema.Report, error) {
	r, ok := m.lru.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: report %q", errs.ErrNotFound, id)
	}
	return r, nil
}

// Len returns the number of live reports.
func (m *Memory) Len() int { return m.lru.Len() }
