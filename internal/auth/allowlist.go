package auth

import (
	"sync"
	"sync/atomic"

	"github.com/KennethL27/personal-cloud-service/internal/config"
)

type allowSnapshot struct {
	emails map[string]struct{}
	err    error
}

// AllowList is loaded from its source on first use and immutable afterwards.
type AllowList struct {
	source  func() string
	mu      sync.Mutex
	current atomic.Pointer[allowSnapshot]
}

func NewAllowList(source func() string) *AllowList {
	return &AllowList{source: source}
}

func NewStaticAllowList(emails ...string) *AllowList {
	snapshot := &allowSnapshot{emails: make(map[string]struct{}, len(emails))}
	for _, email := range emails {
		if normalized := NormalizeEmail(email); normalized != "" {
			snapshot.emails[normalized] = struct{}{}
		}
	}
	list := &AllowList{source: func() string { return "" }}
	list.current.Store(snapshot)
	return list
}

// Load forces initialisation and reports a malformed or missing source.
func (list *AllowList) Load() error {
	return list.snapshot().err
}

func (list *AllowList) IsAllowed(email string) bool {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return false
	}
	snapshot := list.snapshot()
	if snapshot.err != nil {
		return false
	}
	_, ok := snapshot.emails[normalized]
	return ok
}

// Reset drops the cached snapshot so the next lookup reloads the source.
func (list *AllowList) Reset() {
	list.mu.Lock()
	defer list.mu.Unlock()
	list.current.Store(nil)
}

func (list *AllowList) snapshot() *allowSnapshot {
	if snapshot := list.current.Load(); snapshot != nil {
		return snapshot
	}

	list.mu.Lock()
	defer list.mu.Unlock()
	if snapshot := list.current.Load(); snapshot != nil {
		return snapshot
	}

	snapshot := &allowSnapshot{}
	emails, err := config.ParseAllowedEmails(list.source())
	if err != nil {
		snapshot.err = err
	} else {
		snapshot.emails = make(map[string]struct{}, len(emails))
		for _, email := range emails {
			snapshot.emails[email] = struct{}{}
		}
	}
	list.current.Store(snapshot)
	return snapshot
}
