package storage

import (
	"sync"

	"github.com/nvaldebenito/storefront/internal/session/domain"
)

// Memory keeps the session in-process. Used in tests and as a fallback when
// no durable backend is configured.
type Memory struct {
	mu   sync.Mutex
	sess domain.Session
	ok   bool

	LoadErr error
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() (domain.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return domain.Session{}, false, m.LoadErr
	}
	return m.sess, m.ok, nil
}

func (m *Memory) Save(sess domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = sess
	m.ok = true
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = domain.Session{}
	m.ok = false
	return nil
}
