package app

import (
	"log/slog"
	"sync"

	"github.com/nvaldebenito/storefront/internal/session/domain"
)

// Storage is the durable home of the session blob. Load reports ok=false
// when nothing is stored; a parse error must be returned, not papered over,
// so the store can fail to an empty session.
type Storage interface {
	Load() (domain.Session, bool, error)
	Save(domain.Session) error
	Clear() error
}

// Store owns the session for the process and is the sole writer of durable
// identity storage. Every mutation persists; storage failures are logged and
// never surface to the caller, mirroring how little the rest of the app can
// do about them.
type Store struct {
	mu      sync.Mutex
	session domain.Session
	storage Storage
	log     *slog.Logger
}

// NewStore hydrates from storage. Anything that fails to load or parse is
// discarded and the store starts empty.
func NewStore(storage Storage, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}

	s := &Store{storage: storage, log: log}

	sess, ok, err := storage.Load()
	if err != nil {
		log.Warn("discarding stored session", slog.Any("err", err))
		return s
	}
	if ok {
		s.session = sess
	}
	return s
}

func (s *Store) Login(user domain.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user
	s.session = domain.Session{User: &u, Token: token}
	s.persist()
}

func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = domain.Session{}
	if err := s.storage.Clear(); err != nil {
		s.log.Warn("could not clear stored session", slog.Any("err", err))
	}
}

// UpdateUser applies a partial profile update. No-op when logged out.
func (s *Store) UpdateUser(patch domain.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.User == nil {
		return
	}
	u := patch.Apply(*s.session.User)
	s.session.User = &u
	s.persist()
}

func (s *Store) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session
	if sess.User != nil {
		u := *sess.User
		sess.User = &u
	}
	return sess
}

// Token implements restclient.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Token
}

// HandleUnauthorized is wired as the REST client's 401 hook: the server no
// longer honors the token, so the session is dropped everywhere.
func (s *Store) HandleUnauthorized() {
	s.log.Info("session rejected by server, logging out")
	s.Logout()
}

func (s *Store) persist() {
	if err := s.storage.Save(s.session); err != nil {
		s.log.Warn("could not persist session", slog.Any("err", err))
	}
}
