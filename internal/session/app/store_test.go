package app

import (
	"errors"
	"testing"

	"github.com/nvaldebenito/storefront/internal/session/domain"
	"github.com/nvaldebenito/storefront/internal/session/infra/storage"
)

func ada() domain.User {
	return domain.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: "client"}
}

func TestHydration(t *testing.T) {
	t.Run("empty storage -> empty session", func(t *testing.T) {
		s := NewStore(storage.NewMemory(), nil)
		if s.Current().LoggedIn() {
			t.Fatal("expected logged-out session")
		}
	})

	t.Run("stored session is restored", func(t *testing.T) {
		mem := storage.NewMemory()
		u := ada()
		mem.Save(domain.Session{User: &u, Token: "tok-1"})

		s := NewStore(mem, nil)
		sess := s.Current()
		if !sess.LoggedIn() || sess.Token != "tok-1" || sess.User.Email != "ada@example.com" {
			t.Fatalf("unexpected session: %+v", sess)
		}
	})

	t.Run("corrupt storage fails to empty, never errors", func(t *testing.T) {
		mem := storage.NewMemory()
		mem.LoadErr = errors.New("parse session file: unexpected end of input")

		s := NewStore(mem, nil)
		if s.Current().LoggedIn() {
			t.Fatal("expected empty session after corrupt load")
		}
	})
}

func TestLoginPersistsAndLogoutClears(t *testing.T) {
	mem := storage.NewMemory()
	s := NewStore(mem, nil)

	s.Login(ada(), "tok-9")

	if s.Token() != "tok-9" {
		t.Fatalf("expected token tok-9, got %q", s.Token())
	}
	stored, ok, _ := mem.Load()
	if !ok || stored.Token != "tok-9" || stored.User == nil {
		t.Fatalf("expected session persisted, got ok=%v %+v", ok, stored)
	}

	s.Logout()

	if s.Token() != "" || s.Current().LoggedIn() {
		t.Fatal("expected empty session after logout")
	}
	if _, ok, _ := mem.Load(); ok {
		t.Fatal("expected durable storage cleared")
	}
}

func TestUpdateUser(t *testing.T) {
	t.Run("partial update persists", func(t *testing.T) {
		mem := storage.NewMemory()
		s := NewStore(mem, nil)
		s.Login(ada(), "tok-1")

		email := "countess@example.com"
		s.UpdateUser(domain.UserPatch{Email: &email})

		sess := s.Current()
		if sess.User.Email != "countess@example.com" {
			t.Fatalf("expected updated email, got %q", sess.User.Email)
		}
		if sess.User.FirstName != "Ada" {
			t.Fatalf("expected untouched fields kept, got %+v", sess.User)
		}

		stored, _, _ := mem.Load()
		if stored.User.Email != "countess@example.com" {
			t.Fatalf("expected persisted update, got %+v", stored.User)
		}
	})

	t.Run("no-op when logged out", func(t *testing.T) {
		s := NewStore(storage.NewMemory(), nil)
		name := "Nobody"
		s.UpdateUser(domain.UserPatch{FirstName: &name})
		if s.Current().User != nil {
			t.Fatal("expected no user")
		}
	})
}

func TestHandleUnauthorized(t *testing.T) {
	mem := storage.NewMemory()
	s := NewStore(mem, nil)
	s.Login(ada(), "tok-1")

	s.HandleUnauthorized()

	if s.Current().LoggedIn() {
		t.Fatal("expected session dropped after 401")
	}
	if _, ok, _ := mem.Load(); ok {
		t.Fatal("expected durable storage cleared after 401")
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	s := NewStore(storage.NewMemory(), nil)
	s.Login(ada(), "tok-1")

	sess := s.Current()
	sess.User.Email = "mutated@example.com"

	if s.Current().User.Email != "ada@example.com" {
		t.Fatal("store mutated through Current() copy")
	}
}
