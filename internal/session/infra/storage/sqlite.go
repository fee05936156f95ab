package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/nvaldebenito/storefront/internal/session/domain"
)

const (
	keyUser  = "user"
	keyToken = "token"
)

// SQLite persists the session in a key/value table under the fixed keys
// "user" and "token". Writes from concurrent processes serialize on the
// database lock but still resolve last-write-wins.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dataDir string) (*SQLite, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "storefront.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Load() (domain.Session, bool, error) {
	userRaw, userOK, err := s.get(keyUser)
	if err != nil {
		return domain.Session{}, false, err
	}
	token, tokenOK, err := s.get(keyToken)
	if err != nil {
		return domain.Session{}, false, err
	}
	if !userOK && !tokenOK {
		return domain.Session{}, false, nil
	}

	sess := domain.Session{Token: token}
	if userOK && userRaw != "" {
		var u domain.User
		if err := json.Unmarshal([]byte(userRaw), &u); err != nil {
			return domain.Session{}, false, fmt.Errorf("parse stored user: %w", err)
		}
		sess.User = &u
	}
	return sess, true, nil
}

func (s *SQLite) Save(sess domain.Session) error {
	userRaw := ""
	if sess.User != nil {
		raw, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		userRaw = string(raw)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsert := `INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(upsert, keyUser, userRaw); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if _, err := tx.Exec(upsert, keyToken, sess.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	return tx.Commit()
}

func (s *SQLite) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE key IN (?, ?)`, keyUser, keyToken)
	return err
}

func (s *SQLite) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
