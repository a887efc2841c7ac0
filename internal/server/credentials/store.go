// Package credentials verifies logins against the static user set loaded at
// startup.
package credentials

import (
	"sync"

	"github.com/dmitrijs2005/filekeeper/internal/cryptox"
	"github.com/puzpuzpuz/xsync/v4"
)

// Store maps usernames to encoded password hashes. It is filled once while
// the server starts and only read afterwards.
type Store struct {
	hashes *xsync.Map[string, string]
}

func NewStore() *Store {
	return &Store{hashes: xsync.NewMap[string, string]()}
}

// AddHash registers username with an already encoded hash.
func (s *Store) AddHash(username, encoded string) error {
	if _, _, err := cryptox.ParseHash(encoded); err != nil {
		return err
	}
	s.hashes.Store(username, encoded)
	return nil
}

// AddPassword hashes password and registers it for username.
func (s *Store) AddPassword(username, password string) {
	s.hashes.Store(username, cryptox.HashPassword([]byte(password)))
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// Verify reports whether password is correct for username. Unknown users
// still pay for one hash comparison.
func (s *Store) Verify(username, password string) bool {
	encoded, ok := s.hashes.Load(username)
	if !ok {
		dummyOnce.Do(func() { dummyHash = cryptox.HashPassword([]byte("dummy")) })
		cryptox.CheckPassword(dummyHash, []byte(password))
		return false
	}
	return cryptox.CheckPassword(encoded, []byte(password))
}

func (s *Store) Len() int {
	return s.hashes.Size()
}
