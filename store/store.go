// Package store defines the persistence ports the HTTP handlers depend
// on, plus their GORM implementations. Handlers only see the interfaces,
// so tests can substitute in-memory fakes.
package store

import (
	"errors"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

// Sentinel errors shared by every implementation.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// LobbyFilter narrows a lobby listing. Zero values mean "no constraint".
type LobbyFilter struct {
	Game     string // substring match on the game display name
	Platform string // exact match, case-insensitive
	MinSkill int
	MaxSkill int
	HasSlots bool // only lobbies with filled_slots < slots
}

// BidFilter narrows a bid listing. Zero values mean "no constraint".
type BidFilter struct {
	Description string // substring match
	GameName    string // exact game display name
	AuthorID    string
}

// notFound translates GORM's record-not-found into the port sentinel.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// isUniqueViolation reports whether err is a PostgreSQL unique-index
// violation. Pre-insert existence probes race with each other, so the
// index is the final arbiter for duplicates.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
