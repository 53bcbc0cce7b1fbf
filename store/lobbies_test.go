package store

import (
	"database/sql"
	"testing"

	models "teamup/models/postgres"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB renders SQL without touching a server.
func dryRunDB(t *testing.T) *gorm.DB {
	sqlDB, err := sql.Open("postgres", "host=localhost")
	assert.NoError(t, err)

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{Conn: sqlDB}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	assert.NoError(t, err)
	return db
}

// Membership changes read the lobby under a row lock; without it two
// concurrent joins on the last open slot both pass the capacity check.
func TestLockLobbyTakesRowLock(t *testing.T) {
	db := dryRunDB(t)

	var lobby models.Lobby
	result := lockLobby(db).Where("id = ?", "l1").Find(&lobby)
	assert.NoError(t, result.Error)
	assert.Contains(t, result.Statement.SQL.String(), "FOR UPDATE")
}
