package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomsense/roomsense-backend/internal/model"
)

func TestOpenMigratesSchema(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	for _, table := range []string{"users", "devices", "readings", "alerts"} {
		assert.Truef(t, db.Migrator().HasTable(table), "table %s", table)
	}
}

func TestOwnerNameUniqueIndex(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	user := model.User{Email: "a@x.com", Password: "hash"}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, db.Create(&model.Device{UserID: user.ID, Name: "sensor1"}).Error)
	err = db.Create(&model.Device{UserID: user.ID, Name: "sensor1"}).Error
	assert.Error(t, err, "same owner and name must be rejected")

	other := model.User{Email: "b@x.com", Password: "hash"}
	require.NoError(t, db.Create(&other).Error)
	assert.NoError(t, db.Create(&model.Device{UserID: other.ID, Name: "sensor1"}).Error)
}

func TestEmailUnique(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.User{Email: "a@x.com", Password: "hash"}).Error)
	err = db.Create(&model.User{Email: "a@x.com", Password: "other"}).Error
	assert.Error(t, err)
}
