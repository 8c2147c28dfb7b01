package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/najdi/internal/config"
	"github.com/erazemk/najdi/internal/db"
	"github.com/erazemk/najdi/internal/model"
	"github.com/erazemk/najdi/internal/store"
	"github.com/erazemk/najdi/internal/uploads"
)

func TestEnsureAdmin(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	password, err := ensureAdmin(ctx, database, "Admin")
	require.NoError(t, err)
	assert.Len(t, password, 16)

	user, err := store.GetUserByUsername(ctx, database, "Admin")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))

	again, err := ensureAdmin(ctx, database, "Admin")
	require.NoError(t, err)
	assert.Empty(t, again, "second run creates nothing")
}

func TestNewStorageDefaultsToDB(t *testing.T) {
	database := db.NewTestDB(t)

	s, err := newStorage(context.Background(), config.UploadsConfig{Backend: "db"}, database)
	require.NoError(t, err)
	assert.IsType(t, &uploads.DBStorage{}, s)
}

func TestNewDispatcherWithoutCredentials(t *testing.T) {
	d := newDispatcher(&config.Config{})
	assert.NotNil(t, d.SMS)
	assert.NotNil(t, d.Email)
}
