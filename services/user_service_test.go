package services

import (
	"context"
	"testing"

	"github.com/hintermeier-t/projet-11-amelioration/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateEmail(t *testing.T) {
	db := setupTestDB(t)
	u := createActiveUser(t, db, "alice", "alice@example.com", "s3cretpass")
	createActiveUser(t, db, "bob", "bob@example.com", "s3cretpass")
	svc := NewUserService(db)
	ctx := context.Background()

	require.NoError(t, svc.UpdateEmail(ctx, u.ID, " New@Example.com "))
	var stored models.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.Equal(t, "new@example.com", stored.Email)

	assert.ErrorIs(t, svc.UpdateEmail(ctx, u.ID, "bob@example.com"), ErrEmailTaken)
	assert.ErrorIs(t, svc.UpdateEmail(ctx, 999, "x@example.com"), ErrNotFound)
}

func TestFindActiveUser(t *testing.T) {
	db := setupTestDB(t)
	active := createActiveUser(t, db, "alice", "alice@example.com", "s3cretpass")
	inactive := models.User{Username: "bob", Email: "bob@example.com", Password: "x"}
	require.NoError(t, db.Create(&inactive).Error)
	svc := NewUserService(db)

	user, err := svc.FindActiveUser(context.Background(), active.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.FindActiveUser(context.Background(), inactive.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEndSessions(t *testing.T) {
	db := setupTestDB(t)
	u := createActiveUser(t, db, "alice", "alice@example.com", "s3cretpass")
	svc := NewUserService(db)
	ctx := context.Background()

	require.NoError(t, svc.EndSessions(ctx, u.ID))
	require.NoError(t, svc.EndSessions(ctx, u.ID))

	user, err := svc.FindActiveUser(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, user.SessionVersion)

	assert.ErrorIs(t, svc.EndSessions(ctx, 999), ErrNotFound)
}
