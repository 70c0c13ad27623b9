package services

import (
	"context"
	"testing"

	"github.com/Talgatov/MentorWay/internal/models"
	"github.com/Talgatov/MentorWay/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser_AndAuthenticate(t *testing.T) {
	store, _, _, userService := newTestServices()

	user, err := userService.RegisterUser(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Empty(t, user.OwnWays)
	assert.Equal(t, 1, store.Count(storage.UsersCollection))

	// The stored document never keeps the plain password.
	doc, err := store.GetDocument(context.Background(), storage.UsersCollection, user.Uuid)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", doc[models.UserFieldHashedPassword])

	authenticated, err := userService.AuthenticateUser(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.Uuid, authenticated.Uuid)

	_, err = userService.AuthenticateUser(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
}

func TestRegisterUser_DuplicateEmailRejected(t *testing.T) {
	_, _, _, userService := newTestServices()

	_, err := userService.RegisterUser(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = userService.RegisterUser(context.Background(), "Other Alice", "alice@example.com", "different")
	require.Error(t, err)
}

func TestCreateUser_EmptyWayLists(t *testing.T) {
	store, _, _, userService := newTestServices()

	user, err := userService.CreateUser(context.Background(), "Alice", "alice@example.com", "mentor")
	require.NoError(t, err)
	assert.Empty(t, user.OwnWays)
	assert.Empty(t, user.MentoringWays)
	assert.Empty(t, user.FavoriteWays)

	doc, err := store.GetDocument(context.Background(), storage.UsersCollection, user.Uuid)
	require.NoError(t, err)
	assert.Equal(t, "mentor", doc[models.UserFieldDescription])
}

func TestGetUsersByUuids_MissingUuidsAbsent(t *testing.T) {
	store, _, _, userService := newTestServices()
	seedUser(store, "u1", "Alice")
	seedUser(store, "u2", "Bob")

	users, err := userService.GetUsersByUuids(context.Background(), []string{"u1", "ghost", "u2"})
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestUpdateUser_PartialUpdate(t *testing.T) {
	store, _, _, userService := newTestServices()
	seedUser(store, "u1", "Alice")

	description := "Mentor for Go beginners"
	err := userService.UpdateUser(context.Background(), models.UserPatch{
		Uuid:        "u1",
		Description: &description,
	})
	require.NoError(t, err)

	doc, err := store.GetDocument(context.Background(), storage.UsersCollection, "u1")
	require.NoError(t, err)
	assert.Equal(t, description, doc[models.UserFieldDescription])
	assert.Equal(t, "Alice", doc[models.UserFieldName])
}
