package models

import (
	"time"
)

// Field names of the user document.
const (
	UserFieldUuid           = "uuid"
	UserFieldName           = "name"
	UserFieldEmail          = "email"
	UserFieldDescription    = "description"
	UserFieldCreatedAt      = "createdAt"
	UserFieldOwnWays        = "ownWays"
	UserFieldMentoringWays  = "mentoringWays"
	UserFieldFavoriteWays   = "favoriteWays"
	UserFieldHashedPassword = "hashedPassword"
)

// UserDTO is the user document exactly as stored. The three way lists are
// denormalized mirrors of way-side references; every mutation touching one
// side must update the other side in the same batch.
type UserDTO struct {
	Uuid           string    `bson:"uuid"`
	Name           string    `bson:"name"`
	Email          string    `bson:"email"`
	Description    string    `bson:"description"`
	CreatedAt      time.Time `bson:"createdAt"`
	OwnWays        []string  `bson:"ownWays"`
	MentoringWays  []string  `bson:"mentoringWays"`
	FavoriteWays   []string  `bson:"favoriteWays"`
	HashedPassword string    `bson:"hashedPassword"`
}

// UserPreview is the user as seen from other aggregates. It never carries
// credentials.
type UserPreview struct {
	Uuid          string    `json:"uuid"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
	OwnWays       []string  `json:"ownWays"`
	MentoringWays []string  `json:"mentoringWays"`
	FavoriteWays  []string  `json:"favoriteWays"`
}

// UserPatch enumerates the user fields eligible for partial update.
type UserPatch struct {
	Uuid          string
	Name          *string
	Email         *string
	Description   *string
	OwnWays       *[]string
	MentoringWays *[]string
	FavoriteWays  *[]string
}
