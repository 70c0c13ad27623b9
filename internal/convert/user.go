package convert

import (
	"github.com/Talgatov/MentorWay/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// UserPreviewFromDTO projects a user document into its preview. Credentials
// never cross this boundary.
func UserPreviewFromDTO(dto *models.UserDTO) *models.UserPreview {
	return &models.UserPreview{
		Uuid:          dto.Uuid,
		Name:          dto.Name,
		Email:         dto.Email,
		Description:   dto.Description,
		CreatedAt:     dto.CreatedAt,
		OwnWays:       dto.OwnWays,
		MentoringWays: dto.MentoringWays,
		FavoriteWays:  dto.FavoriteWays,
	}
}

// DocFromUserDTO builds the full stored document for a new user.
func DocFromUserDTO(dto *models.UserDTO) bson.M {
	return bson.M{
		models.UserFieldUuid:           dto.Uuid,
		models.UserFieldName:           dto.Name,
		models.UserFieldEmail:          dto.Email,
		models.UserFieldDescription:    dto.Description,
		models.UserFieldCreatedAt:      dto.CreatedAt,
		models.UserFieldOwnWays:        dto.OwnWays,
		models.UserFieldMentoringWays:  dto.MentoringWays,
		models.UserFieldFavoriteWays:   dto.FavoriteWays,
		models.UserFieldHashedPassword: dto.HashedPassword,
	}
}

// UserPatchToDoc builds the partial update document for a user patch. Only
// set fields appear, so an untouched field can never be clobbered by a
// concurrent partial write.
func UserPatchToDoc(patch models.UserPatch) bson.M {
	doc := bson.M{}
	if patch.Name != nil {
		doc[models.UserFieldName] = *patch.Name
	}
	if patch.Email != nil {
		doc[models.UserFieldEmail] = *patch.Email
	}
	if patch.Description != nil {
		doc[models.UserFieldDescription] = *patch.Description
	}
	if patch.OwnWays != nil {
		doc[models.UserFieldOwnWays] = *patch.OwnWays
	}
	if patch.MentoringWays != nil {
		doc[models.UserFieldMentoringWays] = *patch.MentoringWays
	}
	if patch.FavoriteWays != nil {
		doc[models.UserFieldFavoriteWays] = *patch.FavoriteWays
	}
	return doc
}
