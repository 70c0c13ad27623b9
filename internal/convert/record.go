package convert

import (
	"github.com/Talgatov/MentorWay/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// RecordFromDTO assembles a leaf record business object.
func RecordFromDTO(dto *models.RecordDTO) *models.Record {
	return &models.Record{
		Uuid:        dto.Uuid,
		AuthorUuid:  dto.AuthorUuid,
		Description: dto.Description,
		IsDone:      dto.IsDone,
		Time:        dto.Time,
	}
}

// RecordToDTO maps a leaf record back to its stored form.
func RecordToDTO(record *models.Record) *models.RecordDTO {
	return &models.RecordDTO{
		Uuid:        record.Uuid,
		AuthorUuid:  record.AuthorUuid,
		Description: record.Description,
		IsDone:      record.IsDone,
		Time:        record.Time,
	}
}

// DocFromRecordDTO builds the full stored document for a new leaf record.
func DocFromRecordDTO(dto *models.RecordDTO) bson.M {
	return bson.M{
		models.RecordFieldUuid:        dto.Uuid,
		models.RecordFieldAuthorUuid:  dto.AuthorUuid,
		models.RecordFieldDescription: dto.Description,
		models.RecordFieldIsDone:      dto.IsDone,
		models.RecordFieldTime:        dto.Time,
	}
}

// RecordPatchToDoc builds the partial update document for a record patch.
func RecordPatchToDoc(patch models.RecordPatch) bson.M {
	doc := bson.M{}
	if patch.Description != nil {
		doc[models.RecordFieldDescription] = *patch.Description
	}
	if patch.IsDone != nil {
		doc[models.RecordFieldIsDone] = *patch.IsDone
	}
	if patch.Time != nil {
		doc[models.RecordFieldTime] = *patch.Time
	}
	return doc
}
