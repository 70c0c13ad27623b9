package models

// Field names of the leaf record documents. All four record collections
// share one shape.
const (
	RecordFieldUuid        = "uuid"
	RecordFieldAuthorUuid  = "authorUuid"
	RecordFieldDescription = "description"
	RecordFieldIsDone      = "isDone"
	RecordFieldTime        = "time"
)

// RecordKind names one of the four leaf record collections a day report
// points at.
type RecordKind string

const (
	RecordJobDone       RecordKind = "jobDone"
	RecordPlan          RecordKind = "planForNextPeriod"
	RecordProblem       RecordKind = "problemForCurrentPeriod"
	RecordMentorComment RecordKind = "mentorComment"
)

// RecordDTO is a leaf record document exactly as stored. Time is minutes
// spent and is meaningful for jobs done only; it stays zero elsewhere.
type RecordDTO struct {
	Uuid        string `bson:"uuid"`
	AuthorUuid  string `bson:"authorUuid"`
	Description string `bson:"description"`
	IsDone      bool   `bson:"isDone"`
	Time        int    `bson:"time"`
}

// Record is the business form of a leaf record.
type Record struct {
	Uuid        string `json:"uuid"`
	AuthorUuid  string `json:"authorUuid"`
	Description string `json:"description"`
	IsDone      bool   `json:"isDone"`
	Time        int    `json:"time"`
}

// RecordPatch enumerates the record fields eligible for partial update.
type RecordPatch struct {
	Uuid        string
	Description *string
	IsDone      *bool
	Time        *int
}
