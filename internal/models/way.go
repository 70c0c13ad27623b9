package models

import (
	"time"
)

// Field names of the way document. Other layers must use these constants
// instead of string literals so a typo cannot silently create a field no
// reference resolution will ever find.
const (
	WayFieldUuid                 = "uuid"
	WayFieldName                 = "name"
	WayFieldDayReportUuids       = "dayReportUuids"
	WayFieldOwnerUuid            = "ownerUuid"
	WayFieldMentorUuids          = "mentorUuids"
	WayFieldFormerMentorUuids    = "formerMentorUuids"
	WayFieldMentorRequestUuids   = "mentorRequestUuids"
	WayFieldIsCompleted          = "isCompleted"
	WayFieldLastUpdate           = "lastUpdate"
	WayFieldCreatedAt            = "createdAt"
	WayFieldFavoriteForUserUuids = "favoriteForUserUuids"
	WayFieldWayTags              = "wayTags"
	WayFieldJobTags              = "jobTags"
	WayFieldCopiedFromWayUuid    = "copiedFromWayUuid"
	WayFieldGoalDescription      = "goalDescription"
	WayFieldEstimationTime       = "estimationTime"
	WayFieldMetricsStringified   = "metricsStringified"
)

// WayDTO is the way document exactly as stored.
type WayDTO struct {
	Uuid                 string    `bson:"uuid"`
	Name                 string    `bson:"name"`
	DayReportUuids       []string  `bson:"dayReportUuids"`
	OwnerUuid            string    `bson:"ownerUuid"`
	MentorUuids          []string  `bson:"mentorUuids"`
	FormerMentorUuids    []string  `bson:"formerMentorUuids"`
	MentorRequestUuids   []string  `bson:"mentorRequestUuids"`
	IsCompleted          bool      `bson:"isCompleted"`
	LastUpdate           time.Time `bson:"lastUpdate"`
	CreatedAt            time.Time `bson:"createdAt"`
	FavoriteForUserUuids []string  `bson:"favoriteForUserUuids"`
	WayTags              []string  `bson:"wayTags"`
	JobTags              []string  `bson:"jobTags"`
	CopiedFromWayUuid    string    `bson:"copiedFromWayUuid"`
	GoalDescription      string    `bson:"goalDescription"`
	EstimationTime       int       `bson:"estimationTime"`
	MetricsStringified   []string  `bson:"metricsStringified"`
}

// Metric is one goal metric, stored as a JSON string inside the way
// document. DoneDate is nil while the metric is not completed.
type Metric struct {
	Uuid        string     `json:"uuid"`
	Description string     `json:"description"`
	IsDone      bool       `json:"isDone"`
	DoneDate    *time.Time `json:"doneDate,omitempty"`
}

// Way is the fully hydrated business object. It is a value assembled from a
// WayDTO plus resolved references; mutations go through WayPatch, never
// through field assignment on a shared Way.
type Way struct {
	Uuid                 string                  `json:"uuid"`
	Name                 string                  `json:"name"`
	Owner                *UserPreview            `json:"owner"`
	Mentors              map[string]*UserPreview `json:"mentors"`
	FormerMentors        map[string]*UserPreview `json:"formerMentors"`
	MentorRequests       []*UserPreview          `json:"mentorRequests"`
	DayReports           []*DayReport            `json:"dayReports"`
	IsCompleted          bool                    `json:"isCompleted"`
	LastUpdate           time.Time               `json:"lastUpdate"`
	CreatedAt            time.Time               `json:"createdAt"`
	FavoriteForUserUuids []string                `json:"favoriteForUserUuids"`
	WayTags              []string                `json:"wayTags"`
	JobTags              []string                `json:"jobTags"`
	CopiedFromWayUuid    string                  `json:"copiedFromWayUuid"`
	GoalDescription      string                  `json:"goalDescription"`
	EstimationTime       int                     `json:"estimationTime"`
	Metrics              []Metric                `json:"metrics"`
}

// IsAbandoned reports whether the way counts as abandoned: not completed
// and untouched for longer than threshold. Abandonment is derived, never
// stored.
func (w *Way) IsAbandoned(now time.Time, threshold time.Duration) bool {
	return !w.IsCompleted && now.Sub(w.LastUpdate) > threshold
}

// WayPreview is the lossy list-view projection: only first-degree
// references (owner, current mentors) are resolved.
type WayPreview struct {
	Uuid                 string         `json:"uuid"`
	Name                 string         `json:"name"`
	DayReportUuids       []string       `json:"dayReportUuids"`
	Owner                *UserPreview   `json:"owner"`
	Mentors              []*UserPreview `json:"mentors"`
	FormerMentorUuids    []string       `json:"formerMentorUuids"`
	MentorRequestUuids   []string       `json:"mentorRequestUuids"`
	IsCompleted          bool           `json:"isCompleted"`
	LastUpdate           time.Time      `json:"lastUpdate"`
	CreatedAt            time.Time      `json:"createdAt"`
	FavoriteForUserUuids []string       `json:"favoriteForUserUuids"`
	WayTags              []string       `json:"wayTags"`
	JobTags              []string       `json:"jobTags"`
	CopiedFromWayUuid    string         `json:"copiedFromWayUuid"`
	GoalDescription      string         `json:"goalDescription"`
	EstimationTime       int            `json:"estimationTime"`
	Metrics              []Metric       `json:"metrics"`
}

// WayPatch enumerates exactly the way fields eligible for partial update.
// Nil means "leave the stored value alone"; unknown fields cannot exist by
// construction. Uuid identifies the target and is always required.
type WayPatch struct {
	Uuid                 string
	Name                 *string
	DayReportUuids       *[]string
	MentorUuids          *[]string
	FormerMentorUuids    *[]string
	MentorRequestUuids   *[]string
	IsCompleted          *bool
	FavoriteForUserUuids *[]string
	WayTags              *[]string
	JobTags              *[]string
	GoalDescription      *string
	EstimationTime       *int
	Metrics              *[]Metric
}

// BaseWayData carries the optional caller-provided fields of a new way.
// Everything else gets its schema default.
type BaseWayData struct {
	Name              string
	WayTags           []string
	JobTags           []string
	CopiedFromWayUuid string
	GoalDescription   string
	EstimationTime    int
	Metrics           []Metric
}
