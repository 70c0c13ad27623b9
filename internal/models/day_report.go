package models

import (
	"time"
)

// Field names of the day report document.
const (
	DayReportFieldUuid                         = "uuid"
	DayReportFieldCreatedAt                    = "createdAt"
	DayReportFieldIsDayOff                     = "isDayOff"
	DayReportFieldJobDoneUuids                 = "jobDoneUuids"
	DayReportFieldPlanForNextPeriodUuids       = "planForNextPeriodUuids"
	DayReportFieldProblemForCurrentPeriodUuids = "problemForCurrentPeriodUuids"
	DayReportFieldMentorCommentUuids           = "mentorCommentUuids"
	DayReportFieldStudentComments              = "studentComments"
	DayReportFieldLearnedForToday              = "learnedForToday"
)

// DayReportDTO is the day report document exactly as stored. The four uuid
// lists point at leaf records in their own collections; each leaf belongs
// to exactly one report.
type DayReportDTO struct {
	Uuid                         string    `bson:"uuid"`
	CreatedAt                    time.Time `bson:"createdAt"`
	IsDayOff                     bool      `bson:"isDayOff"`
	JobDoneUuids                 []string  `bson:"jobDoneUuids"`
	PlanForNextPeriodUuids       []string  `bson:"planForNextPeriodUuids"`
	ProblemForCurrentPeriodUuids []string  `bson:"problemForCurrentPeriodUuids"`
	MentorCommentUuids           []string  `bson:"mentorCommentUuids"`
	StudentComments              []string  `bson:"studentComments"`
	LearnedForToday              []string  `bson:"learnedForToday"`
}

// DayReport is the hydrated report with all four leaf lists resolved.
type DayReport struct {
	Uuid                     string    `json:"uuid"`
	CreatedAt                time.Time `json:"createdAt"`
	IsDayOff                 bool      `json:"isDayOff"`
	JobsDone                 []*Record `json:"jobsDone"`
	PlansForNextPeriod       []*Record `json:"plansForNextPeriod"`
	ProblemsForCurrentPeriod []*Record `json:"problemsForCurrentPeriod"`
	MentorComments           []*Record `json:"mentorComments"`
	StudentComments          []string  `json:"studentComments"`
	LearnedForToday          []string  `json:"learnedForToday"`
}

// DayReportPatch enumerates the report fields eligible for partial update.
type DayReportPatch struct {
	Uuid                         string
	IsDayOff                     *bool
	JobDoneUuids                 *[]string
	PlanForNextPeriodUuids       *[]string
	ProblemForCurrentPeriodUuids *[]string
	MentorCommentUuids           *[]string
	StudentComments              *[]string
	LearnedForToday              *[]string
}
