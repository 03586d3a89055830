// Package snapshot defines the weekly activity data the achievement engine
// evaluates against, and the provider boundary it is fetched through. The
// engine treats snapshot contents as read-only.
package snapshot

import (
	"context"
	"fmt"
	"time"
)

// ActivityType classifies an assignment-like record.
type ActivityType string

const (
	TypeAssignment ActivityType = "assignment"
	TypeExam       ActivityType = "exam"
	TypeProject    ActivityType = "project"
	TypeReading    ActivityType = "reading"
	TypeOther      ActivityType = "other"
)

// ActivityStatus is the LMS-reported state of an activity.
type ActivityStatus string

const (
	StatusCompleted  ActivityStatus = "completed"
	StatusInProgress ActivityStatus = "in-progress"
	StatusAtRisk     ActivityStatus = "at-risk"
	StatusUpcoming   ActivityStatus = "upcoming"
)

// Activity is one assignment-like unit in a weekly snapshot. Score and
// PossiblePoints are pointers because ungraded work has neither; an activity
// counts toward grade averages only when both are set and PossiblePoints is
// positive.
type Activity struct {
	ID             string
	CourseID       string
	Title          string
	Type           ActivityType
	Score          *float64
	PossiblePoints *float64
	DueAt          *time.Time
	SubmittedAt    *time.Time
	Status         ActivityStatus
}

// Completed reports whether the activity is marked completed.
func (a Activity) Completed() bool {
	return a.Status == StatusCompleted
}

// Scored reports whether the activity participates in grade averages.
func (a Activity) Scored() bool {
	return a.Score != nil && a.PossiblePoints != nil && *a.PossiblePoints > 0
}

// Course is one course record associated with the user. Courses are not
// time-filtered; the provider returns all of them regardless of week.
type Course struct {
	ID              string
	Title           string
	Code            string
	ProgressPercent float64
	Grade           *float64
	Term            string
}

// Weekly bundles one week of activity data for a user. Previous, when set,
// holds the immediately preceding week and enables improvement and streak
// rules; when nil those rules report insufficient history.
type Weekly struct {
	UserID     string
	WeekStart  time.Time
	WeekEnd    time.Time
	Activities []Activity
	Courses    []Course
	Previous   *Weekly
}

// Provider fetches weekly snapshots from the LMS integration. It must return
// activities whose due date falls within [weekStart, weekEnd] and all courses
// currently associated with the user. The engine does not retry failures.
type Provider interface {
	WeeklySnapshot(ctx context.Context, userID string, weekStart, weekEnd time.Time) (*Weekly, error)
}

// FetchError wraps a snapshot provider failure. Evaluation for the request
// aborts; no partial results are produced.
type FetchError struct {
	UserID string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching weekly snapshot for user %s: %v", e.UserID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
