package models

import (
	"strings"
	"time"
)

// WireTimeLayout is the timestamp format used by the backend for
// activity_date.
const WireTimeLayout = "2006-01-02 15:04:05"

// WireDateLayout is the date format used by history filters.
const WireDateLayout = "2006-01-02"

const (
	displayDateLayout = "02-January-2006"
	displayTimeLayout = "15:04"
)

// ActivityType is an exercise category. Its value is the wire
// representation; Label gives the human readable name.
type ActivityType string

const (
	ActivityWalking       ActivityType = "walking"
	ActivityRunning       ActivityType = "running"
	ActivitySwimming      ActivityType = "swimming"
	ActivityJumpingRope   ActivityType = "jumping_rope"
	ActivityCycling       ActivityType = "cycling"
	ActivityWeightLifting ActivityType = "weight_lifting"
)

var activityLabels = map[ActivityType]string{
	ActivityWalking:       "Walking",
	ActivityRunning:       "Running",
	ActivitySwimming:      "Swimming",
	ActivityJumpingRope:   "Jumping Rope",
	ActivityCycling:       "Cycling",
	ActivityWeightLifting: "Weight Lifting",
}

// ActivityTypes lists the known categories in menu order.
func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityWalking,
		ActivityRunning,
		ActivitySwimming,
		ActivityJumpingRope,
		ActivityCycling,
		ActivityWeightLifting,
	}
}

func (t ActivityType) Wire() string {
	return string(t)
}

// Label returns the display name. Types unknown to this build are shown as
// received.
func (t ActivityType) Label() string {
	if l, ok := activityLabels[t]; ok {
		return l
	}
	return string(t)
}

// Known reports whether t is one of the built-in categories.
func (t ActivityType) Known() bool {
	_, ok := activityLabels[t]
	return ok
}

// ParseActivityType accepts either the wire value or the label, ignoring
// case and surrounding spaces.
func ParseActivityType(s string) (ActivityType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range ActivityTypes() {
		if strings.EqualFold(s, t.Wire()) || strings.EqualFold(s, t.Label()) {
			return t, true
		}
	}
	return "", false
}

// ActivityRecord is one logged exercise event.
type ActivityRecord struct {
	ID           *int         `json:"id,omitempty"`
	UserID       int          `json:"user_id"`
	Type         ActivityType `json:"activity_type"`
	DurationMin  int          `json:"duration"`
	Calories     int          `json:"calories_burned"`
	Timestamp    string       `json:"activity_date"`
	Latitude     *float64     `json:"latitude,omitempty"`
	Longitude    *float64     `json:"longitude,omitempty"`
	LocationName *string      `json:"location_name,omitempty"`
}

// Time parses Timestamp in the local time zone. A bare date is accepted.
func (r ActivityRecord) Time() (time.Time, error) {
	t, err := time.ParseInLocation(WireTimeLayout, r.Timestamp, time.Local)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation(WireDateLayout, r.Timestamp, time.Local)
}

// DisplayDate renders the record date as 02-January-2006, or the raw
// timestamp when it cannot be parsed.
func (r ActivityRecord) DisplayDate() string {
	t, err := r.Time()
	if err != nil {
		return r.Timestamp
	}
	return t.Format(displayDateLayout)
}

// DisplayTime renders the record time as 15:04, or "" when unparseable.
func (r ActivityRecord) DisplayTime() string {
	t, err := time.ParseInLocation(WireTimeLayout, r.Timestamp, time.Local)
	if err != nil {
		return ""
	}
	return t.Format(displayTimeLayout)
}

// FormatTimestamp renders t in the wire layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(WireTimeLayout)
}

// ActivityCreated is the payload of a successful submission.
type ActivityCreated struct {
	ActivityID *int            `json:"activity_id"`
	Activity   *ActivityRecord `json:"activity"`
}

// ActivityList is the payload of a history fetch.
type ActivityList struct {
	Count      int              `json:"count"`
	Activities []ActivityRecord `json:"activities"`
}

// HistoryFilter bounds a history fetch by inclusive dates (YYYY-MM-DD).
// Empty fields are not sent.
type HistoryFilter struct {
	StartDate string
	EndDate   string
}
