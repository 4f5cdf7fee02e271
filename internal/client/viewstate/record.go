package viewstate

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/repositories"
	"github.com/dmitrijs2005/fittracker/internal/logging"
)

// ActivityInput is what the add record screen collects. A zero Timestamp
// means now.
type ActivityInput struct {
	Type         models.ActivityType `validate:"activity_type"`
	DurationMin  int                 `validate:"gt=0"`
	Calories     int                 `validate:"gt=0"`
	Timestamp    time.Time
	Latitude     *float64 `validate:"omitempty,latitude"`
	Longitude    *float64 `validate:"omitempty,longitude"`
	LocationName *string
}

var recordMessages = map[string]string{
	"Type":        "Please select an activity type",
	"DurationMin": "Duration must be greater than zero",
	"Calories":    "Calories must be greater than zero",
	"Latitude":    "Latitude must be between -90 and 90",
	"Longitude":   "Longitude must be between -180 and 180",
}

// RecordHolder backs the add record screen.
type RecordHolder struct {
	lifecycle

	repo    repositories.ActivityRepository
	session Session
	logger  logging.Logger
	now     func() time.Time

	Added  Observable[bool]
	Errors Observable[string]

	submit stream
}

func NewRecordHolder(repo repositories.ActivityRepository, s Session, logger logging.Logger) *RecordHolder {
	return &RecordHolder{
		lifecycle: newLifecycle(),
		repo:      repo,
		session:   s,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates in and sends it. Invalid input and a missing session are
// returned as *ValidationError and nothing is sent.
func (h *RecordHolder) Submit(ctx context.Context, in ActivityInput) error {
	if err := check(in, recordMessages); err != nil {
		return err
	}
	userID, err := currentUser(ctx, h.session)
	if err != nil {
		return err
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = h.now()
	}
	record := models.ActivityRecord{
		UserID:       userID,
		Type:         in.Type,
		DurationMin:  in.DurationMin,
		Calories:     in.Calories,
		Timestamp:    models.FormatTimestamp(ts),
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		LocationName: in.LocationName,
	}

	ticket := h.submit.begin()
	ctx, done := h.bind(ctx)
	defer done()

	env, err := h.repo.Add(ctx, record)
	if !h.submit.accept(ticket, &h.lifecycle) {
		return nil
	}
	if err != nil {
		h.logger.Warn(ctx, "submit activity", "user_id", userID, "error", err)
		h.Errors.Set(UserMessage(err, MsgRecordFail))
		h.Added.Set(false)
		return nil
	}
	if !env.Success {
		h.Errors.Set(env.Text(MsgRecordFail))
		h.Added.Set(false)
		return nil
	}

	h.Added.Set(true)
	return nil
}
