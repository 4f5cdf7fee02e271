package viewstate

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/repositories"
	"github.com/dmitrijs2005/fittracker/internal/logging"
)

// WeekDays is the length of the trailing calorie window.
const WeekDays = 7

// DayTotal is the calories burned on one local calendar day.
type DayTotal struct {
	Date     time.Time
	Calories int
}

type historyInput struct {
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
}

var historyMessages = map[string]string{
	"StartDate": "Start date must be YYYY-MM-DD",
	"EndDate":   "End date must be YYYY-MM-DD",
}

// HistoryHolder backs the history screen and the weekly chart.
type HistoryHolder struct {
	lifecycle

	repo    repositories.ActivityRepository
	session Session
	logger  logging.Logger

	Records Observable[[]models.ActivityRecord]
	Errors  Observable[string]

	fetch stream
}

func NewHistoryHolder(repo repositories.ActivityRepository, s Session, logger logging.Logger) *HistoryHolder {
	return &HistoryHolder{
		lifecycle: newLifecycle(),
		repo:      repo,
		session:   s,
		logger:    logger,
	}
}

// Fetch replaces Records with the user's activities inside filter.
func (h *HistoryHolder) Fetch(ctx context.Context, filter models.HistoryFilter) error {
	if err := check(historyInput(filter), historyMessages); err != nil {
		return err
	}
	userID, err := currentUser(ctx, h.session)
	if err != nil {
		return err
	}

	ticket := h.fetch.begin()
	ctx, done := h.bind(ctx)
	defer done()

	env, err := h.repo.History(ctx, userID, filter)
	if !h.fetch.accept(ticket, &h.lifecycle) {
		return nil
	}
	if err != nil {
		h.logger.Warn(ctx, "fetch history", "user_id", userID, "error", err)
		h.Errors.Set(UserMessage(err, MsgHistoryFail))
		return nil
	}
	if !env.Success {
		h.Errors.Set(env.MessageOr(MsgHistoryFail))
		return nil
	}

	var records []models.ActivityRecord
	if env.Data != nil {
		records = env.Data.Activities
	}
	if records == nil {
		records = []models.ActivityRecord{}
	}
	h.Records.Set(records)
	return nil
}

// Weekly buckets the current records into the seven days ending on now's
// local date.
func (h *HistoryHolder) Weekly(now time.Time) []DayTotal {
	return BucketByDay(h.Records.Get(), now)
}

// BucketByDay sums calories per calendar day for the window of WeekDays
// days ending on today's date, oldest first. Days without records are zero.
// Each bucket's Date is noon of that day in today's location. Records are
// matched by the date written in their timestamp; records outside the
// window or with an unreadable timestamp are ignored.
func BucketByDay(records []models.ActivityRecord, today time.Time) []DayTotal {
	y, m, d := today.Date()
	loc := today.Location()

	out := make([]DayTotal, WeekDays)
	index := make(map[civilDate]int, WeekDays)
	for i := range out {
		day := time.Date(y, m, d-(WeekDays-1)+i, 12, 0, 0, 0, loc)
		out[i].Date = day
		index[dateOf(day)] = i
	}

	for _, r := range records {
		day, ok := recordDate(r)
		if !ok {
			continue
		}
		i, ok := index[day]
		if !ok {
			continue
		}
		out[i].Calories += r.Calories
	}
	return out
}

// civilDate is a calendar day independent of clock time and zone offsets.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{year: y, month: m, day: d}
}

// recordDate reads the calendar date written in the record's timestamp.
// Parsing without a zone keeps dates that have no local midnight intact.
func recordDate(r models.ActivityRecord) (civilDate, bool) {
	for _, layout := range []string{models.WireTimeLayout, models.WireDateLayout} {
		if t, err := time.Parse(layout, r.Timestamp); err == nil {
			return dateOf(t), true
		}
	}
	return civilDate{}, false
}
