package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/viewstate"
)

// AddRecord logs an activity. It is only offered once the user has a
// weekly goal with a positive target.
func (a *App) AddRecord(ctx context.Context) error {
	if !a.goal.HasGoal() {
		a.goal.Fetch(ctx)
	}
	if !a.goal.HasGoal() {
		a.invalid("Set a weekly goal with 'goal' before adding activities")
		return nil
	}

	fmt.Fprintln(a.out, renderActivityMenu(models.ActivityTypes()))
	choice, err := getSimpleText(a.reader, "Activity type (number or name)", a.out)
	if err != nil {
		return err
	}

	in := viewstate.ActivityInput{Type: pickActivity(choice)}

	if in.DurationMin, _, err = GetInt(a.reader, "Duration (minutes)", a.out); err != nil {
		return a.numberInput(err, "Duration must be a whole number of minutes")
	}
	if in.Calories, _, err = GetInt(a.reader, "Calories burned (kcal)", a.out); err != nil {
		return a.numberInput(err, "Calories must be a whole number")
	}
	if in.Latitude, err = GetFloat(a.reader, "Latitude (optional)", a.out); err != nil {
		return a.numberInput(err, "Latitude must be a number")
	}
	if in.Longitude, err = GetFloat(a.reader, "Longitude (optional)", a.out); err != nil {
		return a.numberInput(err, "Longitude must be a number")
	}
	if in.LocationName, err = GetOptional(a.reader, "Location name (optional)", a.out); err != nil {
		return err
	}

	a.record.Added.Set(false)
	if err := a.record.Submit(ctx, in); err != nil {
		return a.inline(err)
	}
	if !a.record.Added.Get() {
		return nil
	}

	a.goal.Fetch(ctx)
	fmt.Fprintln(a.out, renderGoal(viewstate.DisplayGoal(a.goal.Goal.Get())))
	return nil
}

// History lists the user's activities, optionally bounded by a start and
// an end date.
func (a *App) History(ctx context.Context, args []string) error {
	var filter models.HistoryFilter
	if len(args) > 0 {
		filter.StartDate = args[0]
	}
	if len(args) > 1 {
		filter.EndDate = args[1]
	}

	records, ok, err := a.fetchHistory(ctx, filter)
	if !ok {
		return err
	}
	fmt.Fprintln(a.out, renderHistory(records))
	return nil
}

// Week charts the calories burned per day over the last seven days.
func (a *App) Week(ctx context.Context) error {
	today := a.now()
	filter := models.HistoryFilter{
		StartDate: today.AddDate(0, 0, -(viewstate.WeekDays - 1)).Format(models.WireDateLayout),
		EndDate:   today.Format(models.WireDateLayout),
	}

	_, ok, err := a.fetchHistory(ctx, filter)
	if !ok {
		return err
	}
	fmt.Fprintln(a.out, renderWeek(a.history.Weekly(today)))
	return nil
}

// fetchHistory reports ok=false when nothing new was loaded. The reason
// has then already been shown.
func (a *App) fetchHistory(ctx context.Context, filter models.HistoryFilter) ([]models.ActivityRecord, bool, error) {
	a.history.Records.Set(nil)
	if err := a.history.Fetch(ctx, filter); err != nil {
		return nil, false, a.inline(err)
	}
	records := a.history.Records.Get()
	return records, records != nil, nil
}

func (a *App) numberInput(err error, msg string) error {
	if errors.Is(err, errNotNumber) {
		a.invalid(msg)
		return nil
	}
	return err
}

// pickActivity resolves a menu number, a wire value or a label. Anything
// else yields the empty type, which fails validation.
func pickActivity(choice string) models.ActivityType {
	choice = strings.TrimSpace(choice)
	types := models.ActivityTypes()
	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(types) {
			return types[n-1]
		}
		return ""
	}
	if t, ok := models.ParseActivityType(choice); ok {
		return t
	}
	return ""
}
