package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fittracker/internal/client/viewstate"
)

// Home shows the weekly goal card and runs the profile completion check.
func (a *App) Home(ctx context.Context) error {
	a.goal.Fetch(ctx)
	fmt.Fprintln(a.out, renderGoal(viewstate.DisplayGoal(a.goal.Goal.Get())))

	if a.profile.CheckCompletion(ctx) == viewstate.CompletionPrompt {
		a.profile.DismissPrompt()
	}
	return nil
}

// SetGoal asks for a new weekly calorie target and shows the refreshed card.
func (a *App) SetGoal(ctx context.Context) error {
	target, _, err := GetInt(a.reader, "Weekly calorie target (kcal)", a.out)
	if errors.Is(err, errNotNumber) {
		a.invalid("Please enter a whole number of calories")
		return nil
	}
	if err != nil {
		return err
	}

	a.goal.Reset()
	if err := a.goal.SetGoal(ctx, target); err != nil {
		return a.inline(err)
	}

	env := a.goal.Update.Get()
	if env == nil || !env.Success {
		return nil
	}
	fmt.Fprintln(a.out, okStyle.Render(env.MessageOr("Goal updated")))
	fmt.Fprintln(a.out, renderGoal(viewstate.DisplayGoal(a.goal.Goal.Get())))
	return nil
}
