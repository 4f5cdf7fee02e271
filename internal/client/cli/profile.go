package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/viewstate"
)

// Profile shows the signed-in user's profile.
func (a *App) Profile(ctx context.Context) error {
	a.profile.Profile.Set(nil)
	a.profile.Fetch(ctx)

	p := a.profile.Profile.Get()
	if p == nil {
		return nil
	}
	fmt.Fprintln(a.out, renderProfile(p))
	return nil
}

// EditProfile prompts for the editable fields. Blank answers leave a field
// unchanged.
func (a *App) EditProfile(ctx context.Context) error {
	var (
		u   models.ProfileUpdate
		err error
	)
	fmt.Fprintln(a.out, "Leave a field blank to keep its current value.")

	if u.Height, err = GetFloat(a.reader, "Height (cm)", a.out); err != nil {
		return a.numberInput(err, "Height must be a number")
	}
	if u.Weight, err = GetFloat(a.reader, "Weight (kg)", a.out); err != nil {
		return a.numberInput(err, "Weight must be a number")
	}
	if u.DateOfBirth, err = GetOptional(a.reader, "Date of birth (YYYY-MM-DD)", a.out); err != nil {
		return err
	}
	if u.Gender, err = GetOptional(a.reader, "Gender", a.out); err != nil {
		return err
	}
	if u.Phone, err = GetOptional(a.reader, "Phone", a.out); err != nil {
		return err
	}

	if u == (models.ProfileUpdate{}) {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	a.profile.UpdateResult.Set(nil)
	if err := a.profile.Update(ctx, u); err != nil {
		return a.inline(err)
	}

	env := a.profile.UpdateResult.Get()
	if env == nil {
		return nil
	}
	msg := viewstate.UpdateMessage(env)
	if !env.Success {
		fmt.Fprintln(a.out, errorStyle.Render(msg))
		return nil
	}
	fmt.Fprintln(a.out, okStyle.Render(msg))
	if p := a.profile.Profile.Get(); p != nil {
		fmt.Fprintln(a.out, renderProfile(p))
	}
	return nil
}
