package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fittracker/internal/client/viewstate"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, an email and a password and creates the
// account. The user logs in separately afterwards.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	if err := a.auth.Register(ctx, username, email, string(password)); err != nil {
		return a.inline(err)
	}

	res := a.auth.RegisterResult.Get()
	if res == nil {
		return nil
	}
	a.printResult(res)
	if res.Success {
		fmt.Fprintln(a.out, "Now log in with 'login'.")
	}
	return nil
}

// Login prompts for credentials and, when the backend accepts them, shows
// the home screen.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		return a.inline(err)
	}

	res := a.auth.LoginResult.Get()
	if res == nil {
		return nil
	}
	a.printResult(res)
	if !res.Success || !a.isLoggedIn(ctx) {
		return nil
	}
	return a.Home(ctx)
}

// Logout forgets the signed-in user and drops the cached screens.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.goal.Reset()
	a.goal.Goal.Set(nil)
	a.history.Records.Set(nil)
	a.profile.Profile.Set(nil)
	a.profile.DismissPrompt()

	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) printResult(res *viewstate.AuthResult) {
	if res.Success {
		fmt.Fprintln(a.out, okStyle.Render(res.Message))
		return
	}
	fmt.Fprintln(a.out, errorStyle.Render(res.Message))
}

// inline prints a validation failure next to the input and swallows it.
// Other errors are returned to the REPL.
func (a *App) inline(err error) error {
	var verr *viewstate.ValidationError
	if errors.As(err, &verr) {
		a.invalid(verr.Message)
		return nil
	}
	return err
}

func (a *App) invalid(msg string) {
	fmt.Fprintln(a.out, errorStyle.Render("! "+msg))
}
