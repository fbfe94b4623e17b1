package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cacutler/recipearchive/internal/client/models"
	"github.com/cacutler/recipearchive/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup collects account details, creates the account and signs in with
// the new credentials.
func (a *App) Signup(ctx context.Context) error {
	var req models.SignupRequest
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &req.FirstName},
		{"Last name", &req.LastName},
		{"Username", &req.Username},
		{"Email", &req.Email},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword("Password (at least 8 characters)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	u, err := a.authService.Signup(ctx, req)
	if err != nil {
		return err
	}
	if u != nil {
		fmt.Fprintf(a.out, "Account %s created\n", u.Username)
	}

	if _, err := a.authService.Login(ctx, req.Username, req.Password); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", req.Username)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, username, string(password))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", displayName(*u))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.recipes.SelectRecipe(nil)
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// WhoAmI prints the signed-in user and when the session expires.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.auth.Get()
	if !st.IsAuthenticated || st.User == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	printUser(a.out, *st.User)

	claims, err := a.authService.Session(ctx)
	if err != nil {
		a.logger.Debug(ctx, "session claims unavailable", "error", err)
		return nil
	}
	if !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Session expires %s\n", claims.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}

// Profile edits the signed-in user's name and email. Empty answers keep
// the current value.
func (a *App) Profile(ctx context.Context) error {
	st := a.auth.Get()
	if !st.IsAuthenticated || st.User == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	cur := *st.User
	fmt.Fprintln(a.out, "Press Enter to keep the current value.")

	var upd models.UserUpdate
	var err error
	if upd.FirstName, err = GetOptionalText(a.reader, fmt.Sprintf("First name [%s]", cur.FirstName), a.out); err != nil {
		return err
	}
	if upd.LastName, err = GetOptionalText(a.reader, fmt.Sprintf("Last name [%s]", cur.LastName), a.out); err != nil {
		return err
	}
	if upd.Email, err = GetOptionalText(a.reader, fmt.Sprintf("Email [%s]", cur.Email), a.out); err != nil {
		return err
	}

	if upd.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing changed")
		return nil
	}

	u, err := a.authService.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated")
	printUser(a.out, *u)
	return nil
}

// DeleteAccount asks for confirmation, deletes the account and signs out.
func (a *App) DeleteAccount(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	answer, err := getSimpleText(a.reader, "Delete your account permanently? Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.authService.DeleteAccount(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}
