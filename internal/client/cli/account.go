package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/pocketfarm/pocketfarm-cli/internal/client/models"
	"github.com/pocketfarm/pocketfarm-cli/internal/common"
)

// DeleteAccount asks for confirmation and deletes the current account.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete your account and all its data? Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.session.DeleteAccount(ctx); err != nil {
		if errors.Is(err, common.ErrNoUserLoggedIn) {
			printlnFn("You need to log in first")
		} else {
			printlnFn("Could not delete account:", err.Error())
		}
		return err
	}

	a.garden.SetUser(ctx, nil)
	printlnFn("Account deleted")
	return nil
}

// UpdateProfile edits the current user's name and phone locally. Empty
// answers keep the current values. The merged record is re-persisted
// without a server call.
func (a *App) UpdateProfile(ctx context.Context) error {
	user := a.session.CurrentUser()
	if user == nil {
		printlnFn("You need to log in first")
		return common.ErrNoUserLoggedIn
	}

	name, err := getSimpleText(a.reader, "Name ["+user.Name+"]", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone ["+user.Phone+"]", os.Stdout)
	if err != nil {
		return err
	}

	var patch models.UserPatch
	if name != "" {
		patch.Name = &name
	}
	if phone != "" {
		patch.Phone = &phone
	}

	if err := a.session.UpdateUserProfile(ctx, patch); err != nil {
		printlnFn("Could not update profile:", err.Error())
		return err
	}

	printlnFn("Profile updated")
	return nil
}
