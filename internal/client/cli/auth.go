package cli

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/pocketfarm/pocketfarm-cli/internal/client/api"
	"github.com/pocketfarm/pocketfarm-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and tries to authenticate. On success the
// garden service is pointed at the new user, which kicks off a sync.
//
// The verification-required case is reported with the pending email; the
// password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		var ev *api.EmailNotVerifiedError
		if errors.As(err, &ev) {
			printlnFn("Please verify " + ev.Email + " before logging in")
			return err
		}
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn("Welcome back, " + user.Name + "!")
	a.garden.SetUser(ctx, user)
	return nil
}

// Signup prompts for the new account's fields and attempts to create it.
// Phone and location are optional; an empty latitude skips the location.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	phone, err := getSimpleText(a.reader, "Enter phone (optional)", os.Stdout)
	if err != nil {
		return err
	}

	location, err := a.promptCoordinates()
	if err != nil {
		printlnFn("Invalid coordinates:", err.Error())
		return err
	}

	req := api.SignupRequest{
		Name:     name,
		Email:    email,
		Password: string(password),
		Phone:    phone,
		Location: location,
	}

	user, err := a.session.Signup(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrEmailExists):
			printlnFn("This email is already registered, try logging in")
		default:
			var pe *api.PasswordPolicyError
			if errors.As(err, &pe) {
				printlnFn("Password does not meet the requirements:")
				for _, msg := range pe.PasswordErrors {
					printlnFn("  -", msg)
				}
			} else {
				printlnFn("Signup failed:", err.Error())
			}
		}
		return err
	}

	printlnFn("Welcome to PocketFarm, " + user.Name + "!")
	a.garden.SetUser(ctx, user)
	return nil
}

// promptCoordinates reads an optional latitude/longitude pair. An empty
// latitude means no location; a latitude without a longitude is an error.
func (a *App) promptCoordinates() (*api.Coordinates, error) {
	latText, err := getSimpleText(a.reader, "Enter latitude (optional)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if latText == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(latText, 64)
	if err != nil {
		return nil, err
	}

	lonText, err := getSimpleText(a.reader, "Enter longitude", os.Stdout)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(lonText, 64)
	if err != nil {
		return nil, err
	}

	return &api.Coordinates{Latitude: lat, Longitude: lon}, nil
}

// Logout clears the session and the garden view. No server call is made.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	a.garden.SetUser(ctx, nil)
	printlnFn("Logged out")
	return nil
}
