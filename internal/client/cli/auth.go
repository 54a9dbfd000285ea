package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/shopcart/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errEmptyUsername = errors.New("username must not be empty")

// readCredentials prompts for a username and a password. The caller owns the
// returned form and must Clear it.
func (a *App) readCredentials() (*session.Credentials, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return nil, err
	}
	if userName == "" {
		printlnFn("Username must not be empty")
		return nil, errEmptyUsername
	}

	password, err := getPassword(a.out)
	if err != nil {
		return nil, err
	}
	return &session.Credentials{Username: userName, Password: password}, nil
}

// Register creates an account. The session manager reports the outcome.
func (a *App) Register(ctx context.Context) error {
	creds, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer creds.Clear()

	return a.session.Register(ctx, creds)
}

// Login authenticates and, on success, shows the freshly loaded catalog.
func (a *App) Login(ctx context.Context) error {
	creds, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer creds.Clear()

	if err := a.session.Login(ctx, creds); err != nil {
		return err
	}
	return a.Items(ctx)
}

// Logout forgets the local session.
func (a *App) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}
