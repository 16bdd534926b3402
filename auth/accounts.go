package auth

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/openbook/chatseed/fixture"
)

// Accounts manages Firebase Authentication users.
type Accounts struct {
	client *auth.Client
}

func NewAccounts(client *auth.Client) *Accounts {
	return &Accounts{client: client}
}

// Create registers account and returns the uid issued by Firebase.
func (a *Accounts) Create(ctx context.Context, account fixture.Account) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(account.Email).
		Password(account.Password).
		DisplayName(account.DisplayName)
	if account.PhotoURL != "" {
		params = params.PhotoURL(account.PhotoURL)
	}
	user, err := a.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}
	return user.UID, nil
}

func (a *Accounts) Rename(ctx context.Context, uid, displayName string) error {
	_, err := a.client.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).DisplayName(displayName))
	return err
}

func (a *Accounts) CustomToken(ctx context.Context, uid string) (string, error) {
	return a.client.CustomToken(ctx, uid)
}

// IsDuplicate reports whether err means the account already exists.
func IsDuplicate(err error) bool {
	return auth.IsEmailAlreadyExists(err) || auth.IsUIDAlreadyExists(err)
}
