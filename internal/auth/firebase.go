package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
)

// New builds a Service backed by the Firebase Admin SDK for both identity
// verification and the user directory.
func New(ctx context.Context, app *firebase.App, secret string) (*Service, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth client: %w", err)
	}
	return NewService(secret, &firebaseIdentity{client: client}, &firebaseDirectory{client: client}), nil
}

type firebaseIdentity struct {
	client *fbauth.Client
}

func (f *firebaseIdentity) VerifyIDToken(ctx context.Context, idToken string) (*Claims, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	email, _ := token.Claims["email"].(string)
	return &Claims{UID: token.UID, Email: email}, nil
}

type firebaseDirectory struct {
	client *fbauth.Client
}

func (f *firebaseDirectory) GetUser(ctx context.Context, uid string) (*User, error) {
	record, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	return &User{
		UID:           record.UID,
		Email:         record.Email,
		DisplayName:   record.DisplayName,
		PhotoURL:      record.PhotoURL,
		EmailVerified: record.EmailVerified,
	}, nil
}

func (f *firebaseDirectory) UpdateUser(ctx context.Context, uid string, update UserUpdate) (*User, error) {
	params := &fbauth.UserToUpdate{}
	if update.Email != nil {
		params = params.Email(*update.Email)
	}
	if update.DisplayName != nil {
		params = params.DisplayName(*update.DisplayName)
	}
	if update.PhotoURL != nil {
		params = params.PhotoURL(*update.PhotoURL)
	}
	if update.Password != nil {
		params = params.Password(*update.Password)
	}
	if update.Disabled != nil {
		params = params.Disabled(*update.Disabled)
	}

	record, err := f.client.UpdateUser(ctx, uid, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	return &User{
		UID:           record.UID,
		Email:         record.Email,
		DisplayName:   record.DisplayName,
		PhotoURL:      record.PhotoURL,
		EmailVerified: record.EmailVerified,
	}, nil
}
