package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"truthprevails/internal/domain/entity"
	"truthprevails/pkg/errors"
)

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) Name() string {
	return "firebase"
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (*entity.CreatedIdentity, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, errors.Conflict("Email already in use")
		}
		return nil, err
	}

	return &entity.CreatedIdentity{UID: user.UID}, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	identity := &entity.Identity{
		UID:      result.UID,
		Provider: result.Firebase.SignInProvider,
	}
	if email, ok := result.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := result.Claims["name"].(string); ok {
		identity.Name = name
	}

	return identity, nil
}

func (f *FirebaseAuthClient) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	params := (&auth.UserToUpdate{}).
		DisplayName(displayName)

	if _, err := f.client.UpdateUser(ctx, uid, params); err != nil {
		return fmt.Errorf("failed to update display name: %v", err)
	}

	return nil
}

func (f *FirebaseAuthClient) DeleteUser(ctx context.Context, uid string) error {
	err := f.client.DeleteUser(ctx, uid)
	if err != nil && !auth.IsUserNotFound(err) {
		return err
	}
	return nil
}
