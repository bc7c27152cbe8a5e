package service

import (
	"conference-api/errors"
	"conference-api/model"
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func isPasswordHashCorrect(dbHash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(dbHash), []byte(pass))
	return err == nil
}

// Signup registers a new account and its profile.
func (s *Service) Signup(ctx context.Context, form model.SignupForm) (model.ProfileForm, error) {
	form.Login = strings.TrimSpace(form.Login)
	form.Email = strings.TrimSpace(form.Email)
	if err := s.validateForm(form); err != nil {
		return model.ProfileForm{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.ProfileForm{}, fmt.Errorf("failed to hash password: %w", err)
	}

	displayName := strings.TrimSpace(form.DisplayName)
	if displayName == "" {
		displayName = form.Login
	}
	account := &model.UserData{
		Id:             primitive.NewObjectID(),
		Login:          form.Login,
		HashedPassword: string(hash),
		Email:          form.Email,
		DisplayName:    displayName,
	}
	if err := s.store.CreateUser(ctx, account); err != nil {
		return model.ProfileForm{}, err
	}
	s.logger.InfoContext(ctx, "user signed up", "login", account.Login)

	return s.GetProfile(ctx, UserFromAccount(*account))
}

// Authenticate checks credentials and returns the matching account.
func (s *Service) Authenticate(ctx context.Context, creds model.Credentials) (*model.UserData, error) {
	if strings.TrimSpace(creds.Login) == "" || creds.Password == "" {
		return nil, errors.BadRequest("login and password are required")
	}

	account, err := s.store.GetUserData(ctx, strings.TrimSpace(creds.Login))
	if errors.IsNotFound(err) {
		return nil, errors.Unauthorized("Invalid login or password")
	}
	if err != nil {
		return nil, err
	}

	if !isPasswordHashCorrect(account.HashedPassword, creds.Password) {
		return nil, errors.Unauthorized("Invalid login or password")
	}
	return account, nil
}

// UserFromAccount is the identity carried in the tokens issued for account.
func UserFromAccount(account model.UserData) User {
	return User{ID: account.Login, Email: account.Email, Name: account.DisplayName}
}
