package service

import (
	"conference-api/errors"
	"conference-api/model"
	"context"
)

func addToWishlist(prof *model.Profile, sessionKey string) error {
	if prof.HasWishlisted(sessionKey) {
		return errors.Conflict("Session already in wishlist.")
	}
	prof.SessionWishlist = append(prof.SessionWishlist, sessionKey)
	return nil
}

func removeFromWishlist(prof *model.Profile, sessionKey string) error {
	if !prof.HasWishlisted(sessionKey) {
		return errors.Conflict("Session not in wishlist.")
	}
	prof.SessionWishlist = model.RemoveKey(prof.SessionWishlist, sessionKey)
	return nil
}

func (s *Service) AddSessionToWishlist(ctx context.Context, user User, websafeSessionKey string) (model.BooleanMessage, error) {
	return s.wishlist(ctx, user, websafeSessionKey, true)
}

func (s *Service) DeleteSessionFromWishlist(ctx context.Context, user User, websafeSessionKey string) (model.BooleanMessage, error) {
	return s.wishlist(ctx, user, websafeSessionKey, false)
}

func (s *Service) wishlist(ctx context.Context, user User, websafeSessionKey string, add bool) (model.BooleanMessage, error) {
	if err := requireUser(user); err != nil {
		return model.BooleanMessage{}, err
	}
	sessionID, err := parseKey(websafeSessionKey, "session")
	if err != nil {
		return model.BooleanMessage{}, err
	}
	key := sessionID.Hex()

	err = s.store.Transact(ctx, func(ctx context.Context) error {
		prof, err := s.profileFromUser(ctx, user)
		if err != nil {
			return err
		}

		if add {
			if _, err := s.store.GetSession(ctx, sessionID); err != nil {
				if errors.IsNotFound(err) {
					return errors.NotFound("No session found.")
				}
				return err
			}
			if err := addToWishlist(prof, key); err != nil {
				return err
			}
		} else if err := removeFromWishlist(prof, key); err != nil {
			return err
		}

		return s.store.SaveProfile(ctx, prof)
	})
	if err != nil {
		return model.BooleanMessage{}, err
	}
	return model.BooleanMessage{Data: true}, nil
}

func (s *Service) SessionsInWishlist(ctx context.Context, user User) (model.SessionForms, error) {
	if err := requireUser(user); err != nil {
		return model.SessionForms{}, err
	}
	prof, err := s.profileFromUser(ctx, user)
	if err != nil {
		return model.SessionForms{}, err
	}

	sessions, err := s.store.GetSessions(ctx, parseKeys(prof.SessionWishlist))
	if err != nil {
		return model.SessionForms{}, err
	}
	return s.sessionForms(ctx, sessions)
}
