package service

import (
	"conference-api/errors"
	"conference-api/model"
	"context"
)

// register adds the conference to the profile and takes one seat.
func register(prof *model.Profile, conf *model.Conference) error {
	key := conf.WebsafeKey()
	if prof.IsAttending(key) {
		return errors.Conflict("You have already registered for this conference")
	}
	if conf.SeatsAvailable <= 0 {
		return errors.Conflict("There are no seats available.")
	}

	prof.ConferenceKeysToAttend = append(prof.ConferenceKeysToAttend, key)
	conf.SeatsAvailable--
	return nil
}

// unregister gives the seat back. It reports false when the profile was not
// registered.
func unregister(prof *model.Profile, conf *model.Conference) bool {
	key := conf.WebsafeKey()
	if !prof.IsAttending(key) {
		return false
	}

	prof.ConferenceKeysToAttend = model.RemoveKey(prof.ConferenceKeysToAttend, key)
	conf.SeatsAvailable++
	return true
}

func (s *Service) RegisterForConference(ctx context.Context, user User, websafeConferenceKey string) (model.BooleanMessage, error) {
	return s.conferenceRegistration(ctx, user, websafeConferenceKey, true)
}

func (s *Service) UnregisterFromConference(ctx context.Context, user User, websafeConferenceKey string) (model.BooleanMessage, error) {
	return s.conferenceRegistration(ctx, user, websafeConferenceKey, false)
}

// conferenceRegistration reads and writes the profile and the conference in
// one transaction so the seat count follows the attendee lists.
func (s *Service) conferenceRegistration(ctx context.Context, user User, websafeConferenceKey string, reg bool) (model.BooleanMessage, error) {
	if err := requireUser(user); err != nil {
		return model.BooleanMessage{}, err
	}
	confID, err := parseKey(websafeConferenceKey, "conference")
	if err != nil {
		return model.BooleanMessage{}, err
	}

	var retval bool
	err = s.store.Transact(ctx, func(ctx context.Context) error {
		prof, err := s.profileFromUser(ctx, user)
		if err != nil {
			return err
		}
		conf, err := s.store.GetConference(ctx, confID)
		if err != nil {
			return err
		}

		if reg {
			if err := register(prof, conf); err != nil {
				return err
			}
			retval = true
		} else {
			retval = unregister(prof, conf)
		}

		if err := s.store.SaveProfile(ctx, prof); err != nil {
			return err
		}
		return s.store.SaveConference(ctx, conf)
	})
	if err != nil {
		return model.BooleanMessage{}, err
	}

	s.logger.InfoContext(ctx, "conference registration", "user", user.ID, "conference", websafeConferenceKey, "register", reg, "changed", retval)
	return model.BooleanMessage{Data: retval}, nil
}
