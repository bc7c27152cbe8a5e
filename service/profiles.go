package service

import (
	"conference-api/errors"
	"conference-api/model"
	"context"
	"strings"
)

// profileFromUser returns the caller's profile, creating it on first use.
func (s *Service) profileFromUser(ctx context.Context, user User) (*model.Profile, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}

	prof, err := s.store.GetProfile(ctx, user.ID)
	if err == nil {
		return prof, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	displayName := strings.TrimSpace(user.Name)
	if displayName == "" {
		displayName = user.ID
	}
	prof = &model.Profile{
		UserId:                 user.ID,
		DisplayName:            displayName,
		MainEmail:              user.Email,
		TeeShirtSize:           model.TeeShirtNotSpecified,
		ConferenceKeysToAttend: []string{},
		SessionWishlist:        []string{},
	}
	if err := s.store.SaveProfile(ctx, prof); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "profile created", "user", user.ID)
	return prof, nil
}

func (s *Service) GetProfile(ctx context.Context, user User) (model.ProfileForm, error) {
	prof, err := s.profileFromUser(ctx, user)
	if err != nil {
		return model.ProfileForm{}, err
	}
	return profileToForm(*prof), nil
}

// SaveProfile updates the user-editable fields that are set in form.
func (s *Service) SaveProfile(ctx context.Context, user User, form model.ProfileMiniForm) (model.ProfileForm, error) {
	if err := s.validateForm(form); err != nil {
		return model.ProfileForm{}, err
	}

	prof, err := s.profileFromUser(ctx, user)
	if err != nil {
		return model.ProfileForm{}, err
	}

	if name := strings.TrimSpace(form.DisplayName); name != "" {
		prof.DisplayName = name
	}
	if form.TeeShirtSize != "" {
		prof.TeeShirtSize = form.TeeShirtSize
	}
	if err := s.store.SaveProfile(ctx, prof); err != nil {
		return model.ProfileForm{}, err
	}
	return profileToForm(*prof), nil
}

// displayNames maps organizer ids to their profile display names.
func (s *Service) displayNames(ctx context.Context, confs []model.Conference) (map[string]string, error) {
	seen := map[string]bool{}
	ids := []string{}
	for _, conf := range confs {
		if !seen[conf.OrganizerUserId] {
			seen[conf.OrganizerUserId] = true
			ids = append(ids, conf.OrganizerUserId)
		}
	}

	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	profiles, err := s.store.GetProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		names[p.UserId] = p.DisplayName
	}
	return names, nil
}
