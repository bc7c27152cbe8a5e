package service

import (
	"conference-api/errors"
	"conference-api/model"
	"conference-api/query"
	"conference-api/tasks"
	"context"
	"fmt"
	"strings"
)

func (s *Service) CreateConference(ctx context.Context, user User, form model.ConferenceForm) (model.ConferenceForm, error) {
	if err := requireUser(user); err != nil {
		return model.ConferenceForm{}, err
	}
	if err := s.validateForm(form); err != nil {
		return model.ConferenceForm{}, err
	}

	conf, err := conferenceFromForm(form, user.ID)
	if err != nil {
		return model.ConferenceForm{}, err
	}

	prof, err := s.profileFromUser(ctx, user)
	if err != nil {
		return model.ConferenceForm{}, err
	}
	if err := s.store.InsertConference(ctx, conf); err != nil {
		return model.ConferenceForm{}, err
	}

	s.logger.InfoContext(ctx, "conference created", "conference", conf.WebsafeKey(), "organizer", user.ID)

	if email := firstNonEmpty(prof.MainEmail, user.Email); email != "" {
		s.enqueue(ctx, tasks.SendConfirmationEmail, map[string]string{
			"email":          email,
			"conferenceInfo": conferenceInfo(*conf),
		})
	}

	return conferenceToForm(*conf, prof.DisplayName), nil
}

// UpdateConference copies the fields present in form onto the conference.
// Only the organizer may update it.
func (s *Service) UpdateConference(ctx context.Context, user User, websafeConferenceKey string, form model.ConferenceForm) (model.ConferenceForm, error) {
	if err := requireUser(user); err != nil {
		return model.ConferenceForm{}, err
	}
	if err := s.validateForm(form); err != nil {
		return model.ConferenceForm{}, err
	}
	confID, err := parseKey(websafeConferenceKey, "conference")
	if err != nil {
		return model.ConferenceForm{}, err
	}

	var out model.ConferenceForm
	err = s.store.Transact(ctx, func(ctx context.Context) error {
		conf, err := s.store.GetConference(ctx, confID)
		if err != nil {
			return err
		}
		if conf.OrganizerUserId != user.ID {
			return errors.Forbidden("Only the owner can update the conference.")
		}

		if err := applyConferenceForm(conf, form); err != nil {
			return err
		}
		if err := s.store.SaveConference(ctx, conf); err != nil {
			return err
		}

		prof, err := s.profileFromUser(ctx, user)
		if err != nil {
			return err
		}
		out = conferenceToForm(*conf, prof.DisplayName)
		return nil
	})
	if err != nil {
		return model.ConferenceForm{}, err
	}
	return out, nil
}

func (s *Service) GetConference(ctx context.Context, websafeConferenceKey string) (model.ConferenceForm, error) {
	confID, err := parseKey(websafeConferenceKey, "conference")
	if err != nil {
		return model.ConferenceForm{}, err
	}
	conf, err := s.store.GetConference(ctx, confID)
	if err != nil {
		return model.ConferenceForm{}, err
	}

	names, err := s.displayNames(ctx, []model.Conference{*conf})
	if err != nil {
		return model.ConferenceForm{}, err
	}
	return conferenceToForm(*conf, names[conf.OrganizerUserId]), nil
}

func (s *Service) ConferencesCreated(ctx context.Context, user User) (model.ConferenceForms, error) {
	prof, err := s.profileFromUser(ctx, user)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	confs, err := s.store.ConferencesByOrganizer(ctx, user.ID)
	if err != nil {
		return model.ConferenceForms{}, err
	}

	items := make([]model.ConferenceForm, 0, len(confs))
	for _, conf := range confs {
		items = append(items, conferenceToForm(conf, prof.DisplayName))
	}
	return model.ConferenceForms{Items: items}, nil
}

func (s *Service) QueryConferences(ctx context.Context, forms model.ConferenceQueryForms) (model.ConferenceForms, error) {
	q, err := query.Build(forms.Filters)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	confs, err := s.store.QueryConferences(ctx, q)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	return s.conferenceForms(ctx, confs)
}

func (s *Service) ConferencesToAttend(ctx context.Context, user User) (model.ConferenceForms, error) {
	prof, err := s.profileFromUser(ctx, user)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	confs, err := s.store.GetConferences(ctx, parseKeys(prof.ConferenceKeysToAttend))
	if err != nil {
		return model.ConferenceForms{}, err
	}
	return s.conferenceForms(ctx, confs)
}

func (s *Service) conferenceForms(ctx context.Context, confs []model.Conference) (model.ConferenceForms, error) {
	names, err := s.displayNames(ctx, confs)
	if err != nil {
		return model.ConferenceForms{}, err
	}

	items := make([]model.ConferenceForm, 0, len(confs))
	for _, conf := range confs {
		items = append(items, conferenceToForm(conf, names[conf.OrganizerUserId]))
	}
	return model.ConferenceForms{Items: items}, nil
}

// conferenceInfo is the conference summary put in the confirmation email.
func conferenceInfo(conf model.Conference) string {
	lines := []string{
		"Name: " + conf.Name,
		"City: " + conf.City,
		"Topics: " + strings.Join(conf.Topics, ", "),
	}
	if conf.StartDate != nil {
		lines = append(lines, "Dates: "+formatDate(conf.StartDate)+" - "+formatDate(conf.EndDate))
	}
	lines = append(lines, fmt.Sprintf("Max attendees: %d", conf.MaxAttendees))
	if conf.Description != "" {
		lines = append(lines, "Description: "+conf.Description)
	}
	return strings.Join(lines, "\r\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
