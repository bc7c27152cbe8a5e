package service

import (
	"conference-api/model"
	"context"
	"strings"
)

func (s *Service) AddSpeaker(ctx context.Context, user User, form model.SpeakerForm) (model.SpeakerForm, error) {
	if _, err := s.profileFromUser(ctx, user); err != nil {
		return model.SpeakerForm{}, err
	}
	form.SpeakerName = strings.TrimSpace(form.SpeakerName)
	if err := s.validateForm(form); err != nil {
		return model.SpeakerForm{}, err
	}

	speaker := &model.Speaker{
		SpeakerName:    form.SpeakerName,
		SpeakerInfo:    form.SpeakerInfo,
		SpeakerContact: form.SpeakerContact,
	}
	if err := s.store.InsertSpeaker(ctx, speaker); err != nil {
		return model.SpeakerForm{}, err
	}
	return speakerToForm(*speaker), nil
}

func (s *Service) Speakers(ctx context.Context) (model.SpeakerForms, error) {
	speakers, err := s.store.ListSpeakers(ctx)
	if err != nil {
		return model.SpeakerForms{}, err
	}
	return speakerForms(speakers), nil
}

// SpeakersByConference lists the speakers giving at least one session at
// the conference.
func (s *Service) SpeakersByConference(ctx context.Context, websafeConferenceKey string) (model.SpeakerForms, error) {
	confID, err := parseKey(websafeConferenceKey, "conference")
	if err != nil {
		return model.SpeakerForms{}, err
	}
	if _, err := s.store.GetConference(ctx, confID); err != nil {
		return model.SpeakerForms{}, err
	}

	keys, err := s.store.SpeakerKeysByConference(ctx, confID)
	if err != nil {
		return model.SpeakerForms{}, err
	}
	ids := parseKeys(keys)
	if len(ids) == 0 {
		return model.SpeakerForms{Items: []model.SpeakerForm{}}, nil
	}

	speakers, err := s.store.GetSpeakers(ctx, ids)
	if err != nil {
		return model.SpeakerForms{}, err
	}
	return speakerForms(speakers), nil
}

func speakerForms(speakers []model.Speaker) model.SpeakerForms {
	items := make([]model.SpeakerForm, 0, len(speakers))
	for _, sp := range speakers {
		items = append(items, speakerToForm(sp))
	}
	return model.SpeakerForms{Items: items}
}
