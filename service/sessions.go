package service

import (
	"conference-api/errors"
	"conference-api/model"
	"conference-api/tasks"
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultExcludedType = "workshop"
	defaultBefore       = "19:00"
)

// CreateSession adds a session to a conference owned by the caller and
// queues a featured speaker refresh.
func (s *Service) CreateSession(ctx context.Context, user User, websafeConferenceKey string, form model.SessionForm) (model.SessionForm, error) {
	if err := requireUser(user); err != nil {
		return model.SessionForm{}, err
	}
	if err := s.validateForm(form); err != nil {
		return model.SessionForm{}, err
	}
	confID, err := parseKey(websafeConferenceKey, "conference")
	if err != nil {
		return model.SessionForm{}, err
	}

	conf, err := s.store.GetConference(ctx, confID)
	if errors.IsNotFound(err) {
		return model.SessionForm{}, errors.BadRequest("No conference found.")
	}
	if err != nil {
		return model.SessionForm{}, err
	}
	if conf.OrganizerUserId != user.ID {
		return model.SessionForm{}, errors.Forbidden("Only owner can add sessions.")
	}

	sess, err := sessionFromForm(form, confID)
	if err != nil {
		return model.SessionForm{}, err
	}

	var speakerID primitive.ObjectID
	speakerName := ""
	if sess.SpeakerKey != "" {
		speakerID, err = parseKey(sess.SpeakerKey, "speaker")
		if err != nil {
			return model.SessionForm{}, err
		}
		speaker, err := s.store.GetSpeaker(ctx, speakerID)
		if err != nil {
			return model.SessionForm{}, err
		}
		sess.SpeakerKey = speakerID.Hex()
		speakerName = speaker.SpeakerName
	}

	if err := s.store.InsertSession(ctx, sess); err != nil {
		return model.SessionForm{}, err
	}
	s.logger.InfoContext(ctx, "session created", "session", sess.WebsafeKey(), "conference", conf.WebsafeKey())

	if sess.SpeakerKey != "" {
		s.enqueue(ctx, tasks.SetFeaturedSpeaker, map[string]string{
			"speakerKey":    sess.SpeakerKey,
			"conferenceKey": conf.WebsafeKey(),
		})
	}

	return sessionToForm(*sess, conf.Name, speakerName), nil
}

func (s *Service) GetSession(ctx context.Context, websafeSessionKey string) (model.SessionForm, error) {
	sessionID, err := parseKey(websafeSessionKey, "session")
	if err != nil {
		return model.SessionForm{}, err
	}
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return model.SessionForm{}, err
	}

	forms, err := s.sessionForms(ctx, []model.Session{*sess})
	if err != nil {
		return model.SessionForm{}, err
	}
	return forms.Items[0], nil
}

// ConferenceSessions lists a conference's sessions, optionally only those
// of one type.
func (s *Service) ConferenceSessions(ctx context.Context, websafeConferenceKey, typeOfSession string) (model.SessionForms, error) {
	confID, err := parseKey(websafeConferenceKey, "conference")
	if err != nil {
		return model.SessionForms{}, err
	}
	if _, err := s.store.GetConference(ctx, confID); err != nil {
		return model.SessionForms{}, err
	}

	sessions, err := s.store.SessionsByConference(ctx, confID, strings.TrimSpace(typeOfSession))
	if err != nil {
		return model.SessionForms{}, err
	}
	return s.sessionForms(ctx, sessions)
}

func (s *Service) SessionsBySpeaker(ctx context.Context, speakerKey string) (model.SessionForms, error) {
	speakerID, err := parseKey(speakerKey, "speaker")
	if err != nil {
		return model.SessionForms{}, err
	}
	if _, err := s.store.GetSpeaker(ctx, speakerID); err != nil {
		return model.SessionForms{}, err
	}

	sessions, err := s.store.SessionsBySpeaker(ctx, speakerID.Hex())
	if err != nil {
		return model.SessionForms{}, err
	}
	return s.sessionForms(ctx, sessions)
}

// SessionsExcludingTypeBefore lists sessions of any type but typeOfSession
// starting before the given "HH:MM". Both default to non-workshop sessions
// before 19:00.
func (s *Service) SessionsExcludingTypeBefore(ctx context.Context, typeOfSession, before string) (model.SessionForms, error) {
	typeOfSession = strings.TrimSpace(typeOfSession)
	if typeOfSession == "" {
		typeOfSession = defaultExcludedType
	}
	if strings.TrimSpace(before) == "" {
		before = defaultBefore
	}
	before, err := parseTimeOfDay(before, "before")
	if err != nil {
		return model.SessionForms{}, err
	}

	sessions, err := s.store.SessionsExcludingTypeBefore(ctx, typeOfSession, before)
	if err != nil {
		return model.SessionForms{}, err
	}
	return s.sessionForms(ctx, sessions)
}

// sessionForms resolves the conference and speaker names of sessions.
func (s *Service) sessionForms(ctx context.Context, sessions []model.Session) (model.SessionForms, error) {
	confSeen := map[primitive.ObjectID]bool{}
	confIDs := []primitive.ObjectID{}
	speakerKeys := []string{}
	speakerSeen := map[string]bool{}
	for _, sess := range sessions {
		if !confSeen[sess.ConferenceId] {
			confSeen[sess.ConferenceId] = true
			confIDs = append(confIDs, sess.ConferenceId)
		}
		if sess.SpeakerKey != "" && !speakerSeen[sess.SpeakerKey] {
			speakerSeen[sess.SpeakerKey] = true
			speakerKeys = append(speakerKeys, sess.SpeakerKey)
		}
	}

	confNames := map[primitive.ObjectID]string{}
	if len(confIDs) > 0 {
		confs, err := s.store.GetConferences(ctx, confIDs)
		if err != nil {
			return model.SessionForms{}, err
		}
		for _, c := range confs {
			confNames[c.Id] = c.Name
		}
	}

	speakerNames := map[string]string{}
	if ids := parseKeys(speakerKeys); len(ids) > 0 {
		speakers, err := s.store.GetSpeakers(ctx, ids)
		if err != nil {
			return model.SessionForms{}, err
		}
		for _, sp := range speakers {
			speakerNames[sp.WebsafeKey()] = sp.SpeakerName
		}
	}

	items := make([]model.SessionForm, 0, len(sessions))
	for _, sess := range sessions {
		items = append(items, sessionToForm(sess, confNames[sess.ConferenceId], speakerNames[sess.SpeakerKey]))
	}
	return model.SessionForms{Items: items}, nil
}
