package service

import (
	"conference-api/errors"
	"conference-api/model"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	defaultCity   = "Default City"
	defaultTopics = []string{"Default", "Topic"}
)

func parseKey(key, kind string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(key))
	if err != nil {
		return primitive.NilObjectID, errors.BadRequest("Invalid %s key: %s", kind, key)
	}
	return id, nil
}

// parseKeys converts stored keys, skipping any that are malformed.
func parseKeys(keys []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(keys))
	for _, key := range keys {
		if id, err := primitive.ObjectIDFromHex(key); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// parseDate reads a "YYYY-MM-DD" date, ignoring anything after the first ten
// characters. An empty value is no date.
func parseDate(value, field string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}

	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, errors.BadRequest("%s must be a date formatted as YYYY-MM-DD", field)
	}
	return &d, nil
}

// parseTimeOfDay normalizes an "HH:MM" time.
func parseTimeOfDay(value, field string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return "", errors.BadRequest("%s must be a time formatted as HH:MM", field)
	}
	return t.Format(timeLayout), nil
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(dateLayout)
}

func monthOf(d *time.Time) int {
	if d == nil {
		return 0
	}
	return int(d.Month())
}

func intPtr(v int) *int {
	return &v
}

func nonNil(keys []string) []string {
	if keys == nil {
		return []string{}
	}
	return keys
}

func conferenceToForm(conf model.Conference, displayName string) model.ConferenceForm {
	return model.ConferenceForm{
		Name:                 conf.Name,
		Description:          conf.Description,
		OrganizerUserId:      conf.OrganizerUserId,
		Topics:               nonNil(conf.Topics),
		City:                 conf.City,
		StartDate:            formatDate(conf.StartDate),
		Month:                conf.Month,
		MaxAttendees:         intPtr(conf.MaxAttendees),
		SeatsAvailable:       intPtr(conf.SeatsAvailable),
		EndDate:              formatDate(conf.EndDate),
		WebsafeKey:           conf.WebsafeKey(),
		OrganizerDisplayName: displayName,
	}
}

func sessionToForm(sess model.Session, conferenceName, speakerName string) model.SessionForm {
	return model.SessionForm{
		Name:                 sess.Name,
		Highlights:           sess.Highlights,
		SpeakerKey:           sess.SpeakerKey,
		Duration:             sess.Duration,
		TypeOfSession:        sess.TypeOfSession,
		StartDate:            formatDate(sess.StartDate),
		StartTime:            sess.StartTime,
		WebsafeSessionKey:    sess.WebsafeKey(),
		WebsafeConferenceKey: sess.ConferenceId.Hex(),
		ConferenceName:       conferenceName,
		SpeakerName:          speakerName,
	}
}

func speakerToForm(speaker model.Speaker) model.SpeakerForm {
	return model.SpeakerForm{
		SpeakerName:    speaker.SpeakerName,
		SpeakerInfo:    speaker.SpeakerInfo,
		SpeakerContact: speaker.SpeakerContact,
		WebsafeKey:     speaker.WebsafeKey(),
	}
}

func profileToForm(prof model.Profile) model.ProfileForm {
	size := prof.TeeShirtSize
	if size == "" {
		size = model.TeeShirtNotSpecified
	}
	return model.ProfileForm{
		DisplayName:            prof.DisplayName,
		MainEmail:              prof.MainEmail,
		TeeShirtSize:           size,
		ConferenceKeysToAttend: nonNil(prof.ConferenceKeysToAttend),
		SessionWishlist:        nonNil(prof.SessionWishlist),
	}
}

// conferenceFromForm builds a new conference from a creation request,
// filling in defaults for missing values.
func conferenceFromForm(form model.ConferenceForm, organizer string) (*model.Conference, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, errors.BadRequest("Conference 'name' field required")
	}

	conf := &model.Conference{
		Name:            strings.TrimSpace(form.Name),
		Description:     form.Description,
		OrganizerUserId: organizer,
		Topics:          form.Topics,
		City:            form.City,
	}
	if conf.City == "" {
		conf.City = defaultCity
	}
	if len(conf.Topics) == 0 {
		conf.Topics = append([]string(nil), defaultTopics...)
	}
	if form.MaxAttendees != nil {
		conf.MaxAttendees = *form.MaxAttendees
	}
	if form.SeatsAvailable != nil {
		conf.SeatsAvailable = *form.SeatsAvailable
	}
	if conf.MaxAttendees > 0 {
		conf.SeatsAvailable = conf.MaxAttendees
	}

	var err error
	if conf.StartDate, err = parseDate(form.StartDate, "start_date"); err != nil {
		return nil, err
	}
	if conf.EndDate, err = parseDate(form.EndDate, "end_date"); err != nil {
		return nil, err
	}
	conf.Month = monthOf(conf.StartDate)

	if err := checkDateRange(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// applyConferenceForm copies the fields present in form onto conf.
func applyConferenceForm(conf *model.Conference, form model.ConferenceForm) error {
	if name := strings.TrimSpace(form.Name); name != "" {
		conf.Name = name
	}
	if form.Description != "" {
		conf.Description = form.Description
	}
	if len(form.Topics) > 0 {
		conf.Topics = form.Topics
	}
	if form.City != "" {
		conf.City = form.City
	}
	if form.MaxAttendees != nil {
		conf.MaxAttendees = *form.MaxAttendees
	}
	if form.SeatsAvailable != nil {
		conf.SeatsAvailable = *form.SeatsAvailable
	}
	if form.StartDate != "" {
		d, err := parseDate(form.StartDate, "start_date")
		if err != nil {
			return err
		}
		conf.StartDate = d
		conf.Month = monthOf(d)
	}
	if form.EndDate != "" {
		d, err := parseDate(form.EndDate, "end_date")
		if err != nil {
			return err
		}
		conf.EndDate = d
	}
	return checkDateRange(conf)
}

func checkDateRange(conf *model.Conference) error {
	if conf.StartDate != nil && conf.EndDate != nil && conf.EndDate.Before(*conf.StartDate) {
		return errors.BadRequest("end_date cannot be before start_date")
	}
	return nil
}

func sessionFromForm(form model.SessionForm, confID primitive.ObjectID) (*model.Session, error) {
	sess := &model.Session{
		ConferenceId:  confID,
		Name:          strings.TrimSpace(form.Name),
		Highlights:    form.Highlights,
		SpeakerKey:    strings.TrimSpace(form.SpeakerKey),
		Duration:      form.Duration,
		TypeOfSession: strings.TrimSpace(form.TypeOfSession),
	}

	var err error
	if sess.StartDate, err = parseDate(form.StartDate, "start_date"); err != nil {
		return nil, err
	}
	if sess.StartTime, err = parseTimeOfDay(form.StartTime, "start_time"); err != nil {
		return nil, err
	}
	return sess, nil
}
