package model

// Wire forms exchanged with clients. Dates travel as "YYYY-MM-DD" and
// times as "HH:MM".

type ConferenceForm struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	OrganizerUserId      string   `json:"organizer_user_id"`
	Topics               []string `json:"topics"`
	City                 string   `json:"city"`
	StartDate            string   `json:"start_date"`
	Month                int      `json:"month"`
	MaxAttendees         *int     `json:"max_attendees" validate:"omitempty,min=0"`
	SeatsAvailable       *int     `json:"seats_available" validate:"omitempty,min=0"`
	EndDate              string   `json:"end_date"`
	WebsafeKey           string   `json:"websafe_key"`
	OrganizerDisplayName string   `json:"organizer_display_name"`
}

type ConferenceForms struct {
	Items []ConferenceForm `json:"items"`
}

type ConferenceQueryForm struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

type ConferenceQueryForms struct {
	Filters []ConferenceQueryForm `json:"filters"`
}

type ProfileForm struct {
	DisplayName            string   `json:"display_name"`
	MainEmail              string   `json:"main_email"`
	TeeShirtSize           string   `json:"tee_shirt_size"`
	ConferenceKeysToAttend []string `json:"conference_keys_to_attend"`
	SessionWishlist        []string `json:"session_wishlist"`
}

// ProfileMiniForm holds the user-editable part of a profile.
type ProfileMiniForm struct {
	DisplayName  string `json:"display_name" validate:"max=100"`
	TeeShirtSize string `json:"tee_shirt_size" validate:"omitempty,oneof=NOT_SPECIFIED XS_M XS_W S_M S_W M_M M_W L_M L_W XL_M XL_W XXL_M XXL_W XXXL_M XXXL_W"`
}

type SessionForm struct {
	Name                 string `json:"name" validate:"required"`
	Highlights           string `json:"highlights"`
	SpeakerKey           string `json:"speaker_key"`
	Duration             int    `json:"duration" validate:"min=0"`
	TypeOfSession        string `json:"type_of_session"`
	StartDate            string `json:"start_date"`
	StartTime            string `json:"start_time"`
	WebsafeSessionKey    string `json:"websafe_session_key"`
	WebsafeConferenceKey string `json:"websafe_conference_key"`
	ConferenceName       string `json:"conference_name"`
	SpeakerName          string `json:"speaker_name"`
}

type SessionForms struct {
	Items []SessionForm `json:"items"`
}

type SpeakerForm struct {
	SpeakerName    string `json:"speaker_name" validate:"required"`
	SpeakerInfo    string `json:"speaker_info"`
	SpeakerContact string `json:"speaker_contact"`
	WebsafeKey     string `json:"websafe_key"`
}

type SpeakerForms struct {
	Items []SpeakerForm `json:"items"`
}

type BooleanMessage struct {
	Data bool `json:"data"`
}

type StringMessage struct {
	Data string `json:"data"`
}

type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type SignupForm struct {
	Login       string `json:"login" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=8"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name"`
}
