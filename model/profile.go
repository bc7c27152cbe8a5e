package model

// Profile is keyed by the user id carried in the auth token.
type Profile struct {
	UserId                 string   `json:"_id" bson:"_id"`
	DisplayName            string   `json:"display_name" bson:"display_name"`
	MainEmail              string   `json:"main_email" bson:"main_email"`
	TeeShirtSize           string   `json:"tee_shirt_size" bson:"tee_shirt_size"`
	ConferenceKeysToAttend []string `json:"conference_keys_to_attend" bson:"conference_keys_to_attend"`
	SessionWishlist        []string `json:"session_wishlist" bson:"session_wishlist"`
}

const TeeShirtNotSpecified = "NOT_SPECIFIED"

var TeeShirtSizes = []string{
	TeeShirtNotSpecified,
	"XS_M", "XS_W",
	"S_M", "S_W",
	"M_M", "M_W",
	"L_M", "L_W",
	"XL_M", "XL_W",
	"XXL_M", "XXL_W",
	"XXXL_M", "XXXL_W",
}

func (p Profile) IsAttending(websafeConferenceKey string) bool {
	return contains(p.ConferenceKeysToAttend, websafeConferenceKey)
}

func (p Profile) HasWishlisted(websafeSessionKey string) bool {
	return contains(p.SessionWishlist, websafeSessionKey)
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// RemoveKey returns keys without the first occurrence of key.
func RemoveKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i:i], keys[i+1:]...)
		}
	}
	return keys
}
