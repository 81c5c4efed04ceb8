package domain

import (
	"encoding/json"
	"strings"
	"unicode"
)

// fallbackInitials is used when a profile has no usable name.
const fallbackInitials = "??"

// UserProfile is the canonical user record, normalized from whichever shape
// the auth backend returned. The trainer-only fields are carried verbatim as
// raw JSON: the gateway neither validates nor coerces them.
type UserProfile struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	AvatarInitials string `json:"avatarInitials"`

	ProfilePictureURL json.RawMessage `json:"profilePictureUrl,omitempty"`
	Category          json.RawMessage `json:"category,omitempty"`
	Rating            json.RawMessage `json:"rating,omitempty"`
	WorkExperience    json.RawMessage `json:"workExperience,omitempty"`
	Description       json.RawMessage `json:"description,omitempty"`
}

// AvatarInitials derives display initials from a name: the first rune of each
// whitespace-delimited word, uppercased, truncated to at most two characters.
// An empty or whitespace-only name yields "??".
func AvatarInitials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return fallbackInitials
	}

	initials := make([]rune, 0, len(words))
	for _, w := range words {
		r := []rune(w)[0]
		initials = append(initials, unicode.ToUpper(r))
	}
	if len(initials) > 2 {
		initials = initials[:2]
	}
	return string(initials)
}
