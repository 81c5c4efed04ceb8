package service

import (
	"encoding/json"
	"fmt"

	"github.com/trainhub/session-gateway/internal/core/domain"
)

// envelope captures the role-specific wrappers the backend may put around a
// profile. Unwrap priority is fixed: user, then teacher, then admin, then the
// flat body itself.
type envelope struct {
	User    json.RawMessage `json:"user"`
	Teacher json.RawMessage `json:"teacher"`
	Admin   json.RawMessage `json:"admin"`
}

// flexID tolerates backends that send the identifier as a string or a bare
// number.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	*f = flexID(b)
	return nil
}

// rawProfile is the union of profile fields seen across the backend's
// payload shapes. It deliberately has no role field: the backend is not
// trusted to self-report role consistently across endpoints.
type rawProfile struct {
	ID    flexID `json:"id"`
	AltID flexID `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	ProfilePictureURL json.RawMessage `json:"profilePictureUrl"`
	Category          json.RawMessage `json:"category"`
	Rating            json.RawMessage `json:"rating"`
	WorkExperience    json.RawMessage `json:"workExperience"`
	Description       json.RawMessage `json:"description"`
}

// NormalizeAuthUser converts a raw backend response into the canonical
// profile. role is the role under which the call was made and always wins
// over anything embedded in the payload.
func NormalizeAuthUser(body json.RawMessage, role domain.Role) (*domain.UserProfile, error) {
	var env envelope
	_ = json.Unmarshal(body, &env) // a non-object body fails the profile decode below

	profile := body
	for _, wrapped := range []json.RawMessage{env.User, env.Teacher, env.Admin} {
		if jsonPresent(wrapped) {
			profile = wrapped
			break
		}
	}

	var rp rawProfile
	if err := json.Unmarshal(profile, &rp); err != nil {
		return nil, fmt.Errorf("auth payload: %w", err)
	}

	id := rp.ID
	if id == "" {
		id = rp.AltID
	}

	return &domain.UserProfile{
		ID:             string(id),
		Name:           rp.Name,
		Email:          rp.Email,
		Role:           role,
		AvatarInitials: domain.AvatarInitials(rp.Name),

		ProfilePictureURL: rp.ProfilePictureURL,
		Category:          rp.Category,
		Rating:            rp.Rating,
		WorkExperience:    rp.WorkExperience,
		Description:       rp.Description,
	}, nil
}

// jsonPresent reports whether a raw field was present and non-null.
func jsonPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
