package service

import (
	"encoding/json"
	"testing"

	"github.com/trainhub/session-gateway/internal/core/domain"
)

func TestNormalizeAuthUser_UnwrapOrder(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		wantID string
	}{
		{"user wrapper", `{"token":"t","user":{"id":"u1","name":"A"}}`, "u1"},
		{"teacher wrapper", `{"token":"t","teacher":{"id":"t1","name":"B"}}`, "t1"},
		{"admin wrapper", `{"token":"t","admin":{"id":"a1","name":"C"}}`, "a1"},
		{"flat body", `{"id":"f1","name":"D"}`, "f1"},
		{"user wins over teacher", `{"user":{"id":"u1"},"teacher":{"id":"t1"}}`, "u1"},
		{"teacher wins over admin", `{"teacher":{"id":"t1"},"admin":{"id":"a1"}}`, "t1"},
		{"null user falls through", `{"user":null,"teacher":{"id":"t1"}}`, "t1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := NormalizeAuthUser([]byte(tc.body), domain.RoleUser)
			if err != nil {
				t.Fatalf("normalize failed: %v", err)
			}
			if user.ID != tc.wantID {
				t.Fatalf("expected id %q, got %q", tc.wantID, user.ID)
			}
		})
	}
}

func TestNormalizeAuthUser_IdentifierFallback(t *testing.T) {
	user, err := NormalizeAuthUser([]byte(`{"user":{"_id":"mongo1","name":"A"}}`), domain.RoleUser)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if user.ID != "mongo1" {
		t.Fatalf("expected _id fallback, got %q", user.ID)
	}

	// A literal id field takes priority over _id.
	user, err = NormalizeAuthUser([]byte(`{"user":{"id":"plain","_id":"mongo1"}}`), domain.RoleUser)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if user.ID != "plain" {
		t.Fatalf("expected id to win over _id, got %q", user.ID)
	}
}

func TestNormalizeAuthUser_NumericID(t *testing.T) {
	user, err := NormalizeAuthUser([]byte(`{"user":{"id":42,"name":"A"}}`), domain.RoleUser)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if user.ID != "42" {
		t.Fatalf("expected numeric id carried as string, got %q", user.ID)
	}
}

func TestNormalizeAuthUser_RoleParameterWins(t *testing.T) {
	// The payload self-reports admin under a teacher wrapper; the role the
	// call was made under must win.
	body := `{"teacher":{"id":"t1","name":"Alex Chen","role":"admin"}}`
	user, err := NormalizeAuthUser([]byte(body), domain.RoleTrainer)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if user.Role != domain.RoleTrainer {
		t.Fatalf("expected role trainer, got %q", user.Role)
	}
	if user.AvatarInitials != "AC" {
		t.Fatalf("expected initials AC, got %q", user.AvatarInitials)
	}
}

func TestNormalizeAuthUser_MissingNameInitials(t *testing.T) {
	user, err := NormalizeAuthUser([]byte(`{"user":{"id":"u1"}}`), domain.RoleUser)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if user.AvatarInitials != "??" {
		t.Fatalf("expected ?? placeholder, got %q", user.AvatarInitials)
	}
}

func TestNormalizeAuthUser_PassthroughFieldsVerbatim(t *testing.T) {
	body := `{"teacher":{"id":"t1","name":"B","category":"strength","rating":4.5,"workExperience":[{"y":2020}]}}`
	user, err := NormalizeAuthUser([]byte(body), domain.RoleTrainer)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if string(user.Category) != `"strength"` {
		t.Fatalf("category not passed through verbatim: %s", user.Category)
	}
	if string(user.Rating) != "4.5" {
		t.Fatalf("rating not passed through verbatim: %s", user.Rating)
	}
	if string(user.WorkExperience) != `[{"y":2020}]` {
		t.Fatalf("workExperience not passed through verbatim: %s", user.WorkExperience)
	}
	if user.Description != nil || user.ProfilePictureURL != nil {
		t.Fatalf("absent optional fields must stay absent")
	}

	// The profile must survive a persistence round-trip unchanged.
	encoded, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back domain.UserProfile
	if err := json.Unmarshal(encoded, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if string(back.Rating) != "4.5" {
		t.Fatalf("rating lost in round-trip: %s", back.Rating)
	}
}

func TestNormalizeAuthUser_NonObjectBody(t *testing.T) {
	if _, err := NormalizeAuthUser([]byte(`"just a string"`), domain.RoleUser); err == nil {
		t.Fatalf("expected error for non-object body")
	}
}
