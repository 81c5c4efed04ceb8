package domain

import "testing"

func TestSession_IsAuthenticated(t *testing.T) {
	user := &UserProfile{ID: "u1", Name: "Alex Chen", Role: RoleUser}

	cases := []struct {
		name string
		s    Session
		want bool
	}{
		{"empty", Session{}, false},
		{"token only", Session{Token: "tok"}, false},
		{"user only", Session{User: user}, false},
		{"complete", Session{Token: "tok", User: user}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.IsAuthenticated(); got != tc.want {
				t.Fatalf("IsAuthenticated() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSession_Role_DerivedFromUser(t *testing.T) {
	s := Session{}
	if _, ok := s.Role(); ok {
		t.Fatalf("expected no role for empty session")
	}

	s = Session{Token: "tok", User: &UserProfile{ID: "t1", Role: RoleTrainer}}
	role, ok := s.Role()
	if !ok || role != RoleTrainer {
		t.Fatalf("expected trainer role, got %q (ok=%v)", role, ok)
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"user", "trainer", "admin"} {
		if _, ok := ParseRole(valid); !ok {
			t.Fatalf("expected %q to parse", valid)
		}
	}
	for _, invalid := range []string{"", "superuser", "Admin", "teacher"} {
		if _, ok := ParseRole(invalid); ok {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}
