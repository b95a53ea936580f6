// README: Pet model and name-matching tests (no database required).
package pet

import (
	"testing"
	"time"
)

func TestBestNameMatch(t *testing.T) {
	pets := []Pet{
		{ID: "p1", Name: "Apollo"},
		{ID: "p2", Name: "Apollo Junior"},
		{ID: "p3", Name: "Luna"},
		{ID: "p4", Name: "Mo"},
	}

	cases := []struct {
		name      string
		utterance string
		wantID    string
	}{
		{"exact single name", "find Apollo", "p1"},
		{"longest name wins", "show me Apollo Junior please", "p2"},
		{"case insensitive", "where is LUNA now", "p3"},
		{"thai phrasing around name", "ขอดูข้อมูล Luna หน่อย", "p3"},
		{"no candidate in text", "find Rex", ""},
		{"two-char name matches", "is Mo for sale", "p4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BestNameMatch(tc.utterance, pets)
			if tc.wantID == "" {
				if got != nil {
					t.Fatalf("BestNameMatch() = %v, want nil", got.ID)
				}
				return
			}
			if got == nil || string(got.ID) != tc.wantID {
				t.Fatalf("BestNameMatch() = %v, want %s", got, tc.wantID)
			}
		})
	}
}

func TestRegistrationNoPattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"what is TH-2023-00187 status", "TH-2023-00187"},
		{"lookup KCT84112 for me", "KCT84112"},
		{"no number here", ""},
		{"plain 123456 digits", ""},
	}
	for _, tc := range cases {
		got := registrationNoPattern.FindString(tc.in)
		if got != tc.want {
			t.Errorf("pattern(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPetAge(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	born := time.Date(2023, 9, 15, 0, 0, 0, 0, time.UTC)
	p := Pet{BirthDate: &born}
	if got := p.Age(now); got != 2 {
		t.Errorf("Age() before anniversary = %d, want 2", got)
	}

	born2 := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	p2 := Pet{BirthDate: &born2}
	if got := p2.Age(now); got != 3 {
		t.Errorf("Age() after anniversary = %d, want 3", got)
	}

	p3 := Pet{}
	if got := p3.Age(now); got != -1 {
		t.Errorf("Age() without birth date = %d, want -1", got)
	}
}
