package models

import (
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestLegacyGame(t *testing.T) {
	t.Run("HasUser", func(t *testing.T) {
		tc := []struct {
			name   string
			userID *string
			want   bool
		}{
			{"with user", strPtr("user-1"), true},
			{"empty user id", strPtr(""), false},
			{"nil user id", nil, false},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				g := LegacyGame{ID: "g1", Title: "Catan", UserID: tt.userID}
				if got := g.HasUser(); got != tt.want {
					t.Errorf("HasUser() = %v, want %v", got, tt.want)
				}
			})
		}
	})

	t.Run("NormalizedTitle", func(t *testing.T) {
		g := LegacyGame{ID: "g1", Title: "  CATAN  "}
		if got := g.NormalizedTitle(); got != "catan" {
			t.Errorf("NormalizedTitle() = %q, want %q", got, "catan")
		}
	})
}

func TestSharedGameData(t *testing.T) {
	t.Run("SharedDataFrom strips per-user fields", func(t *testing.T) {
		rating := 8
		g := LegacyGame{
			ID:         "g1",
			UserID:     strPtr("user-1"),
			Title:      "Catan",
			Year:       intPtr(1995),
			Categories: []string{"strategy", "trading"},
			PlayCount:  12,
			Rating:     &rating,
			Review:     strPtr("great"),
		}

		data := SharedDataFrom(g)

		if data.Title != "Catan" {
			t.Errorf("expected title to carry over, got %q", data.Title)
		}
		if data.Year == nil || *data.Year != 1995 {
			t.Error("expected year to carry over")
		}
		if len(data.Categories) != 2 {
			t.Errorf("expected categories to carry over, got %v", data.Categories)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		valid := SharedGameData{Title: "Catan"}
		if err := valid.Validate(); err != nil {
			t.Errorf("expected valid data, got %v", err)
		}

		blank := SharedGameData{Title: "   "}
		if err := blank.Validate(); err == nil {
			t.Error("expected error for whitespace-only title")
		}
	})
}

func TestLibraryGame(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name    string
			entry   LibraryGame
			wantErr bool
		}{
			{
				name:  "valid entry",
				entry: LibraryGame{UserID: "u1", GameID: "g1", PlayCount: 3},
			},
			{
				name:  "valid rating",
				entry: LibraryGame{UserID: "u1", GameID: "g1", Rating: intPtr(10)},
			},
			{
				name:    "missing user",
				entry:   LibraryGame{GameID: "g1"},
				wantErr: true,
			},
			{
				name:    "missing game",
				entry:   LibraryGame{UserID: "u1"},
				wantErr: true,
			},
			{
				name:    "negative play count",
				entry:   LibraryGame{UserID: "u1", GameID: "g1", PlayCount: -1},
				wantErr: true,
			},
			{
				name:    "rating out of range",
				entry:   LibraryGame{UserID: "u1", GameID: "g1", Rating: intPtr(11)},
				wantErr: true,
			},
			{
				name:    "rating below range",
				entry:   LibraryGame{UserID: "u1", GameID: "g1", Rating: intPtr(0)},
				wantErr: true,
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.entry.Validate()
				if tt.wantErr && err == nil {
					t.Error("expected validation error")
				}
				if !tt.wantErr && err != nil {
					t.Errorf("unexpected validation error: %v", err)
				}
			})
		}
	})
}

func TestUser(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		valid := User{Email: "a@example.com", Name: "A"}
		if err := valid.Validate(); err != nil {
			t.Errorf("expected valid user, got %v", err)
		}

		noEmail := User{Name: "A"}
		if err := noEmail.Validate(); err == nil {
			t.Error("expected error for missing email")
		}

		noName := User{Email: "a@example.com"}
		if err := noName.Validate(); err == nil {
			t.Error("expected error for missing name")
		}
	})
}
