package shared

import (
	"strings"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	tc := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "basic normalization",
			title: "Game Title",
			want:  "game title",
		},
		{
			name:  "extra whitespace",
			title: "  Game   Title  ",
			want:  "game title",
		},
		{
			name:  "mixed case",
			title: "GaMe TiTlE",
			want:  "game title",
		},
		{
			name:  "all caps",
			title: "CATAN",
			want:  "catan",
		},
		{
			name:  "whitespace only",
			title: "   ",
			want:  "",
		},
		{
			name:  "empty string",
			title: "",
			want:  "",
		},
		{
			name:  "tabs and newlines collapse",
			title: "Ticket\tto\nRide",
			want:  "ticket to ride",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTitle(tt.title)
			if got != tt.want {
				t.Errorf("NormalizeTitle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected unique IDs")
	}
	if len(strings.Split(a, "-")) != 5 {
		t.Errorf("expected UUID format, got %s", a)
	}
}

func TestFormatPlayerRange(t *testing.T) {
	two, four := 2, 4

	tc := []struct {
		name string
		min  *int
		max  *int
		want string
	}{
		{"full range", &two, &four, "2-4"},
		{"equal bounds", &two, &two, "2"},
		{"min only", &two, nil, "2+"},
		{"max only", nil, &four, "up to 4"},
		{"unknown", nil, nil, "?"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPlayerRange(tt.min, tt.max)
			if got != tt.want {
				t.Errorf("FormatPlayerRange() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatPlayTime(t *testing.T) {
	thirty, sixty := 30, 60

	tc := []struct {
		name string
		min  *int
		max  *int
		want string
	}{
		{"full range", &thirty, &sixty, "30-60 min"},
		{"equal bounds", &sixty, &sixty, "60 min"},
		{"min only", &thirty, nil, "30+ min"},
		{"max only", nil, &sixty, "up to 60 min"},
		{"unknown", nil, nil, "?"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPlayTime(tt.min, tt.max)
			if got != tt.want {
				t.Errorf("FormatPlayTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"key": "value"}

	t.Run("pretty", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(out), "\"key\": \"value\"") {
			t.Errorf("expected indented JSON, got %s", out)
		}
	})

	t.Run("compact", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != `{"key":"value"}` {
			t.Errorf("expected compact JSON, got %s", out)
		}
	})
}
