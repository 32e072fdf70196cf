package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestOf(t *testing.T) {
	// A late evening in a zone east of UTC is still the same calendar day locally.
	loc := time.FixedZone("IST", 5*3600+1800)
	on := time.Date(2025, 3, 1, 23, 45, 0, 0, loc)
	if got, want := Of(on), New(2025, 3, 1); got != want {
		t.Errorf("Of(%v) = %v, want %v", on, got, want)
	}
	if got, want := Of(on.Add(30*time.Minute)), New(2025, 3, 2); got != want {
		t.Errorf("Of(%v) = %v, want %v", on, got, want)
	}
}

func TestDate_JSON(t *testing.T) {
	tests := []struct {
		in   Date
		want string
	}{
		{New(2025, 1, 9), `"2025-01-09"`},
		{Date{}, `""`},
	}
	for _, tc := range tests {
		b, err := json.Marshal(tc.in)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", tc.in, err)
		}
		if string(b) != tc.want {
			t.Errorf("Marshal(%v) = %s, want %s", tc.in, b, tc.want)
		}
		var back Date
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", b, err)
		}
		if back != tc.in {
			t.Errorf("Unmarshal(%s) = %v, want %v", b, back, tc.in)
		}
	}
}

func TestParse_Lenient(t *testing.T) {
	if got, want := MustParse("2025-7-1"), New(2025, 7, 1); got != want {
		t.Errorf("MustParse() = %v, want %v", got, want)
	}
	if _, err := Parse("07/01/2025"); err == nil {
		t.Error("Parse() expected an error for a non ISO date")
	}
}
