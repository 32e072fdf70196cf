package invers

import (
	"context"
	"testing"

	"github.com/etnz/invers/date"
	"github.com/rs/zerolog"
)

func TestTheme_normalize(t *testing.T) {
	tests := []struct {
		in   Theme
		want Theme
	}{
		{Theme{ColorKey: Emerald}, Theme{ColorKey: Emerald}},
		{Theme{Dark: true, ColorKey: Rose}, Theme{Dark: true, ColorKey: Rose}},
		{Theme{ColorKey: "blue"}, Theme{ColorKey: Emerald}},
		{Theme{Dark: true}, Theme{Dark: true, ColorKey: Emerald}},
	}
	for _, tt := range tests {
		if got := tt.in.normalize(); got != tt.want {
			t.Errorf("%v.normalize() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTracker_SetTheme(t *testing.T) {
	saver := &memorySaver{}
	tr := NewTracker(nil, saver, zerolog.Nop())

	tr.SetTheme(context.Background(), DefaultTheme())
	if len(saver.saved) != 0 {
		t.Errorf("SetTheme(default) saved %d snapshots, want 0", len(saver.saved))
	}

	tr.SetTheme(context.Background(), Theme{Dark: true, ColorKey: "purple"})
	want := Theme{Dark: true, ColorKey: Emerald}
	if got := tr.Theme(); got != want {
		t.Errorf("Theme() = %v, want %v", got, want)
	}
	if got := saver.last(t).Theme; got != want {
		t.Errorf("saved theme = %v, want %v", got, want)
	}
}

func TestDefaultNotificationConfig(t *testing.T) {
	got := DefaultNotificationConfig()
	if got.Enabled {
		t.Error("DefaultNotificationConfig().Enabled = true, want false")
	}
	if got.Time != date.Clock(9, 0) {
		t.Errorf("DefaultNotificationConfig().Time = %v, want 09:00", got.Time)
	}
}
