package invers

import (
	"errors"
	"testing"
)

func TestReports_SaveLocks(t *testing.T) {
	r := NewReports()
	mustUpdate(t, r, 3, Profit, "500")
	mustUpdate(t, r, 3, Loss, "100")
	mustUpdate(t, r, 3, Note, "steady month")

	if !r.Save(3) {
		t.Fatal("Save() on a draft = false, want true")
	}
	if !r.IsLocked(3) {
		t.Fatal("report not locked after Save()")
	}
	before, _ := r.Get(3)

	for _, f := range []Field{Profit, Loss, Note} {
		applied, err := r.Update(3, f, "42")
		if err != nil {
			t.Errorf("Update(%v) on a locked month error = %v, want nil", f, err)
		}
		if applied {
			t.Errorf("Update(%v) on a locked month applied", f)
		}
	}
	after, _ := r.Get(3)
	if !after.Profit.Decimal.Equal(before.Profit.Decimal) || !after.Loss.Decimal.Equal(before.Loss.Decimal) || after.Note != before.Note {
		t.Errorf("locked report changed: got %+v, want %+v", after, before)
	}

	if r.Save(3) {
		t.Error("Save() on a locked month = true, want a no-op")
	}
}

func TestReports_Delete(t *testing.T) {
	r := NewReports()
	mustUpdate(t, r, 0, Profit, "10")
	r.Save(0)

	if !r.Delete(0) {
		t.Fatal("Delete() = false, want true")
	}
	if _, ok := r.Get(0); ok {
		t.Fatal("report still present after Delete()")
	}
	if r.Delete(0) {
		t.Error("second Delete() = true, want false")
	}
	// a new draft can start after a delete.
	mustUpdate(t, r, 0, Profit, "20")
	if r.IsLocked(0) {
		t.Error("new report after Delete() is locked")
	}
}

func TestReports_SaveWithoutRecord(t *testing.T) {
	r := NewReports()
	if !r.Save(7) {
		t.Fatal("Save() = false")
	}
	rep, ok := r.Get(7)
	if !ok || !rep.Locked || rep.Profit.Valid || rep.Loss.Valid {
		t.Errorf("Get() = %+v, %v, want an empty locked report", rep, ok)
	}
}

func TestReports_UpdateValidation(t *testing.T) {
	r := NewReports()
	tests := []struct {
		field Field
		value string
	}{
		{Profit, "-1"},
		{Loss, "abc"},
	}
	for _, tc := range tests {
		applied, err := r.Update(1, tc.field, tc.value)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Update(%v, %q) error = %v, want ErrInvalidAmount", tc.field, tc.value, err)
		}
		if applied {
			t.Errorf("Update(%v, %q) applied", tc.field, tc.value)
		}
	}
	if r.Len() != 0 {
		t.Errorf("rejected updates created a report")
	}
	if _, err := r.Update(12, Note, "x"); err == nil {
		t.Error("Update() on month 12 should fail")
	}
}

func TestReports_UpdateClearsAmount(t *testing.T) {
	r := NewReports()
	mustUpdate(t, r, 2, Profit, "15.5")
	mustUpdate(t, r, 2, Profit, "")
	rep, _ := r.Get(2)
	if rep.Profit.Valid {
		t.Errorf("Profit = %v, want absent", rep.Profit)
	}
}

func TestParseField(t *testing.T) {
	for _, f := range []Field{Profit, Loss, Note} {
		got, err := ParseField(f.String())
		if err != nil || got != f {
			t.Errorf("ParseField(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseField("gain"); err == nil {
		t.Error("ParseField(gain) should fail")
	}
}

func mustUpdate(t *testing.T, r *Reports, month int, f Field, v string) {
	t.Helper()
	applied, err := r.Update(month, f, v)
	if err != nil || !applied {
		t.Fatalf("Update(%d, %v, %q) = %v, %v", month, f, v, applied, err)
	}
}
