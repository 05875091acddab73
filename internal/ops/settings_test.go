package ops

import (
	"testing"

	"github.com/jotpad/jot/internal/errors"
)

func TestSettings_RoundTrip(t *testing.T) {
	database, _ := newTestStore(t)

	if err := SetSetting(database, "theme", "dark"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	value, err := GetSetting(database, "theme")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if value != "dark" {
		t.Errorf("value = %q, want dark", value)
	}

	if err := SetSetting(database, "theme", "light"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	value, _ = GetSetting(database, "theme")
	if value != "light" {
		t.Errorf("value = %q, want light", value)
	}
}

func TestSettings_BlankKey(t *testing.T) {
	database, _ := newTestStore(t)

	if err := SetSetting(database, " ", "v"); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("blank key should return ErrValidation, got: %v", err)
	}
	if _, err := GetSetting(database, ""); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("blank key should return ErrValidation, got: %v", err)
	}
}

func TestSettings_NotInExport(t *testing.T) {
	database, _ := newTestStore(t)
	if err := SetSetting(database, "theme", "dark"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}

	dataset, err := BuildDataset(database)
	if err != nil {
		t.Fatalf("BuildDataset failed: %v", err)
	}
	if len(dataset.Folders) != 0 || len(dataset.Notes) != 0 || len(dataset.Versions) != 0 {
		t.Errorf("dataset = %+v, want empty (settings stay local)", dataset)
	}
}
