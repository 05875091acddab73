package db

import (
	"testing"

	"github.com/jotpad/jot/internal/errors"
)

func TestSetAndGetSetting(t *testing.T) {
	database := initTestDB(t)

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
}

func TestSetSetting_Overwrites(t *testing.T) {
	database := initTestDB(t)

	if err := SetSetting(database, "theme", "dark"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := SetSetting(database, "theme", "light"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}

	value, _ := GetSetting(database, "theme")
	if value != "light" {
		t.Errorf("value = %q, want light after overwrite", value)
	}
}

func TestGetSetting_NotFound(t *testing.T) {
	database := initTestDB(t)

	_, err := GetSetting(database, "missing")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetSetting should return ErrNotFound, got: %v", err)
	}
}

func TestListSettings_SortedByKey(t *testing.T) {
	database := initTestDB(t)
	for key, value := range map[string]string{"zoom": "1.5", "theme": "dark", "autosave": "on"} {
		if err := SetSetting(database, key, value); err != nil {
			t.Fatalf("SetSetting failed: %v", err)
		}
	}

	settings, err := ListSettings(database)
	if err != nil {
		t.Fatalf("ListSettings failed: %v", err)
	}
	if len(settings) != 3 {
		t.Fatalf("len = %d, want 3", len(settings))
	}
	want := []string{"autosave", "theme", "zoom"}
	for i := range want {
		if settings[i].Key != want[i] {
			t.Fatalf("order = %v..., want %v", settings[i].Key, want)
		}
	}
}
