package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last@sub.example.edu"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{"", "user", "user@", "@example.com", "user@example"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("short"); ok {
		t.Error("expected short password to be rejected")
	}
	if ok, reason := ValidatePassword("longenough"); !ok {
		t.Errorf("expected password to pass, got %q", reason)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  name\x00 "); got != "name" {
		t.Errorf("unexpected sanitized value %q", got)
	}
}
