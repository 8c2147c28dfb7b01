package model

import "testing"

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role     string
		minimum  string
		expected bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleUser, true},
		{RoleUser, RoleAdmin, false},
		{RoleUser, RoleUser, true},
		// Unknown roles fail-closed.
		{"unknown", RoleUser, false},
		{RoleAdmin, "unknown", false},
		{"", "", false},
		{"", RoleUser, false},
	}

	for _, tt := range tests {
		got := RoleAtLeast(tt.role, tt.minimum)
		if got != tt.expected {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tt.role, tt.minimum, got, tt.expected)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}

func TestItemState(t *testing.T) {
	owner := int64(7)
	tracked := Item{OwnerID: &owner}
	if tracked.State() != StateTracked {
		t.Errorf("expected tracked, got %q", tracked.State())
	}

	missing := Item{Reported: true}
	if missing.State() != StateMissing {
		t.Errorf("expected missing, got %q", missing.State())
	}
}

func TestPrimaryImage(t *testing.T) {
	var empty Item
	if empty.PrimaryImage() != nil {
		t.Error("expected no primary image for item without images")
	}

	item := Item{Images: []ItemImage{{Position: 0, Ref: "a.jpg"}, {Position: 1, Ref: "b.jpg"}}}
	if got := item.PrimaryImage(); got == nil || got.Ref != "a.jpg" {
		t.Errorf("expected first image as primary, got %+v", got)
	}
}
