package model

import "testing"

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role     string
		minimum  string
		expected bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleStaff, true},
		{RoleStaff, RoleAdmin, false},
		{RoleStaff, RoleStaff, true},
		// Unknown roles fail-closed.
		{"unknown", RoleStaff, false},
		{RoleAdmin, "unknown", false},
		{"", "", false},
		{"", RoleStaff, false},
	}

	for _, tt := range tests {
		got := RoleAtLeast(tt.role, tt.minimum)
		if got != tt.expected {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tt.role, tt.minimum, got, tt.expected)
		}
	}
}

func TestCanMutate(t *testing.T) {
	if !CanMutate(RoleAdmin) {
		t.Error("admin should have full access")
	}
	if CanMutate(RoleStaff) {
		t.Error("staff should be view-only")
	}
	if CanMutate("") {
		t.Error("empty role should be view-only")
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

func TestUserInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "U"},
		{"admin", "A"},
		{"Admin User", "AU"},
		{"  mary  jane  watson ", "MW"},
	}
	for _, tt := range tests {
		got := User{Name: tt.name}.Initials()
		if got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
