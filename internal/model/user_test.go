package model

import "testing"

func TestIsValidRole(t *testing.T) {
	for _, role := range ValidRoles {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false, want true", role)
		}
	}

	for _, role := range []string{"", "root", "Superadmin", "storage master"} {
		if IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = true, want false", role)
		}
	}
}

func TestRoleRequiresDepartment(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleSuperadmin, false},
		{RoleAdmin, false},
		{RoleManager, true},
		{RoleStorageMaster, true},
		{RoleStorageMasterManager, true},
		{RoleStorageManager, true},
		{RoleUser, true},
	}

	for _, tt := range tests {
		if got := RoleRequiresDepartment(tt.role); got != tt.want {
			t.Errorf("RoleRequiresDepartment(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestUserPassword(t *testing.T) {
	user := &User{}
	if err := user.SetPassword("s3cret-pass"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	if user.Password == "s3cret-pass" {
		t.Error("password stored in plain text")
	}
	if !user.CheckPassword("s3cret-pass") {
		t.Error("CheckPassword rejected the correct password")
	}
	if user.CheckPassword("wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}
}
