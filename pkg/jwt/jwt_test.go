package jwt

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()
	deptID := uuid.New()

	token, err := GenerateToken(userID, "jane@example.com", "Jane Doe", "manager", &deptID, "v1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "manager" {
		t.Errorf("Role = %q, want manager", claims.Role)
	}
	if claims.DepartmentID == nil || *claims.DepartmentID != deptID {
		t.Errorf("DepartmentID = %v, want %v", claims.DepartmentID, deptID)
	}
	if claims.TokenVersion != "v1" {
		t.Errorf("TokenVersion = %q, want v1", claims.TokenVersion)
	}
}

func TestGenerateTokenWithoutDepartment(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "root@example.com", "Root", "superadmin", nil, "v1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.DepartmentID != nil {
		t.Errorf("DepartmentID = %v, want nil", claims.DepartmentID)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) succeeded, want error", token)
		}
	}
}
