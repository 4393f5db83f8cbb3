package validator

import (
	"testing"

	"github.com/google/uuid"

	"go-storage-hub/internal/model"
)

func TestUUIDRequired(t *testing.T) {
	type payload struct {
		ID uuid.UUID `validate:"uuid_required"`
	}

	if errs := ValidateStruct(&payload{}); len(errs) == 0 {
		t.Error("nil UUID passed validation")
	}
	if errs := ValidateStruct(&payload{ID: uuid.New()}); len(errs) != 0 {
		t.Errorf("valid UUID rejected: %s %s", errs[0].FailedField, errs[0].Tag)
	}
}

func TestRoleRule(t *testing.T) {
	type payload struct {
		Role string `validate:"required,role"`
	}

	for _, role := range model.ValidRoles {
		if errs := ValidateStruct(&payload{Role: role}); len(errs) != 0 {
			t.Errorf("role %q rejected", role)
		}
	}
	for _, role := range []string{"root", "Superadmin", "storage master", ""} {
		if errs := ValidateStruct(&payload{Role: role}); len(errs) == 0 {
			t.Errorf("role %q passed validation", role)
		}
	}
}
