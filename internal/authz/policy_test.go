package authz

import (
	"testing"

	"github.com/google/uuid"

	"go-storage-hub/internal/model"
)

func TestCanPerformRoleGates(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		transition Transition
		want       bool
	}{
		// Intake decisions are storage-side only.
		{"storage master approves intake", model.RoleStorageMaster, IntakeApprove, true},
		{"storage master manager rejects intake", model.RoleStorageMasterManager, IntakeReject, true},
		{"superadmin approves intake", model.RoleSuperadmin, IntakeApprove, true},
		{"plain user cannot approve intake", model.RoleUser, IntakeApprove, false},
		{"manager cannot approve intake", model.RoleManager, IntakeApprove, false},
		{"admin cannot approve intake", model.RoleAdmin, IntakeApprove, false},

		// Intake listing includes the storage manager.
		{"storage manager lists intake", model.RoleStorageManager, IntakeList, true},
		{"user cannot list intake", model.RoleUser, IntakeList, false},

		// Storage gate of the dual-approval pipeline.
		{"storage master storage-approves", model.RoleStorageMaster, BorrowStorageApprove, true},
		{"storage master storage-rejects", model.RoleStorageMaster, BorrowStorageReject, true},
		{"manager cannot storage-approve", model.RoleManager, BorrowStorageApprove, false},
		{"storage manager cannot storage-approve", model.RoleStorageManager, BorrowStorageApprove, false},

		// Legacy reject and return handling.
		{"admin legacy-rejects", model.RoleAdmin, BorrowLegacyReject, true},
		{"manager legacy-rejects", model.RoleManager, BorrowLegacyReject, true},
		{"user cannot legacy-reject", model.RoleUser, BorrowLegacyReject, false},
		{"admin approves return", model.RoleAdmin, BorrowApproveReturn, true},
		{"admin receives item", model.RoleAdmin, BorrowReceive, true},
		{"storage master cannot approve return", model.RoleStorageMaster, BorrowApproveReturn, false},

		// Clearance.
		{"storage manager creates clearance", model.RoleStorageManager, ClearanceCreate, true},
		{"storage master creates clearance", model.RoleStorageMaster, ClearanceCreate, true},
		{"user cannot create clearance", model.RoleUser, ClearanceCreate, false},
		{"superadmin reverts seeding", model.RoleSuperadmin, ClearanceRevertSeeding, true},
		{"admin cannot revert seeding", model.RoleAdmin, ClearanceRevertSeeding, false},
		{"storage master cannot revert seeding", model.RoleStorageMaster, ClearanceRevertSeeding, false},
		{"storage master reverts quantity", model.RoleStorageMaster, ClearanceRevertQuantity, true},
		{"storage manager lists seeding", model.RoleStorageManager, ClearanceListSeeding, true},

		// Fail closed.
		{"unknown role denied", "auditor", IntakeApprove, false},
		{"empty role denied", "", ClearanceCreate, false},
		{"unknown transition denied", model.RoleSuperadmin, Transition("borrow:teleport"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := Actor{UserID: uuid.New(), Role: tt.role}
			if got := CanPerform(actor, tt.transition, Target{}); got != tt.want {
				t.Errorf("CanPerform(%q, %q) = %v, want %v", tt.role, tt.transition, got, tt.want)
			}
		})
	}
}

func TestCanPerformManagerDepartmentScope(t *testing.T) {
	deptA := uuid.New()
	deptB := uuid.New()

	tests := []struct {
		name      string
		actor     Actor
		ownerDept *uuid.UUID
		want      bool
	}{
		{
			name:      "manager same department",
			actor:     Actor{Role: model.RoleManager, DepartmentID: &deptA},
			ownerDept: &deptA,
			want:      true,
		},
		{
			name:      "manager other department",
			actor:     Actor{Role: model.RoleManager, DepartmentID: &deptA},
			ownerDept: &deptB,
			want:      false,
		},
		{
			name:      "manager without department",
			actor:     Actor{Role: model.RoleManager},
			ownerDept: &deptA,
			want:      false,
		},
		{
			name:      "requester without department",
			actor:     Actor{Role: model.RoleManager, DepartmentID: &deptA},
			ownerDept: nil,
			want:      false,
		},
		{
			name:      "superadmin crosses departments",
			actor:     Actor{Role: model.RoleSuperadmin},
			ownerDept: &deptB,
			want:      true,
		},
		{
			name:      "admin is not a manager gate role",
			actor:     Actor{Role: model.RoleAdmin, DepartmentID: &deptA},
			ownerDept: &deptA,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := Target{OwnerDepartmentID: tt.ownerDept}
			for _, transition := range []Transition{BorrowManagerApprove, BorrowManagerReject} {
				if got := CanPerform(tt.actor, transition, target); got != tt.want {
					t.Errorf("CanPerform(%s) = %v, want %v", transition, got, tt.want)
				}
			}
		})
	}
}

func TestCanPerformReturnOwnership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"owner returns own borrow", Actor{UserID: owner, Role: model.RoleUser}, true},
		{"stranger cannot return", Actor{UserID: stranger, Role: model.RoleUser}, false},
		{"superadmin returns any borrow", Actor{UserID: stranger, Role: model.RoleSuperadmin}, true},
		{"admin returns any borrow", Actor{UserID: stranger, Role: model.RoleAdmin}, true},
		{"nil actor id never matches", Actor{Role: model.RoleUser}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := Target{OwnerID: owner}
			if got := CanPerform(tt.actor, BorrowRequestReturn, target); got != tt.want {
				t.Errorf("CanPerform(BorrowRequestReturn) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanPerformNilOwnerTarget(t *testing.T) {
	// A target with a nil owner must never match an actor with a nil UUID.
	actor := Actor{Role: model.RoleUser}
	if CanPerform(actor, BorrowRequestReturn, Target{}) {
		t.Error("nil-UUID actor matched nil-UUID owner")
	}
}
