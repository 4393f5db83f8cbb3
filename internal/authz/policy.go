// Package authz consolidates every role, department and ownership rule the
// request state machine enforces. Rules are defined per transition and tested
// independently of routing; no role has blanket access, superadmin appears in
// each allow set explicitly rather than bypassing checks.
package authz

import (
	"github.com/google/uuid"

	"go-storage-hub/internal/model"
)

// Actor is the authenticated identity invoking a transition.
type Actor struct {
	UserID       uuid.UUID
	Role         string
	DepartmentID *uuid.UUID
}

// Target carries the scoping data of the entity being acted on.
type Target struct {
	OwnerID           uuid.UUID
	OwnerDepartmentID *uuid.UUID
}

// Transition identifies a gated state-machine operation.
type Transition string

const (
	IntakeApprove Transition = "intake:approve"
	IntakeReject  Transition = "intake:reject"
	IntakeList    Transition = "intake:list"

	BorrowManagerApprove Transition = "borrow:manager_approve"
	BorrowManagerReject  Transition = "borrow:manager_reject"
	BorrowStorageApprove Transition = "borrow:storage_approve"
	BorrowStorageReject  Transition = "borrow:storage_reject"
	BorrowLegacyReject   Transition = "borrow:legacy_reject"
	BorrowRequestReturn  Transition = "borrow:request_return"
	BorrowApproveReturn  Transition = "borrow:approve_return"
	BorrowReceive        Transition = "borrow:receive"

	ClearanceCreate         Transition = "clearance:create"
	ClearanceRevertSeeding  Transition = "clearance:revert_seeding"
	ClearanceRevertQuantity Transition = "clearance:revert_quantity"
	ClearanceListSeeding    Transition = "clearance:list_seeding"
)

func roleIn(role string, allowed ...string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func sameDepartment(a, b *uuid.UUID) bool {
	return a != nil && b != nil && *a == *b
}

// CanPerform reports whether the actor may invoke the transition on the
// target. Unknown transitions and unknown roles fail-closed.
func CanPerform(actor Actor, transition Transition, target Target) bool {
	switch transition {
	case IntakeApprove, IntakeReject:
		return roleIn(actor.Role,
			model.RoleSuperadmin, model.RoleStorageMaster, model.RoleStorageMasterManager)

	case IntakeList, ClearanceListSeeding:
		return roleIn(actor.Role,
			model.RoleSuperadmin, model.RoleStorageMaster,
			model.RoleStorageMasterManager, model.RoleStorageManager)

	case BorrowManagerApprove, BorrowManagerReject:
		if actor.Role == model.RoleSuperadmin {
			return true
		}
		// Department-scoped: a manager may only decide requests from
		// requesters in their own department.
		return actor.Role == model.RoleManager &&
			sameDepartment(actor.DepartmentID, target.OwnerDepartmentID)

	case BorrowStorageApprove, BorrowStorageReject:
		return roleIn(actor.Role,
			model.RoleSuperadmin, model.RoleStorageMaster, model.RoleStorageMasterManager)

	case BorrowLegacyReject:
		return roleIn(actor.Role,
			model.RoleSuperadmin, model.RoleAdmin, model.RoleManager)

	case BorrowRequestReturn:
		// Ownership-scoped: a user may return only their own borrow.
		if actor.UserID != uuid.Nil && actor.UserID == target.OwnerID {
			return true
		}
		return roleIn(actor.Role, model.RoleSuperadmin, model.RoleAdmin)

	case BorrowApproveReturn, BorrowReceive:
		return roleIn(actor.Role, model.RoleSuperadmin, model.RoleAdmin)

	case ClearanceCreate:
		return roleIn(actor.Role,
			model.RoleSuperadmin, model.RoleStorageMaster,
			model.RoleStorageMasterManager, model.RoleStorageManager)

	case ClearanceRevertSeeding:
		return actor.Role == model.RoleSuperadmin

	case ClearanceRevertQuantity:
		return roleIn(actor.Role,
			model.RoleSuperadmin, model.RoleStorageMaster, model.RoleStorageManager)
	}

	return false
}
