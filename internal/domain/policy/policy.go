// Package policy holds the capability checks of the event workflow, keyed
// on the actor's role and department ownership.
package policy

import (
	"campustix/internal/domain"
	"campustix/internal/domain/entities"
)

// CanSuggest: any identified user may suggest an event.
func CanSuggest(a entities.Actor) error {
	if a.UserID == 0 {
		return domain.ErrNotAuthenticated
	}
	return nil
}

// CanCreate reports whether a may create an approved event for departmentID.
// Department admins only create for their own department.
func CanCreate(a entities.Actor, departmentID uint) error {
	if err := CanSuggest(a); err != nil {
		return err
	}
	switch {
	case a.IsSuperAdmin():
		return nil
	case a.Role == entities.RoleTeacher:
		if a.DepartmentID == 0 || a.DepartmentID != departmentID {
			return domain.ErrNotDepartmentAdmin
		}
		return nil
	default:
		return domain.ErrNotEventAdmin
	}
}

// CanReview covers approve and reject. Suggestions have no department yet,
// so any event admin may review them.
func CanReview(a entities.Actor, e *entities.Event) error {
	if err := CanSuggest(a); err != nil {
		return err
	}
	if !a.IsEventAdmin() {
		return domain.ErrNotEventAdmin
	}
	if e.DepartmentID != 0 && !a.IsSuperAdmin() && a.DepartmentID != e.DepartmentID {
		return domain.ErrNotDepartmentAdmin
	}
	return nil
}

// CanEdit covers edit and delete: the event's department admin or a super-admin.
func CanEdit(a entities.Actor, e *entities.Event) error {
	if err := CanSuggest(a); err != nil {
		return err
	}
	if a.IsSuperAdmin() {
		return nil
	}
	if a.Role != entities.RoleTeacher {
		return domain.ErrNotEventAdmin
	}
	if a.DepartmentID == 0 || a.DepartmentID != e.DepartmentID {
		return domain.ErrNotDepartmentAdmin
	}
	return nil
}
