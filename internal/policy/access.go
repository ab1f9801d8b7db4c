// Package policy holds the authorization and time-accounting rules.
// Functions here are pure: callers fetch the facts (role, ownership,
// assignment, existing hour totals) and policy only decides. Denials
// are coded errors in the handler convention ("NNNNN:message") so the
// HTTP layer can map them without inspecting types.
package policy

import (
	"errors"

	"github.com/worktrail/backend/internal/model"
)

var (
	ErrRoleDenied         = errors.New("40301:admin or manager role required")
	ErrNotProjectOwner    = errors.New("40302:not project owner")
	ErrNotAuthorized      = errors.New("40303:not authorized")
	ErrNotEntryOwner      = errors.New("40303:not authorized to modify this time entry")
	ErrEntryViewForbidden = errors.New("40303:not authorized to view these time entries")
)

// CanCreateProject allows admins and managers. The caller records the
// creator as the project's first owner on success.
func CanCreateProject(role model.Role) error {
	if role == model.RoleAdmin || role == model.RoleManager {
		return nil
	}
	return ErrRoleDenied
}

// CanManageTasks gates task creation and assignee changes under a
// project: admins always, otherwise only owners of that project.
func CanManageTasks(role model.Role, isOwner bool) error {
	if role == model.RoleAdmin || isOwner {
		return nil
	}
	return ErrNotProjectOwner
}

// CanViewTaskLogs allows admins and assignees of the task.
func CanViewTaskLogs(role model.Role, isAssignee bool) error {
	if role == model.RoleAdmin || isAssignee {
		return nil
	}
	return ErrNotAuthorized
}

// CanListUsers allows admins and managers.
func CanListUsers(role model.Role) error {
	if role == model.RoleAdmin || role == model.RoleManager {
		return nil
	}
	return ErrRoleDenied
}

// CanViewUserEntries decides whether actor may list entries logged by
// target. Everyone may view their own; admins and managers may view
// anyone's.
func CanViewUserEntries(actorID uint, role model.Role, targetUserID uint) error {
	if actorID == targetUserID {
		return nil
	}
	if role == model.RoleAdmin || role == model.RoleManager {
		return nil
	}
	return ErrEntryViewForbidden
}

// CanViewProjectEntries decides whether actor may list a project's
// entries: admins, managers, or owners of that project.
func CanViewProjectEntries(role model.Role, isOwner bool) error {
	if role == model.RoleAdmin || role == model.RoleManager || isOwner {
		return nil
	}
	return ErrEntryViewForbidden
}

// CanModifyTimeEntry restricts update and delete to the user who
// logged the entry. Admins do not bypass this: entries belong
// exclusively to their author.
func CanModifyTimeEntry(actorID, entryUserID uint) error {
	if actorID == entryUserID {
		return nil
	}
	return ErrNotEntryOwner
}

// VisibleProjects returns the deduplicated union of projects the user
// owns and projects containing a task assigned to the user. Set
// arithmetic over two independently fetched id slices keeps the rule
// independent of any SQL dialect's UNION/DISTINCT behavior.
func VisibleProjects(owned, assignedVia []uint) []uint {
	seen := make(map[uint]struct{}, len(owned)+len(assignedVia))
	out := make([]uint, 0, len(owned)+len(assignedVia))
	for _, ids := range [][]uint{owned, assignedVia} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
