package policy

import (
	"errors"
	"testing"

	"github.com/worktrail/backend/internal/model"
)

func TestCanCreateProject(t *testing.T) {
	cases := []struct {
		role model.Role
		want error
	}{
		{model.RoleAdmin, nil},
		{model.RoleManager, nil},
		{model.RoleUser, ErrRoleDenied},
	}
	for _, tc := range cases {
		if got := CanCreateProject(tc.role); !errors.Is(got, tc.want) {
			t.Errorf("CanCreateProject(%s) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestCanManageTasks(t *testing.T) {
	cases := []struct {
		name    string
		role    model.Role
		isOwner bool
		want    error
	}{
		{"admin non-owner", model.RoleAdmin, false, nil},
		{"manager owner", model.RoleManager, true, nil},
		{"manager non-owner", model.RoleManager, false, ErrNotProjectOwner},
		{"user owner", model.RoleUser, true, nil},
		{"user non-owner", model.RoleUser, false, ErrNotProjectOwner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanManageTasks(tc.role, tc.isOwner); !errors.Is(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanViewTaskLogs(t *testing.T) {
	if err := CanViewTaskLogs(model.RoleAdmin, false); err != nil {
		t.Errorf("admin should view logs: %v", err)
	}
	if err := CanViewTaskLogs(model.RoleUser, true); err != nil {
		t.Errorf("assignee should view logs: %v", err)
	}
	if err := CanViewTaskLogs(model.RoleManager, false); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("non-assignee manager got %v, want %v", err, ErrNotAuthorized)
	}
}

func TestCanViewUserEntries(t *testing.T) {
	if err := CanViewUserEntries(7, model.RoleUser, 7); err != nil {
		t.Errorf("own entries should be visible: %v", err)
	}
	if err := CanViewUserEntries(1, model.RoleManager, 7); err != nil {
		t.Errorf("manager should view others: %v", err)
	}
	if err := CanViewUserEntries(1, model.RoleUser, 7); !errors.Is(err, ErrEntryViewForbidden) {
		t.Errorf("plain user viewing others got %v, want %v", err, ErrEntryViewForbidden)
	}
}

func TestCanModifyTimeEntry(t *testing.T) {
	if err := CanModifyTimeEntry(3, 3); err != nil {
		t.Errorf("author should modify own entry: %v", err)
	}
	// Ownership is exclusive; even admins do not modify others' entries.
	if err := CanModifyTimeEntry(1, 3); !errors.Is(err, ErrNotEntryOwner) {
		t.Errorf("got %v, want %v", err, ErrNotEntryOwner)
	}
}

func TestVisibleProjectsDedup(t *testing.T) {
	got := VisibleProjects([]uint{3, 1, 2}, []uint{2, 4, 1, 4})
	want := []uint{3, 1, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestVisibleProjectsEmpty(t *testing.T) {
	if got := VisibleProjects(nil, nil); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}
