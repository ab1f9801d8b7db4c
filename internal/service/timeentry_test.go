package service

import (
	"sync"
	"testing"

	"github.com/worktrail/backend/internal/model"
)

func entryInput(projectID uint, hours float64, date string) TimeEntryInput {
	return TimeEntryInput{
		ProjectID: projectID,
		Hours:     hours,
		Billable:  model.Billable,
		WorkDate:  date,
	}
}

func TestDailyCapOnCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewTimeEntryService(db)

	manager := seedUser(t, db, "manager@example.com", model.RoleManager)
	worker := seedUser(t, db, "worker@example.com", model.RoleUser)
	project := seedProject(t, db, "proj", manager.ID)

	// 4.0 + 2.5 = 6.5 logged.
	for _, h := range []float64{4.0, 2.5} {
		if _, err := svc.Create(worker, entryInput(project.ID, h, "2025-03-10")); err != nil {
			t.Fatalf("create %v: %v", h, err)
		}
	}

	// 6.5 + 2.0 = 8.5 > 8: rejected.
	if _, err := svc.Create(worker, entryInput(project.ID, 2.0, "2025-03-10")); !hasCode(err, "40902") {
		t.Fatalf("over-cap create got %v, want 40902", err)
	}

	// 6.5 + 1.5 = exactly 8.0: allowed.
	if _, err := svc.Create(worker, entryInput(project.ID, 1.5, "2025-03-10")); err != nil {
		t.Fatalf("boundary create: %v", err)
	}

	// A different date starts from zero.
	if _, err := svc.Create(worker, entryInput(project.ID, 8, "2025-03-11")); err != nil {
		t.Fatalf("next day create: %v", err)
	}

	// Another user's hours never count against this one.
	if _, err := svc.Create(manager, entryInput(project.ID, 8, "2025-03-10")); err != nil {
		t.Fatalf("other user create: %v", err)
	}
}

func TestDailyCapOnUpdateExcludesOwnHours(t *testing.T) {
	db := newTestDB(t)
	svc := NewTimeEntryService(db)

	manager := seedUser(t, db, "manager@example.com", model.RoleManager)
	worker := seedUser(t, db, "worker@example.com", model.RoleUser)
	project := seedProject(t, db, "proj", manager.ID)

	if _, err := svc.Create(worker, entryInput(project.ID, 5, "2025-03-10")); err != nil {
		t.Fatalf("create 5h: %v", err)
	}
	entry, err := svc.Create(worker, entryInput(project.ID, 3, "2025-03-10"))
	if err != nil {
		t.Fatalf("create 3h: %v", err)
	}

	// Other entries sum to 5; growing 3 -> 4 would make 9 > 8.
	if _, err := svc.Update(worker, entry.ID, entryInput(project.ID, 4, "2025-03-10")); !hasCode(err, "40902") {
		t.Fatalf("5 + edit 3->4 got %v, want 40902", err)
	}

	// Re-saving the same 3 hours must pass: without exclusion the
	// check would wrongly compute 5+3+3=11.
	if _, err := svc.Update(worker, entry.ID, entryInput(project.ID, 3, "2025-03-10")); err != nil {
		t.Fatalf("resave same hours: %v", err)
	}

	// Shrinking is always fine.
	updated, err := svc.Update(worker, entry.ID, entryInput(project.ID, 2.5, "2025-03-10"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Hours != 2.5 {
		t.Errorf("hours = %v, want 2.5", updated.Hours)
	}

	// Moving the entry to another date checks that date's total.
	if _, err := svc.Create(worker, entryInput(project.ID, 7, "2025-03-11")); err != nil {
		t.Fatalf("seed next day: %v", err)
	}
	if _, err := svc.Update(worker, entry.ID, entryInput(project.ID, 3, "2025-03-11")); !hasCode(err, "40902") {
		t.Fatalf("moving into a full day got %v, want 40902", err)
	}
}

func TestTimeEntryValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTimeEntryService(db)

	manager := seedUser(t, db, "manager@example.com", model.RoleManager)
	project := seedProject(t, db, "proj", manager.ID)

	if _, err := svc.Create(manager, entryInput(project.ID, -1, "2025-03-10")); !hasCode(err, "40003") {
		t.Fatalf("negative hours got %v, want 40003", err)
	}
	if _, err := svc.Create(manager, entryInput(project.ID, 1.234, "2025-03-10")); !hasCode(err, "40003") {
		t.Fatalf("3dp hours got %v, want 40003", err)
	}
	if _, err := svc.Create(manager, entryInput(9999, 1, "2025-03-10")); !hasCode(err, "40402") {
		t.Fatalf("unknown project got %v, want 40402", err)
	}

	missingTask := uint(9999)
	in := entryInput(project.ID, 1, "2025-03-10")
	in.TaskID = &missingTask
	if _, err := svc.Create(manager, in); !hasCode(err, "40404") {
		t.Fatalf("unknown task got %v, want 40404", err)
	}
}

func TestTimeEntryOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewTimeEntryService(db)

	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	manager := seedUser(t, db, "manager@example.com", model.RoleManager)
	worker := seedUser(t, db, "worker@example.com", model.RoleUser)
	other := seedUser(t, db, "other@example.com", model.RoleUser)
	project := seedProject(t, db, "proj", manager.ID)

	entry, err := svc.Create(worker, entryInput(project.ID, 2, "2025-03-10"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Entries belong exclusively to their author; even admins cannot
	// rewrite or remove someone else's hours.
	if _, err := svc.Update(admin, entry.ID, entryInput(project.ID, 1, "2025-03-10")); !hasCode(err, "40303") {
		t.Fatalf("admin update got %v, want 40303", err)
	}
	if err := svc.Delete(admin, entry.ID); !hasCode(err, "40303") {
		t.Fatalf("admin delete got %v, want 40303", err)
	}

	// Admins and managers may view; unrelated users may not.
	if _, err := svc.Get(admin, entry.ID); err != nil {
		t.Fatalf("admin view: %v", err)
	}
	if _, err := svc.ListForUser(manager, worker.ID, EntryFilter{}); err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if _, err := svc.ListForUser(other, worker.ID, EntryFilter{}); !hasCode(err, "40303") {
		t.Fatalf("peer list got %v, want 40303", err)
	}

	if err := svc.Delete(worker, entry.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.Delete(worker, entry.ID); !hasCode(err, "40405") {
		t.Fatalf("double delete got %v, want 40405", err)
	}
}

func TestProjectEntriesAccess(t *testing.T) {
	db := newTestDB(t)
	svc := NewTimeEntryService(db)

	manager := seedUser(t, db, "manager@example.com", model.RoleManager)
	owner := seedUser(t, db, "owner@example.com", model.RoleUser)
	outsider := seedUser(t, db, "outsider@example.com", model.RoleUser)
	project := seedProject(t, db, "proj", owner.ID)

	if _, err := svc.Create(owner, entryInput(project.ID, 3, "2025-03-10")); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.ListForProject(outsider, project.ID, EntryFilter{}); !hasCode(err, "40303") {
		t.Fatalf("outsider got %v, want 40303", err)
	}
	for _, actor := range []*model.User{manager, owner} {
		entries, err := svc.ListForProject(actor, project.ID, EntryFilter{})
		if err != nil {
			t.Fatalf("%s list: %v", actor.Email, err)
		}
		if len(entries) != 1 {
			t.Fatalf("%s sees %d entries, want 1", actor.Email, len(entries))
		}
	}

	if _, err := svc.ListForProject(manager, 9999, EntryFilter{}); !hasCode(err, "40402") {
		t.Fatalf("missing project got %v, want 40402", err)
	}
}

func TestTimeEntryFiltersAndStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewTimeEntryService(db)

	manager := seedUser(t, db, "manager@example.com", model.RoleManager)
	p1 := seedProject(t, db, "p1", manager.ID)
	p2 := seedProject(t, db, "p2", manager.ID)

	in := entryInput(p1.ID, 3, "2025-03-10")
	if _, err := svc.Create(manager, in); err != nil {
		t.Fatalf("create: %v", err)
	}
	in = entryInput(p2.ID, 2, "2025-03-12")
	in.Billable = model.NonBillable
	if _, err := svc.Create(manager, in); err != nil {
		t.Fatalf("create: %v", err)
	}

	entries, err := svc.ListForUser(manager, manager.ID, EntryFilter{ProjectID: &p1.ID})
	if err != nil {
		t.Fatalf("filter by project: %v", err)
	}
	if len(entries) != 1 || entries[0].ProjectID != p1.ID {
		t.Fatalf("project filter returned %d entries", len(entries))
	}

	entries, err = svc.ListForUser(manager, manager.ID, EntryFilter{StartDate: "2025-03-11"})
	if err != nil {
		t.Fatalf("filter by date: %v", err)
	}
	if len(entries) != 1 || entries[0].WorkDate != "2025-03-12" {
		t.Fatalf("date filter returned %d entries", len(entries))
	}

	stats, err := svc.Stats(manager.ID, "", "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalHours != 5 || stats.BillableHours != 3 || stats.NonBillableHours != 2 || stats.EntryCount != 2 {
		t.Fatalf("stats = %+v", stats)
	}

	stats, err = svc.Stats(manager.ID, "2025-03-11", "2025-03-12")
	if err != nil {
		t.Fatalf("ranged stats: %v", err)
	}
	if stats.TotalHours != 2 || stats.EntryCount != 1 {
		t.Fatalf("ranged stats = %+v", stats)
	}
}

// Two concurrent submissions that individually fit under the cap but
// jointly exceed it must not both commit.
func TestDailyCapConcurrentCreates(t *testing.T) {
	db := newTestDB(t)
	svc := NewTimeEntryService(db)

	manager := seedUser(t, db, "manager@example.com", model.RoleManager)
	worker := seedUser(t, db, "worker@example.com", model.RoleUser)
	project := seedProject(t, db, "proj", manager.ID)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(worker, entryInput(project.ID, 5, "2025-03-10"))
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case hasCode(err, "40902"):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || rejected != 1 {
		t.Fatalf("ok=%d rejected=%d, want exactly one of each", ok, rejected)
	}
}
