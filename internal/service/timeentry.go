package service

import (
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/worktrail/backend/internal/model"
	"github.com/worktrail/backend/internal/policy"
	"github.com/worktrail/backend/pkg/keylock"
)

type TimeEntryService struct {
	db    *gorm.DB
	locks *keylock.KeyLock
}

func NewTimeEntryService(db *gorm.DB) *TimeEntryService {
	return &TimeEntryService{db: db, locks: keylock.New()}
}

type TimeEntryInput struct {
	ProjectID uint
	TaskID    *uint
	Hours     float64
	Billable  model.Billing
	WorkDate  string
	Note      string
}

// EntryFilter narrows time-entry listings; zero values mean no filter.
type EntryFilter struct {
	ProjectID *uint
	StartDate string
	EndDate   string
}

type TimeStats struct {
	TotalHours       float64 `json:"total_hours"`
	BillableHours    float64 `json:"billable_hours"`
	NonBillableHours float64 `json:"non_billable_hours"`
	EntryCount       int64   `json:"entry_count"`
}

func dayKey(userID uint, workDate string) string {
	return fmt.Sprintf("%d:%s", userID, workDate)
}

// Create logs hours for the acting user. The per-(user, work date)
// lock is held across the sum, the cap check and the insert so two
// concurrent submissions cannot both squeeze under the cap.
func (s *TimeEntryService) Create(actor *model.User, in TimeEntryInput) (*model.TimeEntry, error) {
	requested, err := policy.HoursToHundredths(in.Hours)
	if err != nil {
		return nil, err
	}
	if err := s.checkRefs(in); err != nil {
		return nil, err
	}

	key := dayKey(actor.ID, in.WorkDate)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	entry := &model.TimeEntry{
		UserID:    actor.ID,
		ProjectID: in.ProjectID,
		TaskID:    in.TaskID,
		Hours:     in.Hours,
		Billable:  in.Billable,
		WorkDate:  in.WorkDate,
		Note:      in.Note,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.sumDay(tx, actor.ID, in.WorkDate, 0)
		if err != nil {
			return err
		}
		if err := policy.CheckDailyCap(existing, requested); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Update rewrites an entry; only its author may. The cap re-check sums
// the target work date excluding this entry so its old hours do not
// double-count.
func (s *TimeEntryService) Update(actor *model.User, entryID uint, in TimeEntryInput) (*model.TimeEntry, error) {
	requested, err := policy.HoursToHundredths(in.Hours)
	if err != nil {
		return nil, err
	}

	entry, err := s.get(entryID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanModifyTimeEntry(actor.ID, entry.UserID); err != nil {
		return nil, err
	}
	if err := s.checkRefs(in); err != nil {
		return nil, err
	}

	key := dayKey(entry.UserID, in.WorkDate)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.sumDay(tx, entry.UserID, in.WorkDate, entry.ID)
		if err != nil {
			return err
		}
		if err := policy.CheckDailyCap(existing, requested); err != nil {
			return err
		}
		return tx.Model(entry).Updates(map[string]interface{}{
			"project_id": in.ProjectID,
			"task_id":    in.TaskID,
			"hours":      in.Hours,
			"billable":   in.Billable,
			"work_date":  in.WorkDate,
			"note":       in.Note,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.get(entryID)
}

func (s *TimeEntryService) Delete(actor *model.User, entryID uint) error {
	entry, err := s.get(entryID)
	if err != nil {
		return err
	}
	if err := policy.CanModifyTimeEntry(actor.ID, entry.UserID); err != nil {
		return err
	}
	return s.db.Delete(entry).Error
}

func (s *TimeEntryService) Get(actor *model.User, entryID uint) (*model.TimeEntry, error) {
	entry, err := s.get(entryID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanViewUserEntries(actor.ID, actor.Role, entry.UserID); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListForUser returns targetUserID's entries, newest work date first.
func (s *TimeEntryService) ListForUser(actor *model.User, targetUserID uint, f EntryFilter) ([]model.TimeEntry, error) {
	if err := policy.CanViewUserEntries(actor.ID, actor.Role, targetUserID); err != nil {
		return nil, err
	}
	query := s.db.Where("user_id = ?", targetUserID)
	return s.list(applyFilter(query, f))
}

// ListForProject returns a project's entries across all users.
func (s *TimeEntryService) ListForProject(actor *model.User, projectID uint, f EntryFilter) ([]model.TimeEntry, error) {
	var count int64
	s.db.Model(&model.Project{}).Where("id = ?", projectID).Count(&count)
	if count == 0 {
		return nil, fmt.Errorf("40402:project not found")
	}

	if err := policy.CanViewProjectEntries(actor.Role, s.isProjectOwner(projectID, actor.ID)); err != nil {
		return nil, err
	}
	query := s.db.Where("project_id = ?", projectID)
	return s.list(applyFilter(query, f))
}

// Stats summarizes the acting user's own entries over an optional
// date range.
func (s *TimeEntryService) Stats(userID uint, startDate, endDate string) (*TimeStats, error) {
	query := s.db.Model(&model.TimeEntry{}).Where("user_id = ?", userID)
	if startDate != "" {
		query = query.Where("work_date >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("work_date <= ?", endDate)
	}

	var row struct {
		TotalHours    float64
		BillableHours float64
		EntryCount    int64
	}
	err := query.Select(
		"COALESCE(SUM(hours), 0) AS total_hours, "+
			"COALESCE(SUM(CASE WHEN billable = ? THEN hours ELSE 0 END), 0) AS billable_hours, "+
			"COUNT(id) AS entry_count", model.Billable).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &TimeStats{
		TotalHours:       row.TotalHours,
		BillableHours:    row.BillableHours,
		NonBillableHours: row.TotalHours - row.BillableHours,
		EntryCount:       row.EntryCount,
	}, nil
}

func (s *TimeEntryService) get(entryID uint) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	if err := s.db.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40405:time entry not found")
		}
		return nil, err
	}
	return &entry, nil
}

// sumDay totals the user's hours for one work date in hundredths,
// excluding excludeID when editing that entry (0 excludes nothing).
func (s *TimeEntryService) sumDay(tx *gorm.DB, userID uint, workDate string, excludeID uint) (int64, error) {
	query := tx.Model(&model.TimeEntry{}).
		Where("user_id = ? AND work_date = ?", userID, workDate)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	var total float64
	if err := query.Select("COALESCE(SUM(hours), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return int64(math.Round(total * 100)), nil
}

func (s *TimeEntryService) checkRefs(in TimeEntryInput) error {
	var count int64
	s.db.Model(&model.Project{}).Where("id = ?", in.ProjectID).Count(&count)
	if count == 0 {
		return fmt.Errorf("40402:project not found")
	}
	if in.TaskID != nil {
		s.db.Model(&model.Task{}).Where("id = ?", *in.TaskID).Count(&count)
		if count == 0 {
			return fmt.Errorf("40404:task not found")
		}
	}
	return nil
}

func (s *TimeEntryService) isProjectOwner(projectID, userID uint) bool {
	var count int64
	s.db.Model(&model.ProjectOwner{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count)
	return count > 0
}

func (s *TimeEntryService) list(query *gorm.DB) ([]model.TimeEntry, error) {
	entries := make([]model.TimeEntry, 0)
	if err := query.Order("work_date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func applyFilter(query *gorm.DB, f EntryFilter) *gorm.DB {
	if f.ProjectID != nil {
		query = query.Where("project_id = ?", *f.ProjectID)
	}
	if f.StartDate != "" {
		query = query.Where("work_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		query = query.Where("work_date <= ?", f.EndDate)
	}
	return query
}
