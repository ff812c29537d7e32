package postgres

import (
	"fmt"
	"time"

	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
	"gorm.io/gorm"
)

// RecordsRepository implements records.Repository using GORM, dispatching
// exhaustively on the table kind.
type RecordsRepository struct {
	db *gorm.DB
}

func NewRecordsRepository(db *gorm.DB) records.Repository {
	return &RecordsRepository{db: db}
}

func (r *RecordsRepository) ListDeleted(table rbac.TableKind) ([]records.DeletedRecord, error) {
	switch table {
	case rbac.TableEmployee:
		return r.listDeletedEmployees()
	case rbac.TableJob:
		return r.listDeletedJobs()
	case rbac.TableDepartment:
		return r.listDeletedDepartments()
	case rbac.TableJobHistory:
		return r.listDeletedHistory()
	}
	return nil, fmt.Errorf("unhandled table kind %v", table)
}

func (r *RecordsRepository) listDeletedEmployees() ([]records.DeletedRecord, error) {
	var rows []hrDatamodel.Employee
	if err := r.deletedQuery().Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]records.DeletedRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, records.DeletedRecord{
			ID:          row.EmpNo,
			DisplayName: fmt.Sprintf("%s %s (%s)", deref(row.FirstName), deref(row.LastName), row.EmpNo),
			TableName:   rbac.TableEmployee.String(),
			DeletedAt:   row.Stamp,
		})
	}
	return out, nil
}

func (r *RecordsRepository) listDeletedJobs() ([]records.DeletedRecord, error) {
	var rows []hrDatamodel.Job
	if err := r.deletedQuery().Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]records.DeletedRecord, 0, len(rows))
	for _, row := range rows {
		name := row.JobCode
		if row.JobDesc != nil && *row.JobDesc != "" {
			name = *row.JobDesc
		}
		out = append(out, records.DeletedRecord{
			ID:          row.JobCode,
			DisplayName: fmt.Sprintf("%s (%s)", name, row.JobCode),
			TableName:   rbac.TableJob.String(),
			DeletedAt:   row.Stamp,
		})
	}
	return out, nil
}

func (r *RecordsRepository) listDeletedDepartments() ([]records.DeletedRecord, error) {
	var rows []hrDatamodel.Department
	if err := r.deletedQuery().Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]records.DeletedRecord, 0, len(rows))
	for _, row := range rows {
		name := row.DeptCode
		if row.DeptName != nil && *row.DeptName != "" {
			name = *row.DeptName
		}
		out = append(out, records.DeletedRecord{
			ID:          row.DeptCode,
			DisplayName: fmt.Sprintf("%s (%s)", name, row.DeptCode),
			TableName:   rbac.TableDepartment.String(),
			DeletedAt:   row.Stamp,
		})
	}
	return out, nil
}

func (r *RecordsRepository) listDeletedHistory() ([]records.DeletedRecord, error) {
	var rows []hrDatamodel.JobHistory
	if err := r.deletedQuery().Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]records.DeletedRecord, 0, len(rows))
	for _, row := range rows {
		key := records.HistoryKey{EmpNo: row.EmpNo, JobCode: row.JobCode, EffDate: row.EffDate}
		out = append(out, records.DeletedRecord{
			ID:          key.String(),
			DisplayName: fmt.Sprintf("Employee: %s, Job: %s, Date: %s", row.EmpNo, row.JobCode, row.EffDate.Format("2006-01-02")),
			TableName:   rbac.TableJobHistory.String(),
			DeletedAt:   row.Stamp,
		})
	}
	return out, nil
}

func (r *RecordsRepository) deletedQuery() *gorm.DB {
	return r.db.Where("status = ?", hrDatamodel.StatusDeleted).Order("stamp DESC")
}

// Restore flips a DELETED row to RESTORED. The status predicate in the WHERE
// clause makes the transition a no-op for active rows, which is reported as
// ErrRecordNotDeleted rather than silently succeeding.
func (r *RecordsRepository) Restore(table rbac.TableKind, recordID string, stamp time.Time) error {
	updates := map[string]interface{}{
		"status": hrDatamodel.StatusRestored,
		"stamp":  stamp,
	}

	var tx *gorm.DB
	switch table {
	case rbac.TableEmployee:
		tx = r.db.Model(&hrDatamodel.Employee{}).
			Where("empno = ? AND status = ?", recordID, hrDatamodel.StatusDeleted).
			Updates(updates)
	case rbac.TableJob:
		tx = r.db.Model(&hrDatamodel.Job{}).
			Where("jobcode = ? AND status = ?", recordID, hrDatamodel.StatusDeleted).
			Updates(updates)
	case rbac.TableDepartment:
		tx = r.db.Model(&hrDatamodel.Department{}).
			Where("deptcode = ? AND status = ?", recordID, hrDatamodel.StatusDeleted).
			Updates(updates)
	case rbac.TableJobHistory:
		key, err := records.ParseHistoryKey(recordID)
		if err != nil {
			return err
		}
		tx = r.db.Model(&hrDatamodel.JobHistory{}).
			Where("empno = ? AND jobcode = ? AND effdate = ? AND status = ?",
				key.EmpNo, key.JobCode, key.EffDate, hrDatamodel.StatusDeleted).
			Updates(updates)
	default:
		return fmt.Errorf("unhandled table kind %v", table)
	}

	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return records.ErrRecordNotDeleted
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
