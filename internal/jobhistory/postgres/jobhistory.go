package postgres

import (
	"time"

	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"github.com/frahmantamala/hr-management/internal/jobhistory"
	"github.com/frahmantamala/hr-management/internal/records"
	"gorm.io/gorm"
)

type JobHistoryRepository struct {
	db *gorm.DB
}

func NewJobHistoryRepository(db *gorm.DB) *JobHistoryRepository {
	return &JobHistoryRepository{db: db}
}

func (r *JobHistoryRepository) ListByEmployee(empno string, includeDeleted bool) ([]*jobhistory.JobHistory, error) {
	var rows []*hrDatamodel.JobHistory
	err := r.visibility(includeDeleted).
		Where("empno = ?", empno).
		Order("effdate DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return jobhistory.FromDataModelSlice(rows), nil
}

func (r *JobHistoryRepository) GetByKey(key records.HistoryKey) (*jobhistory.JobHistory, error) {
	var row hrDatamodel.JobHistory
	err := r.db.
		Where("empno = ? AND jobcode = ? AND effdate = ?", key.EmpNo, key.JobCode, key.EffDate).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, jobhistory.ErrJobHistoryNotFound
		}
		return nil, err
	}
	return jobhistory.FromDataModel(&row), nil
}

func (r *JobHistoryRepository) Create(jh *jobhistory.JobHistory) error {
	return r.db.Create(jobhistory.ToDataModel(jh)).Error
}

func (r *JobHistoryRepository) Update(jh *jobhistory.JobHistory) error {
	return r.db.
		Model(&hrDatamodel.JobHistory{}).
		Where("empno = ? AND jobcode = ? AND effdate = ?", jh.EmpNo, jh.JobCode, jh.EffDate).
		Updates(map[string]interface{}{
			"deptcode": jh.DeptCode,
			"salary":   jh.Salary,
			"status":   string(jh.Status),
			"stamp":    jh.Stamp,
		}).Error
}

func (r *JobHistoryRepository) UpdateStatus(key records.HistoryKey, status records.Status, stamp time.Time) error {
	return r.db.
		Model(&hrDatamodel.JobHistory{}).
		Where("empno = ? AND jobcode = ? AND effdate = ?", key.EmpNo, key.JobCode, key.EffDate).
		Updates(map[string]interface{}{
			"status": string(status),
			"stamp":  stamp,
		}).Error
}

// CountByJob counts every history row referencing a job, deleted rows
// included, so jobs stay undeletable while history points at them.
func (r *JobHistoryRepository) CountByJob(jobcode string) (int64, error) {
	var count int64
	err := r.db.Model(&hrDatamodel.JobHistory{}).Where("jobcode = ?", jobcode).Count(&count).Error
	return count, err
}

func (r *JobHistoryRepository) CountByDepartment(deptcode string) (int64, error) {
	var count int64
	err := r.db.Model(&hrDatamodel.JobHistory{}).Where("deptcode = ?", deptcode).Count(&count).Error
	return count, err
}

func (r *JobHistoryRepository) visibility(includeDeleted bool) *gorm.DB {
	if includeDeleted {
		return r.db
	}
	return r.db.Where("status <> ?", hrDatamodel.StatusDeleted)
}
