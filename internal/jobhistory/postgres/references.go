package postgres

import (
	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"gorm.io/gorm"
)

// ReferenceRepository answers existence checks against the referenced
// tables. Deleted rows do not count: history cannot point at a record the
// rest of the app treats as gone.
type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) EmployeeExists(empno string) (bool, error) {
	var count int64
	err := r.db.Model(&hrDatamodel.Employee{}).
		Where("empno = ? AND status <> ?", empno, hrDatamodel.StatusDeleted).
		Count(&count).Error
	return count > 0, err
}

func (r *ReferenceRepository) JobExists(jobcode string) (bool, error) {
	var count int64
	err := r.db.Model(&hrDatamodel.Job{}).
		Where("jobcode = ? AND status <> ?", jobcode, hrDatamodel.StatusDeleted).
		Count(&count).Error
	return count > 0, err
}

func (r *ReferenceRepository) DepartmentExists(deptcode string) (bool, error) {
	var count int64
	err := r.db.Model(&hrDatamodel.Department{}).
		Where("deptcode = ? AND status <> ?", deptcode, hrDatamodel.StatusDeleted).
		Count(&count).Error
	return count > 0, err
}
