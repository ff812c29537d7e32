package postgres

import (
	"time"

	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"github.com/frahmantamala/hr-management/internal/department"
	"github.com/frahmantamala/hr-management/internal/records"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) List(includeDeleted bool) ([]*department.Department, error) {
	var rows []*hrDatamodel.Department
	err := r.visibility(includeDeleted).Order("deptcode ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return department.FromDataModelSlice(rows), nil
}

func (r *DepartmentRepository) GetByDeptCode(deptcode string) (*department.Department, error) {
	var row hrDatamodel.Department
	err := r.db.Where("deptcode = ?", deptcode).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, department.ErrDepartmentNotFound
		}
		return nil, err
	}
	return department.FromDataModel(&row), nil
}

func (r *DepartmentRepository) Create(d *department.Department) error {
	return r.db.Create(department.ToDataModel(d)).Error
}

func (r *DepartmentRepository) Update(d *department.Department) error {
	return r.db.Save(department.ToDataModel(d)).Error
}

func (r *DepartmentRepository) UpdateStatus(deptcode string, status records.Status, stamp time.Time) error {
	return r.db.Model(&hrDatamodel.Department{}).
		Where("deptcode = ?", deptcode).
		Updates(map[string]interface{}{
			"status": string(status),
			"stamp":  stamp,
		}).Error
}

func (r *DepartmentRepository) visibility(includeDeleted bool) *gorm.DB {
	if includeDeleted {
		return r.db
	}
	return r.db.Where("status <> ?", hrDatamodel.StatusDeleted)
}
