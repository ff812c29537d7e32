package postgres

import (
	"time"

	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/records"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) List(includeDeleted bool) ([]*employee.Employee, error) {
	var rows []*hrDatamodel.Employee
	err := r.visibility(includeDeleted).Order("empno ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return employee.FromDataModelSlice(rows), nil
}

func (r *EmployeeRepository) Search(query string, includeDeleted bool) ([]*employee.Employee, error) {
	var rows []*hrDatamodel.Employee
	pattern := "%" + query + "%"
	err := r.visibility(includeDeleted).
		Where("empno LIKE ? OR LOWER(firstname) LIKE LOWER(?) OR LOWER(lastname) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Order("empno ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return employee.FromDataModelSlice(rows), nil
}

func (r *EmployeeRepository) GetByEmpNo(empno string) (*employee.Employee, error) {
	var row hrDatamodel.Employee
	err := r.db.Where("empno = ?", empno).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&row), nil
}

// GetActiveByEmail finds the non-deleted employee row carrying the given
// email, used to link a signed-in identity to its personnel record.
func (r *EmployeeRepository) GetActiveByEmail(email string) (*employee.Employee, error) {
	var row hrDatamodel.Employee
	err := r.db.
		Where("LOWER(email) = LOWER(?) AND status <> ?", email, hrDatamodel.StatusDeleted).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&row), nil
}

func (r *EmployeeRepository) Create(e *employee.Employee) error {
	return r.db.Create(employee.ToDataModel(e)).Error
}

func (r *EmployeeRepository) Update(e *employee.Employee) error {
	return r.db.Save(employee.ToDataModel(e)).Error
}

func (r *EmployeeRepository) UpdateStatus(empno string, status records.Status, stamp time.Time) error {
	return r.db.Model(&hrDatamodel.Employee{}).
		Where("empno = ?", empno).
		Updates(map[string]interface{}{
			"status": string(status),
			"stamp":  stamp,
		}).Error
}

func (r *EmployeeRepository) visibility(includeDeleted bool) *gorm.DB {
	if includeDeleted {
		return r.db
	}
	return r.db.Where("status <> ?", hrDatamodel.StatusDeleted)
}
