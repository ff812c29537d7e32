package postgres

import (
	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"github.com/frahmantamala/hr-management/internal/department"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/job"
	"github.com/frahmantamala/hr-management/internal/jobhistory"
	"github.com/frahmantamala/hr-management/internal/report"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.Repository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) ActiveEmployees() ([]*employee.Employee, error) {
	var rows []*hrDatamodel.Employee
	err := r.active().Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return employee.FromDataModelSlice(rows), nil
}

func (r *ReportRepository) ActiveJobs() ([]*job.Job, error) {
	var rows []*hrDatamodel.Job
	err := r.active().Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return job.FromDataModelSlice(rows), nil
}

func (r *ReportRepository) ActiveDepartments() ([]*department.Department, error) {
	var rows []*hrDatamodel.Department
	err := r.active().Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return department.FromDataModelSlice(rows), nil
}

func (r *ReportRepository) ActiveJobHistory() ([]*jobhistory.JobHistory, error) {
	var rows []*hrDatamodel.JobHistory
	err := r.active().Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return jobhistory.FromDataModelSlice(rows), nil
}

func (r *ReportRepository) active() *gorm.DB {
	return r.db.Where("status <> ?", hrDatamodel.StatusDeleted)
}
