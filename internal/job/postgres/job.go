package postgres

import (
	"time"

	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"github.com/frahmantamala/hr-management/internal/job"
	"github.com/frahmantamala/hr-management/internal/records"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) job.Repository {
	return &JobRepository{db: db}
}

func (r *JobRepository) List(includeDeleted bool) ([]*job.Job, error) {
	var rows []*hrDatamodel.Job
	err := r.visibility(includeDeleted).Order("jobcode ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return job.FromDataModelSlice(rows), nil
}

func (r *JobRepository) GetByJobCode(jobcode string) (*job.Job, error) {
	var row hrDatamodel.Job
	err := r.db.Where("jobcode = ?", jobcode).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, job.ErrJobNotFound
		}
		return nil, err
	}
	return job.FromDataModel(&row), nil
}

func (r *JobRepository) Create(j *job.Job) error {
	return r.db.Create(job.ToDataModel(j)).Error
}

func (r *JobRepository) Update(j *job.Job) error {
	return r.db.Save(job.ToDataModel(j)).Error
}

func (r *JobRepository) UpdateStatus(jobcode string, status records.Status, stamp time.Time) error {
	return r.db.Model(&hrDatamodel.Job{}).
		Where("jobcode = ?", jobcode).
		Updates(map[string]interface{}{
			"status": string(status),
			"stamp":  stamp,
		}).Error
}

func (r *JobRepository) visibility(includeDeleted bool) *gorm.DB {
	if includeDeleted {
		return r.db
	}
	return r.db.Where("status <> ?", hrDatamodel.StatusDeleted)
}
