package job

import (
	"time"

	"github.com/frahmantamala/hr-management/internal"
	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
)

type Job struct {
	JobCode string         `json:"jobcode"`
	JobDesc *string        `json:"jobdesc"`
	Status  records.Status `json:"status"`
	Stamp   time.Time      `json:"stamp"`
}

type View struct {
	Job
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

func (j *Job) ToView(access rbac.Access) View {
	return View{
		Job:       *j,
		CanEdit:   records.CanOfferEdit(access, rbac.TableJob, j.Status),
		CanDelete: records.CanOfferDelete(access, rbac.TableJob, j.Status),
	}
}

var ErrJobNotFound = internal.NewNotFoundError("job not found", internal.ErrCodeRecordNotFound)

func ToDataModel(j *Job) *hrDatamodel.Job {
	return &hrDatamodel.Job{
		JobCode: j.JobCode,
		JobDesc: j.JobDesc,
		Status:  string(j.Status),
		Stamp:   j.Stamp,
	}
}

func FromDataModel(j *hrDatamodel.Job) *Job {
	return &Job{
		JobCode: j.JobCode,
		JobDesc: j.JobDesc,
		Status:  records.Status(j.Status),
		Stamp:   j.Stamp,
	}
}

func FromDataModelSlice(rows []*hrDatamodel.Job) []*Job {
	result := make([]*Job, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
