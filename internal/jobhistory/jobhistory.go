package jobhistory

import (
	"time"

	"github.com/frahmantamala/hr-management/internal"
	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
)

// JobHistory is one assignment row: an employee holding a job from an
// effective date, optionally within a department and at a salary. The
// triplet (empno, jobcode, effdate) identifies the row.
type JobHistory struct {
	EmpNo    string         `json:"empno"`
	JobCode  string         `json:"jobcode"`
	EffDate  time.Time      `json:"effdate"`
	DeptCode *string        `json:"deptcode"`
	Salary   *float64       `json:"salary"`
	Status   records.Status `json:"status"`
	Stamp    time.Time      `json:"stamp"`
}

// ID returns the wire form of the composite key.
func (jh *JobHistory) ID() string {
	return records.HistoryKey{
		EmpNo:   jh.EmpNo,
		JobCode: jh.JobCode,
		EffDate: jh.EffDate,
	}.String()
}

type View struct {
	JobHistory
	ID        string `json:"id"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
}

func (jh *JobHistory) ToView(access rbac.Access) View {
	return View{
		JobHistory: *jh,
		ID:         jh.ID(),
		CanEdit:    records.CanOfferEdit(access, rbac.TableJobHistory, jh.Status),
		CanDelete:  records.CanOfferDelete(access, rbac.TableJobHistory, jh.Status),
	}
}

var ErrJobHistoryNotFound = internal.NewNotFoundError("job history record not found", internal.ErrCodeRecordNotFound)

func ToDataModel(jh *JobHistory) *hrDatamodel.JobHistory {
	return &hrDatamodel.JobHistory{
		EmpNo:    jh.EmpNo,
		JobCode:  jh.JobCode,
		EffDate:  jh.EffDate,
		DeptCode: jh.DeptCode,
		Salary:   jh.Salary,
		Status:   string(jh.Status),
		Stamp:    jh.Stamp,
	}
}

func FromDataModel(jh *hrDatamodel.JobHistory) *JobHistory {
	return &JobHistory{
		EmpNo:    jh.EmpNo,
		JobCode:  jh.JobCode,
		EffDate:  jh.EffDate,
		DeptCode: jh.DeptCode,
		Salary:   jh.Salary,
		Status:   records.Status(jh.Status),
		Stamp:    jh.Stamp,
	}
}

func FromDataModelSlice(rows []*hrDatamodel.JobHistory) []*JobHistory {
	result := make([]*JobHistory, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
