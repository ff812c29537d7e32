package jobhistory

import (
	"errors"
	"strings"
	"time"
)

type CreateJobHistoryDTO struct {
	EmpNo    string    `json:"empno"`
	JobCode  string    `json:"jobcode"`
	EffDate  time.Time `json:"effdate"`
	DeptCode *string   `json:"deptcode"`
	Salary   *float64  `json:"salary"`
}

func (d *CreateJobHistoryDTO) Validate() error {
	d.EmpNo = strings.TrimSpace(d.EmpNo)
	d.JobCode = strings.TrimSpace(d.JobCode)

	if d.EmpNo == "" {
		return errors.New("empno is required")
	}
	if d.JobCode == "" {
		return errors.New("jobcode is required")
	}
	if d.EffDate.IsZero() {
		return errors.New("effdate is required")
	}
	if d.Salary != nil && *d.Salary < 0 {
		return errors.New("salary must not be negative")
	}
	return nil
}

// UpdateJobHistoryDTO covers the mutable columns. The composite key itself
// is immutable; changing a job or effective date means a new row.
type UpdateJobHistoryDTO struct {
	DeptCode *string  `json:"deptcode"`
	Salary   *float64 `json:"salary"`
}

func (d *UpdateJobHistoryDTO) Validate() error {
	if d.DeptCode == nil && d.Salary == nil {
		return errors.New("at least one field must be provided")
	}
	if d.Salary != nil && *d.Salary < 0 {
		return errors.New("salary must not be negative")
	}
	return nil
}
