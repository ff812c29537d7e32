package job

import (
	"errors"
	"strings"
)

type CreateJobDTO struct {
	JobCode string  `json:"jobcode"`
	JobDesc *string `json:"jobdesc"`
}

func (d *CreateJobDTO) Validate() error {
	d.JobCode = strings.TrimSpace(d.JobCode)
	if d.JobCode == "" {
		return errors.New("jobcode is required")
	}
	if len(d.JobCode) > 20 {
		return errors.New("jobcode must be at most 20 characters")
	}
	return nil
}

type UpdateJobDTO struct {
	JobDesc *string `json:"jobdesc"`
}

func (d *UpdateJobDTO) Validate() error {
	if d.JobDesc == nil {
		return errors.New("at least one field must be provided")
	}
	return nil
}
