package department

import (
	"errors"
	"strings"
)

type CreateDepartmentDTO struct {
	DeptCode string  `json:"deptcode"`
	DeptName *string `json:"deptname"`
}

func (d *CreateDepartmentDTO) Validate() error {
	d.DeptCode = strings.TrimSpace(d.DeptCode)
	if d.DeptCode == "" {
		return errors.New("deptcode is required")
	}
	if len(d.DeptCode) > 20 {
		return errors.New("deptcode must be at most 20 characters")
	}
	return nil
}

type UpdateDepartmentDTO struct {
	DeptName *string `json:"deptname"`
}

func (d *UpdateDepartmentDTO) Validate() error {
	if d.DeptName == nil {
		return errors.New("at least one field must be provided")
	}
	return nil
}
