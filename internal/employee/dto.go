package employee

import (
	"errors"
	"strings"
	"time"
)

// CreateEmployeeDTO is the request payload for adding an employee.
type CreateEmployeeDTO struct {
	EmpNo     string     `json:"empno"`
	FirstName *string    `json:"firstname,omitempty"`
	LastName  *string    `json:"lastname,omitempty"`
	Gender    *string    `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birthdate,omitempty"`
	HireDate  *time.Time `json:"hiredate,omitempty"`
	SepDate   *time.Time `json:"sepdate,omitempty"`
	Email     *string    `json:"email,omitempty"`
}

func (dto CreateEmployeeDTO) Validate() error {
	if dto.EmpNo == "" {
		return errors.New("empno is required")
	}
	if dto.Email != nil && !strings.Contains(*dto.Email, "@") {
		return errors.New("email must be a valid address")
	}
	if dto.Gender != nil && *dto.Gender != "M" && *dto.Gender != "F" {
		return errors.New("gender must be M or F")
	}
	if dto.BirthDate != nil && dto.HireDate != nil && dto.HireDate.Before(*dto.BirthDate) {
		return errors.New("hiredate cannot be before birthdate")
	}
	return nil
}

// UpdateEmployeeDTO is the request payload for editing an employee. The
// natural key empno is taken from the URL, not the body.
type UpdateEmployeeDTO struct {
	FirstName *string    `json:"firstname,omitempty"`
	LastName  *string    `json:"lastname,omitempty"`
	Gender    *string    `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birthdate,omitempty"`
	HireDate  *time.Time `json:"hiredate,omitempty"`
	SepDate   *time.Time `json:"sepdate,omitempty"`
	Email     *string    `json:"email,omitempty"`
}

func (dto UpdateEmployeeDTO) Validate() error {
	if dto.Gender != nil && *dto.Gender != "M" && *dto.Gender != "F" {
		return errors.New("gender must be M or F")
	}
	if dto.Email != nil && !strings.Contains(*dto.Email, "@") {
		return errors.New("email must be a valid address")
	}
	return nil
}
