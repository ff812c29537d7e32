package employee

import (
	"time"

	"github.com/frahmantamala/hr-management/internal"
	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
)

type Employee struct {
	EmpNo     string         `json:"empno"`
	FirstName *string        `json:"firstname"`
	LastName  *string        `json:"lastname"`
	Gender    *string        `json:"gender"`
	BirthDate *time.Time     `json:"birthdate"`
	HireDate  *time.Time     `json:"hiredate"`
	SepDate   *time.Time     `json:"sepdate"`
	Email     *string        `json:"email"`
	Status    records.Status `json:"status"`
	Stamp     time.Time      `json:"stamp"`
}

// View is an Employee annotated with the actions the current identity may
// take on it, so screens can enable or disable buttons without re-deriving
// permission logic.
type View struct {
	Employee
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

func (e *Employee) ToView(access rbac.Access) View {
	return View{
		Employee:  *e,
		CanEdit:   records.CanOfferEdit(access, rbac.TableEmployee, e.Status),
		CanDelete: records.CanOfferDelete(access, rbac.TableEmployee, e.Status),
	}
}

var ErrEmployeeNotFound = internal.NewNotFoundError("employee not found", internal.ErrCodeRecordNotFound)

func ToDataModel(e *Employee) *hrDatamodel.Employee {
	return &hrDatamodel.Employee{
		EmpNo:     e.EmpNo,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Gender:    e.Gender,
		BirthDate: e.BirthDate,
		HireDate:  e.HireDate,
		SepDate:   e.SepDate,
		Email:     e.Email,
		Status:    string(e.Status),
		Stamp:     e.Stamp,
	}
}

func FromDataModel(e *hrDatamodel.Employee) *Employee {
	return &Employee{
		EmpNo:     e.EmpNo,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Gender:    e.Gender,
		BirthDate: e.BirthDate,
		HireDate:  e.HireDate,
		SepDate:   e.SepDate,
		Email:     e.Email,
		Status:    records.Status(e.Status),
		Stamp:     e.Stamp,
	}
}

func FromDataModelSlice(rows []*hrDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
