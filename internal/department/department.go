package department

import (
	"time"

	"github.com/frahmantamala/hr-management/internal"
	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
)

type Department struct {
	DeptCode string         `json:"deptcode"`
	DeptName *string        `json:"deptname"`
	Status   records.Status `json:"status"`
	Stamp    time.Time      `json:"stamp"`
}

type View struct {
	Department
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

func (d *Department) ToView(access rbac.Access) View {
	return View{
		Department: *d,
		CanEdit:    records.CanOfferEdit(access, rbac.TableDepartment, d.Status),
		CanDelete:  records.CanOfferDelete(access, rbac.TableDepartment, d.Status),
	}
}

var ErrDepartmentNotFound = internal.NewNotFoundError("department not found", internal.ErrCodeRecordNotFound)

func ToDataModel(d *Department) *hrDatamodel.Department {
	return &hrDatamodel.Department{
		DeptCode: d.DeptCode,
		DeptName: d.DeptName,
		Status:   string(d.Status),
		Stamp:    d.Stamp,
	}
}

func FromDataModel(d *hrDatamodel.Department) *Department {
	return &Department{
		DeptCode: d.DeptCode,
		DeptName: d.DeptName,
		Status:   records.Status(d.Status),
		Stamp:    d.Stamp,
	}
}

func FromDataModelSlice(rows []*hrDatamodel.Department) []*Department {
	result := make([]*Department, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
