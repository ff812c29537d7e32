package user

import (
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/jobhistory"
	"github.com/frahmantamala/hr-management/internal/rbac"
)

// EmployeeLookup resolves the personnel record linked to an email address.
type EmployeeLookup interface {
	GetActiveByEmail(email string) (*employee.Employee, error)
}

// HistoryLister returns the assignment history visible to the caller.
type HistoryLister interface {
	ListByEmployee(access rbac.Access, empno string) ([]jobhistory.View, error)
}

type Service struct {
	employees EmployeeLookup
	history   HistoryLister
	logger    *slog.Logger
}

func NewService(employees EmployeeLookup, history HistoryLister, logger *slog.Logger) *Service {
	return &Service{
		employees: employees,
		history:   history,
		logger:    logger,
	}
}

// ProfileFor projects the resolved identity into the shape the dashboard
// consumes: one row per table with the effective grants spelled out.
func (s *Service) ProfileFor(u *auth.User) Profile {
	tables := rbac.AllTables()
	perms := make([]TablePermissionView, 0, len(tables))
	for _, table := range tables {
		perms = append(perms, TablePermissionView{
			Table:     table.String(),
			CanAdd:    u.Access.Can(table, rbac.ActionAdd),
			CanEdit:   u.Access.Can(table, rbac.ActionEdit),
			CanDelete: u.Access.Can(table, rbac.ActionDelete),
		})
	}
	return Profile{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Access.Role,
		Permissions: perms,
	}
}

// EmployeeProfileFor finds the employee record carrying the caller's email
// and attaches its history. A missing link is a not-found the client renders
// as an empty state, not a failure.
func (s *Service) EmployeeProfileFor(u *auth.User) (*EmployeeProfile, error) {
	e, err := s.employees.GetActiveByEmail(u.Email)
	if err != nil {
		return nil, err
	}

	history, err := s.history.ListByEmployee(u.Access, e.EmpNo)
	if err != nil {
		s.logger.Error("failed to load employee history for profile", "error", err, "empno", e.EmpNo)
		return nil, err
	}

	return &EmployeeProfile{
		Employee: e,
		History:  history,
	}, nil
}
