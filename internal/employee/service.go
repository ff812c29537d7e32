package employee

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
)

// Repository defines the data access methods for employees.
type Repository interface {
	List(includeDeleted bool) ([]*Employee, error)
	Search(query string, includeDeleted bool) ([]*Employee, error)
	GetByEmpNo(empno string) (*Employee, error)
	GetActiveByEmail(email string) (*Employee, error)
	Create(e *Employee) error
	Update(e *Employee) error
	UpdateStatus(empno string, status records.Status, stamp time.Time) error
}

// Service handles employee business logic: every mutation re-checks the
// caller's grants and the record's lifecycle state before touching storage.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns employees visible to the caller: admins get every row,
// deleted included; everyone else only active records.
func (s *Service) List(access rbac.Access) ([]View, error) {
	rows, err := s.repo.List(access.IsAdmin())
	if err != nil {
		s.logger.Error("failed to list employees", "error", err, "user_id", access.UserID)
		return nil, err
	}
	return toViews(rows, access), nil
}

// Search filters the visible set by a case-insensitive name or empno match.
func (s *Service) Search(access rbac.Access, query string) ([]View, error) {
	rows, err := s.repo.Search(query, access.IsAdmin())
	if err != nil {
		s.logger.Error("failed to search employees", "error", err, "query", query)
		return nil, err
	}
	return toViews(rows, access), nil
}

// Get returns a single employee if the caller may see it.
func (s *Service) Get(access rbac.Access, empno string) (*View, error) {
	e, err := s.repo.GetByEmpNo(empno)
	if err != nil {
		return nil, err
	}
	if !records.VisibleToRole(e.Status, access.Role) {
		return nil, ErrEmployeeNotFound
	}
	v := e.ToView(access)
	return &v, nil
}

func (s *Service) Create(access rbac.Access, dto CreateEmployeeDTO) (*Employee, error) {
	if err := records.GuardCreate(access, rbac.TableEmployee); err != nil {
		s.logger.Warn("employee create denied", "user_id", access.UserID)
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByEmpNo(dto.EmpNo); err == nil && existing != nil {
		return nil, internal.NewConflictError("an employee with this empno already exists", internal.ErrCodeDuplicateRecord)
	}

	e := &Employee{
		EmpNo:     dto.EmpNo,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Gender:    dto.Gender,
		BirthDate: dto.BirthDate,
		HireDate:  dto.HireDate,
		SepDate:   dto.SepDate,
		Email:     dto.Email,
		Status:    records.StatusAdded,
		Stamp:     time.Now(),
	}

	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create employee", "error", err, "empno", e.EmpNo)
		return nil, err
	}

	s.logger.Info("employee created", "empno", e.EmpNo, "user_id", access.UserID)
	return e, nil
}

func (s *Service) Update(access rbac.Access, empno string, dto UpdateEmployeeDTO) (*Employee, error) {
	e, err := s.repo.GetByEmpNo(empno)
	if err != nil {
		return nil, err
	}

	if err := records.GuardEdit(access, rbac.TableEmployee, e.Status); err != nil {
		s.logger.Warn("employee update denied", "empno", empno, "user_id", access.UserID, "status", e.Status)
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if dto.FirstName != nil {
		e.FirstName = dto.FirstName
	}
	if dto.LastName != nil {
		e.LastName = dto.LastName
	}
	if dto.Gender != nil {
		e.Gender = dto.Gender
	}
	if dto.BirthDate != nil {
		e.BirthDate = dto.BirthDate
	}
	if dto.HireDate != nil {
		e.HireDate = dto.HireDate
	}
	if dto.SepDate != nil {
		e.SepDate = dto.SepDate
	}
	if dto.Email != nil {
		e.Email = dto.Email
	}
	e.Status = records.StatusEdited
	e.Stamp = time.Now()

	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to update employee", "error", err, "empno", empno)
		return nil, err
	}

	s.logger.Info("employee updated", "empno", empno, "user_id", access.UserID)
	return e, nil
}

// Delete soft-deletes an employee. The row stays in storage; only an admin
// restore brings it back.
func (s *Service) Delete(access rbac.Access, empno string) error {
	e, err := s.repo.GetByEmpNo(empno)
	if err != nil {
		return err
	}

	if err := records.GuardDelete(access, rbac.TableEmployee, e.Status); err != nil {
		s.logger.Warn("employee delete denied", "empno", empno, "user_id", access.UserID, "status", e.Status)
		return err
	}

	if err := s.repo.UpdateStatus(empno, records.StatusDeleted, time.Now()); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "empno", empno)
		return err
	}

	s.logger.Info("employee soft-deleted", "empno", empno, "user_id", access.UserID)
	return nil
}

func toViews(rows []*Employee, access rbac.Access) []View {
	views := make([]View, len(rows))
	for i, row := range rows {
		views[i] = row.ToView(access)
	}
	return views
}
