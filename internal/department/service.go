package department

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
)

// Repository defines the data access methods for departments.
type Repository interface {
	List(includeDeleted bool) ([]*Department, error)
	GetByDeptCode(deptcode string) (*Department, error)
	Create(d *Department) error
	Update(d *Department) error
	UpdateStatus(deptcode string, status records.Status, stamp time.Time) error
}

// UsageCounter reports how many job history rows reference a department.
type UsageCounter interface {
	CountByDepartment(deptcode string) (int64, error)
}

type Service struct {
	repo   Repository
	usage  UsageCounter
	logger *slog.Logger
}

func NewService(repo Repository, usage UsageCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		usage:  usage,
		logger: logger,
	}
}

func (s *Service) List(access rbac.Access) ([]View, error) {
	rows, err := s.repo.List(access.IsAdmin())
	if err != nil {
		s.logger.Error("failed to list departments", "error", err, "user_id", access.UserID)
		return nil, err
	}
	views := make([]View, len(rows))
	for i, d := range rows {
		views[i] = d.ToView(access)
	}
	return views, nil
}

func (s *Service) Get(access rbac.Access, deptcode string) (*View, error) {
	d, err := s.repo.GetByDeptCode(deptcode)
	if err != nil {
		return nil, err
	}
	if !records.VisibleToRole(d.Status, access.Role) {
		return nil, ErrDepartmentNotFound
	}
	v := d.ToView(access)
	return &v, nil
}

func (s *Service) Create(access rbac.Access, dto CreateDepartmentDTO) (*Department, error) {
	if err := records.GuardCreate(access, rbac.TableDepartment); err != nil {
		s.logger.Warn("department create denied", "user_id", access.UserID)
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByDeptCode(dto.DeptCode); err == nil && existing != nil {
		return nil, internal.NewConflictError("a department with this deptcode already exists", internal.ErrCodeDuplicateRecord)
	}

	d := &Department{
		DeptCode: dto.DeptCode,
		DeptName: dto.DeptName,
		Status:   records.StatusAdded,
		Stamp:    time.Now(),
	}

	if err := s.repo.Create(d); err != nil {
		s.logger.Error("failed to create department", "error", err, "deptcode", d.DeptCode)
		return nil, err
	}

	s.logger.Info("department created", "deptcode", d.DeptCode, "user_id", access.UserID)
	return d, nil
}

func (s *Service) Update(access rbac.Access, deptcode string, dto UpdateDepartmentDTO) (*Department, error) {
	d, err := s.repo.GetByDeptCode(deptcode)
	if err != nil {
		return nil, err
	}

	if err := records.GuardEdit(access, rbac.TableDepartment, d.Status); err != nil {
		s.logger.Warn("department update denied", "deptcode", deptcode, "user_id", access.UserID, "status", d.Status)
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if dto.DeptName != nil {
		d.DeptName = dto.DeptName
	}
	d.Status = records.StatusEdited
	d.Stamp = time.Now()

	if err := s.repo.Update(d); err != nil {
		s.logger.Error("failed to update department", "error", err, "deptcode", deptcode)
		return nil, err
	}

	s.logger.Info("department updated", "deptcode", deptcode, "user_id", access.UserID)
	return d, nil
}

// Delete marks a department as deleted unless job history rows still
// reference it.
func (s *Service) Delete(access rbac.Access, deptcode string) error {
	d, err := s.repo.GetByDeptCode(deptcode)
	if err != nil {
		return err
	}

	if err := records.GuardDelete(access, rbac.TableDepartment, d.Status); err != nil {
		s.logger.Warn("department delete denied", "deptcode", deptcode, "user_id", access.UserID, "status", d.Status)
		return err
	}

	count, err := s.usage.CountByDepartment(deptcode)
	if err != nil {
		s.logger.Error("failed to count department usage", "error", err, "deptcode", deptcode)
		return err
	}
	if count > 0 {
		return internal.NewConflictError("department is in use by job history records", internal.ErrCodeRecordInUse)
	}

	if err := s.repo.UpdateStatus(deptcode, records.StatusDeleted, time.Now()); err != nil {
		s.logger.Error("failed to delete department", "error", err, "deptcode", deptcode)
		return err
	}

	s.logger.Info("department deleted", "deptcode", deptcode, "user_id", access.UserID)
	return nil
}
