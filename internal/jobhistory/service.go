package jobhistory

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
)

// Repository defines the data access methods for job history rows.
type Repository interface {
	ListByEmployee(empno string, includeDeleted bool) ([]*JobHistory, error)
	GetByKey(key records.HistoryKey) (*JobHistory, error)
	Create(jh *JobHistory) error
	Update(jh *JobHistory) error
	UpdateStatus(key records.HistoryKey, status records.Status, stamp time.Time) error
	CountByJob(jobcode string) (int64, error)
	CountByDepartment(deptcode string) (int64, error)
}

// ReferenceChecker verifies that the rows a new history entry points at
// actually exist before the entry is written.
type ReferenceChecker interface {
	EmployeeExists(empno string) (bool, error)
	JobExists(jobcode string) (bool, error)
	DepartmentExists(deptcode string) (bool, error)
}

type Service struct {
	repo   Repository
	refs   ReferenceChecker
	logger *slog.Logger
}

func NewService(repo Repository, refs ReferenceChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		refs:   refs,
		logger: logger,
	}
}

// ListByEmployee returns the assignment history of one employee, newest
// effective date first. Non-admins never see deleted rows.
func (s *Service) ListByEmployee(access rbac.Access, empno string) ([]View, error) {
	rows, err := s.repo.ListByEmployee(empno, access.IsAdmin())
	if err != nil {
		s.logger.Error("failed to list job history", "error", err, "empno", empno)
		return nil, err
	}
	views := make([]View, len(rows))
	for i, jh := range rows {
		views[i] = jh.ToView(access)
	}
	return views, nil
}

func (s *Service) Get(access rbac.Access, key records.HistoryKey) (*View, error) {
	jh, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if !records.VisibleToRole(jh.Status, access.Role) {
		return nil, ErrJobHistoryNotFound
	}
	v := jh.ToView(access)
	return &v, nil
}

func (s *Service) Create(access rbac.Access, dto CreateJobHistoryDTO) (*JobHistory, error) {
	if err := records.GuardCreate(access, rbac.TableJobHistory); err != nil {
		s.logger.Warn("job history create denied", "user_id", access.UserID)
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if err := s.checkReferences(dto.EmpNo, dto.JobCode, dto.DeptCode); err != nil {
		return nil, err
	}

	key := records.HistoryKey{EmpNo: dto.EmpNo, JobCode: dto.JobCode, EffDate: dto.EffDate}
	if existing, err := s.repo.GetByKey(key); err == nil && existing != nil {
		return nil, internal.NewConflictError("a job history record with this key already exists", internal.ErrCodeDuplicateRecord)
	}

	jh := &JobHistory{
		EmpNo:    dto.EmpNo,
		JobCode:  dto.JobCode,
		EffDate:  dto.EffDate,
		DeptCode: dto.DeptCode,
		Salary:   dto.Salary,
		Status:   records.StatusAdded,
		Stamp:    time.Now(),
	}

	if err := s.repo.Create(jh); err != nil {
		s.logger.Error("failed to create job history", "error", err, "id", jh.ID())
		return nil, err
	}

	s.logger.Info("job history created", "id", jh.ID(), "user_id", access.UserID)
	return jh, nil
}

func (s *Service) Update(access rbac.Access, key records.HistoryKey, dto UpdateJobHistoryDTO) (*JobHistory, error) {
	jh, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}

	if err := records.GuardEdit(access, rbac.TableJobHistory, jh.Status); err != nil {
		s.logger.Warn("job history update denied", "id", key.String(), "user_id", access.UserID, "status", jh.Status)
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if dto.DeptCode != nil {
		exists, err := s.refs.DepartmentExists(*dto.DeptCode)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, internal.NewValidationError("department does not exist", internal.ErrCodeValidationFailed)
		}
		jh.DeptCode = dto.DeptCode
	}
	if dto.Salary != nil {
		jh.Salary = dto.Salary
	}
	jh.Status = records.StatusEdited
	jh.Stamp = time.Now()

	if err := s.repo.Update(jh); err != nil {
		s.logger.Error("failed to update job history", "error", err, "id", key.String())
		return nil, err
	}

	s.logger.Info("job history updated", "id", key.String(), "user_id", access.UserID)
	return jh, nil
}

func (s *Service) Delete(access rbac.Access, key records.HistoryKey) error {
	jh, err := s.repo.GetByKey(key)
	if err != nil {
		return err
	}

	if err := records.GuardDelete(access, rbac.TableJobHistory, jh.Status); err != nil {
		s.logger.Warn("job history delete denied", "id", key.String(), "user_id", access.UserID, "status", jh.Status)
		return err
	}

	if err := s.repo.UpdateStatus(key, records.StatusDeleted, time.Now()); err != nil {
		s.logger.Error("failed to delete job history", "error", err, "id", key.String())
		return err
	}

	s.logger.Info("job history deleted", "id", key.String(), "user_id", access.UserID)
	return nil
}

// CountByJob reports how many history rows reference a job, regardless of
// their status. Deleted history still blocks removing the job it points at.
func (s *Service) CountByJob(jobcode string) (int64, error) {
	return s.repo.CountByJob(jobcode)
}

// CountByDepartment reports how many history rows reference a department.
func (s *Service) CountByDepartment(deptcode string) (int64, error) {
	return s.repo.CountByDepartment(deptcode)
}

func (s *Service) checkReferences(empno, jobcode string, deptcode *string) error {
	exists, err := s.refs.EmployeeExists(empno)
	if err != nil {
		return err
	}
	if !exists {
		return internal.NewValidationError("employee does not exist", internal.ErrCodeValidationFailed)
	}

	exists, err = s.refs.JobExists(jobcode)
	if err != nil {
		return err
	}
	if !exists {
		return internal.NewValidationError("job does not exist", internal.ErrCodeValidationFailed)
	}

	if deptcode != nil {
		exists, err = s.refs.DepartmentExists(*deptcode)
		if err != nil {
			return err
		}
		if !exists {
			return internal.NewValidationError("department does not exist", internal.ErrCodeValidationFailed)
		}
	}
	return nil
}
