package job

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
)

// Repository defines the data access methods for jobs.
type Repository interface {
	List(includeDeleted bool) ([]*Job, error)
	GetByJobCode(jobcode string) (*Job, error)
	Create(j *Job) error
	Update(j *Job) error
	UpdateStatus(jobcode string, status records.Status, stamp time.Time) error
}

// UsageCounter reports how many job history rows reference a job. Deleting
// a job that still appears in someone's history would orphan those rows, so
// the service refuses it.
type UsageCounter interface {
	CountByJob(jobcode string) (int64, error)
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
		s.logger.Error("failed to list jobs", "error", err, "user_id", access.UserID)
		return nil, err
	}
	views := make([]View, len(rows))
	for i, j := range rows {
		views[i] = j.ToView(access)
	}
	return views, nil
}

func (s *Service) Get(access rbac.Access, jobcode string) (*View, error) {
	j, err := s.repo.GetByJobCode(jobcode)
	if err != nil {
		return nil, err
	}
	if !records.VisibleToRole(j.Status, access.Role) {
		return nil, ErrJobNotFound
	}
	v := j.ToView(access)
	return &v, nil
}

func (s *Service) Create(access rbac.Access, dto CreateJobDTO) (*Job, error) {
	if err := records.GuardCreate(access, rbac.TableJob); err != nil {
		s.logger.Warn("job create denied", "user_id", access.UserID)
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByJobCode(dto.JobCode); err == nil && existing != nil {
		return nil, internal.NewConflictError("a job with this jobcode already exists", internal.ErrCodeDuplicateRecord)
	}

	j := &Job{
		JobCode: dto.JobCode,
		JobDesc: dto.JobDesc,
		Status:  records.StatusAdded,
		Stamp:   time.Now(),
	}

	if err := s.repo.Create(j); err != nil {
		s.logger.Error("failed to create job", "error", err, "jobcode", j.JobCode)
		return nil, err
	}

	s.logger.Info("job created", "jobcode", j.JobCode, "user_id", access.UserID)
	return j, nil
}

func (s *Service) Update(access rbac.Access, jobcode string, dto UpdateJobDTO) (*Job, error) {
	j, err := s.repo.GetByJobCode(jobcode)
	if err != nil {
		return nil, err
	}

	if err := records.GuardEdit(access, rbac.TableJob, j.Status); err != nil {
		s.logger.Warn("job update denied", "jobcode", jobcode, "user_id", access.UserID, "status", j.Status)
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if dto.JobDesc != nil {
		j.JobDesc = dto.JobDesc
	}
	j.Status = records.StatusEdited
	j.Stamp = time.Now()

	if err := s.repo.Update(j); err != nil {
		s.logger.Error("failed to update job", "error", err, "jobcode", jobcode)
		return nil, err
	}

	s.logger.Info("job updated", "jobcode", jobcode, "user_id", access.UserID)
	return j, nil
}

// Delete marks a job as deleted. Jobs still referenced by job history rows
// cannot be deleted, regardless of the referencing rows' own status.
func (s *Service) Delete(access rbac.Access, jobcode string) error {
	j, err := s.repo.GetByJobCode(jobcode)
	if err != nil {
		return err
	}

	if err := records.GuardDelete(access, rbac.TableJob, j.Status); err != nil {
		s.logger.Warn("job delete denied", "jobcode", jobcode, "user_id", access.UserID, "status", j.Status)
		return err
	}

	count, err := s.usage.CountByJob(jobcode)
	if err != nil {
		s.logger.Error("failed to count job usage", "error", err, "jobcode", jobcode)
		return err
	}
	if count > 0 {
		return internal.NewConflictError("job is in use by job history records", internal.ErrCodeRecordInUse)
	}

	if err := s.repo.UpdateStatus(jobcode, records.StatusDeleted, time.Now()); err != nil {
		s.logger.Error("failed to delete job", "error", err, "jobcode", jobcode)
		return err
	}

	s.logger.Info("job deleted", "jobcode", jobcode, "user_id", access.UserID)
	return nil
}
