package records

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/rbac"
)

// HistoryKey is the parsed composite identifier of a jobhistory row,
// serialized on the wire as "empno,jobcode,effdate" with effdate in
// YYYY-MM-DD form.
type HistoryKey struct {
	EmpNo   string
	JobCode string
	EffDate time.Time
}

const effDateLayout = "2006-01-02"

func ParseHistoryKey(id string) (HistoryKey, error) {
	parts := strings.Split(id, ",")
	if len(parts) != 3 {
		return HistoryKey{}, fmt.Errorf("jobhistory id must be empno,jobcode,effdate: %q", id)
	}
	effDate, err := time.Parse(effDateLayout, parts[2])
	if err != nil {
		return HistoryKey{}, fmt.Errorf("invalid effdate in jobhistory id: %w", err)
	}
	return HistoryKey{
		EmpNo:   parts[0],
		JobCode: parts[1],
		EffDate: effDate,
	}, nil
}

func (k HistoryKey) String() string {
	return fmt.Sprintf("%s,%s,%s", k.EmpNo, k.JobCode, k.EffDate.Format(effDateLayout))
}

// Repository performs the storage-side lifecycle transitions. Restore only
// flips DELETED rows; it reports ErrRecordNotDeleted otherwise.
type Repository interface {
	ListDeleted(table rbac.TableKind) ([]DeletedRecord, error)
	Restore(table rbac.TableKind, recordID string, stamp time.Time) error
}

// Service governs the deleted-record listing and the deleted to restored
// transition. Both are admin operations and re-validate the caller here,
// independent of route gating.
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

// ListDeleted returns every DELETED row of the given table.
func (s *Service) ListDeleted(caller rbac.Access, table rbac.TableKind) ([]DeletedRecord, error) {
	if !caller.IsAdmin() {
		s.logger.Warn("deleted listing denied: caller is not admin", "caller_id", caller.UserID, "table", table.String())
		return nil, internal.ErrAdminRequired
	}

	deleted, err := s.repo.ListDeleted(table)
	if err != nil {
		s.logger.Error("failed to list deleted records", "error", err, "table", table.String())
		return nil, err
	}
	return deleted, nil
}

// Restore transitions a DELETED record to RESTORED with a fresh stamp.
// The record then behaves like an active row again.
func (s *Service) Restore(caller rbac.Access, table rbac.TableKind, recordID string) error {
	if !caller.IsAdmin() {
		s.logger.Warn("restore denied: caller is not admin", "caller_id", caller.UserID, "table", table.String(), "record_id", recordID)
		return internal.ErrAdminRequired
	}

	if table == rbac.TableJobHistory {
		if _, err := ParseHistoryKey(recordID); err != nil {
			return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
		}
	}

	if err := s.repo.Restore(table, recordID, time.Now()); err != nil {
		s.logger.Error("failed to restore record", "error", err, "table", table.String(), "record_id", recordID)
		return err
	}

	s.logger.Info("record restored", "caller_id", caller.UserID, "table", table.String(), "record_id", recordID)
	return nil
}
