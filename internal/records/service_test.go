package records_test

import (
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
)

type mockRecordsRepository struct {
	deleted     map[rbac.TableKind][]records.DeletedRecord
	restored    []string
	restoreErr  error
	listErr     error
	lastTable   rbac.TableKind
	lastStampAt time.Time
}

func newMockRecordsRepository() *mockRecordsRepository {
	return &mockRecordsRepository{
		deleted: make(map[rbac.TableKind][]records.DeletedRecord),
	}
}

func (m *mockRecordsRepository) ListDeleted(table rbac.TableKind) ([]records.DeletedRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.deleted[table], nil
}

func (m *mockRecordsRepository) Restore(table rbac.TableKind, recordID string, stamp time.Time) error {
	if m.restoreErr != nil {
		return m.restoreErr
	}
	m.lastTable = table
	m.lastStampAt = stamp
	m.restored = append(m.restored, recordID)
	return nil
}

var _ = Describe("Records Service", func() {
	var (
		repo    *mockRecordsRepository
		service *records.Service
		admin   rbac.Access
		regular rbac.Access
	)

	BeforeEach(func() {
		repo = newMockRecordsRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = records.NewService(repo, logger)
		admin = rbac.Access{UserID: "admin-1", Role: rbac.RoleAdmin}
		regular = rbac.Access{UserID: "user-1", Role: rbac.RoleUser}
	})

	Describe("ListDeleted", func() {
		It("returns deleted rows for admins", func() {
			repo.deleted[rbac.TableEmployee] = []records.DeletedRecord{
				{ID: "1001", DisplayName: "Amir Admin (1001)", TableName: "employee"},
			}

			rows, err := service.ListDeleted(admin, rbac.TableEmployee)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].ID).To(Equal("1001"))
		})

		It("rejects non-admin callers before touching storage", func() {
			_, err := service.ListDeleted(regular, rbac.TableEmployee)
			Expect(err).To(MatchError(internal.ErrAdminRequired))
		})
	})

	Describe("Restore", func() {
		It("restores by id for admins", func() {
			err := service.Restore(admin, rbac.TableJob, "DEV")
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.restored).To(ConsistOf("DEV"))
			Expect(repo.lastTable).To(Equal(rbac.TableJob))
			Expect(repo.lastStampAt).To(BeTemporally("~", time.Now(), time.Second))
		})

		It("rejects non-admin callers", func() {
			err := service.Restore(regular, rbac.TableJob, "DEV")
			Expect(err).To(MatchError(internal.ErrAdminRequired))
			Expect(repo.restored).To(BeEmpty())
		})

		It("validates the composite key for jobhistory", func() {
			err := service.Restore(admin, rbac.TableJobHistory, "not-a-composite-key")
			Expect(err).To(HaveOccurred())
			Expect(repo.restored).To(BeEmpty())

			err = service.Restore(admin, rbac.TableJobHistory, "1002,DEV,2020-07-15")
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.restored).To(ConsistOf("1002,DEV,2020-07-15"))
		})

		It("propagates the repository's not-deleted error", func() {
			repo.restoreErr = records.ErrRecordNotDeleted
			err := service.Restore(admin, rbac.TableEmployee, "1001")
			Expect(err).To(MatchError(records.ErrRecordNotDeleted))
		})
	})
})
