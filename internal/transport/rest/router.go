package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/department"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/job"
	"github.com/frahmantamala/hr-management/internal/jobhistory"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
	"github.com/frahmantamala/hr-management/internal/report"
	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-management/internal/transport/swagger"
	"github.com/frahmantamala/hr-management/internal/user"
	"github.com/go-chi/chi"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Employee   *employee.Handler
	Job        *job.Handler
	Department *department.Handler
	JobHistory *jobhistory.Handler
	RBAC       *rbac.Handler
	Records    *records.Handler
	Report     *report.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORS)

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/signup", h.Auth.SignUp)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires a valid token and a non-blocked role.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(rbac.RequireNotBlocked(logger))

			pr.Get("/users/me", h.User.GetProfile)
			pr.Get("/users/me/employee", h.User.GetEmployeeProfile)

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", h.Employee.ListEmployees)
				er.Post("/", h.Employee.CreateEmployee)
				er.Get("/{empno}", h.Employee.GetEmployee)
				er.Put("/{empno}", h.Employee.UpdateEmployee)
				er.Delete("/{empno}", h.Employee.DeleteEmployee)
				er.Get("/{empno}/jobhistory", h.JobHistory.ListEmployeeHistory)
			})

			pr.Route("/jobs", func(jr chi.Router) {
				jr.Get("/", h.Job.ListJobs)
				jr.Post("/", h.Job.CreateJob)
				jr.Get("/{jobcode}", h.Job.GetJob)
				jr.Put("/{jobcode}", h.Job.UpdateJob)
				jr.Delete("/{jobcode}", h.Job.DeleteJob)
			})

			pr.Route("/departments", func(dr chi.Router) {
				dr.Get("/", h.Department.ListDepartments)
				dr.Post("/", h.Department.CreateDepartment)
				dr.Get("/{deptcode}", h.Department.GetDepartment)
				dr.Put("/{deptcode}", h.Department.UpdateDepartment)
				dr.Delete("/{deptcode}", h.Department.DeleteDepartment)
			})

			pr.Route("/jobhistory", func(hr chi.Router) {
				hr.Post("/", h.JobHistory.CreateJobHistory)
				hr.Get("/{id}", h.JobHistory.GetJobHistory)
				hr.Put("/{id}", h.JobHistory.UpdateJobHistory)
				hr.Delete("/{id}", h.JobHistory.DeleteJobHistory)
			})

			pr.Route("/reports", func(rr chi.Router) {
				rr.Get("/summary", h.Report.GetSummary)
				rr.Get("/departments", h.Report.GetDepartmentsChart)
				rr.Get("/jobs", h.Report.GetJobsChart)
				rr.Get("/headcount", h.Report.GetHeadcountChart)
				rr.Get("/salary-trends", h.Report.GetSalaryTrends)
			})

			// Admin surface. Services re-check the caller on top of this.
			pr.Route("/admin", func(ar chi.Router) {
				ar.Use(rbac.RequireAdmin(logger))

				ar.Get("/user-roles", h.RBAC.ListUserRoles)
				ar.Get("/user-permissions", h.RBAC.ListUserPermissions)
				ar.Put("/users/{id}/role", h.RBAC.UpdateUserRole)
				ar.Put("/users/{id}/permissions/{table}", h.RBAC.UpdateUserPermission)

				ar.Get("/deleted/{table}", h.Records.ListDeleted)
				ar.Post("/restore/{table}/{id}", h.Records.Restore)
			})
		})
	})
}
