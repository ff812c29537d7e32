package report

import (
	"log/slog"
	"sort"

	"github.com/frahmantamala/hr-management/internal/department"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/job"
	"github.com/frahmantamala/hr-management/internal/jobhistory"
)

// Repository supplies the active record sets the aggregations run over.
// Deleted rows never contribute to any chart.
type Repository interface {
	ActiveEmployees() ([]*employee.Employee, error)
	ActiveJobs() ([]*job.Job, error)
	ActiveDepartments() ([]*department.Department, error)
	ActiveJobHistory() ([]*jobhistory.JobHistory, error)
}

// Service computes the dashboard aggregates in process. The data sets are
// small HR master tables; shipping them once beats a dialect-specific SQL
// query per chart.
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

func (s *Service) Summary() (*Summary, error) {
	employees, err := s.repo.ActiveEmployees()
	if err != nil {
		return nil, err
	}
	jobs, err := s.repo.ActiveJobs()
	if err != nil {
		return nil, err
	}
	departments, err := s.repo.ActiveDepartments()
	if err != nil {
		return nil, err
	}
	history, err := s.repo.ActiveJobHistory()
	if err != nil {
		return nil, err
	}

	var salarySum float64
	var salaryCount int
	for _, jh := range history {
		if jh.Salary != nil {
			salarySum += *jh.Salary
			salaryCount++
		}
	}
	var avg float64
	if salaryCount > 0 {
		avg = salarySum / float64(salaryCount)
	}

	return &Summary{
		TotalEmployees:   len(employees),
		AverageSalary:    avg,
		TotalDepartments: len(departments),
		TotalJobs:        len(jobs),
	}, nil
}

// DepartmentsChart counts distinct employees per department across active
// history rows, largest first.
func (s *Service) DepartmentsChart() ([]DepartmentHeadcount, error) {
	departments, err := s.repo.ActiveDepartments()
	if err != nil {
		return nil, err
	}
	history, err := s.repo.ActiveJobHistory()
	if err != nil {
		return nil, err
	}

	names := make(map[string]*string, len(departments))
	for _, d := range departments {
		names[d.DeptCode] = d.DeptName
	}

	byDept := make(map[string]map[string]struct{})
	for _, jh := range history {
		if jh.DeptCode == nil {
			continue
		}
		if _, known := names[*jh.DeptCode]; !known {
			continue
		}
		emps, ok := byDept[*jh.DeptCode]
		if !ok {
			emps = make(map[string]struct{})
			byDept[*jh.DeptCode] = emps
		}
		emps[jh.EmpNo] = struct{}{}
	}

	result := make([]DepartmentHeadcount, 0, len(byDept))
	for code, emps := range byDept {
		result = append(result, DepartmentHeadcount{
			DeptCode:  code,
			DeptName:  names[code],
			Employees: len(emps),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Employees != result[j].Employees {
			return result[i].Employees > result[j].Employees
		}
		return result[i].DeptCode < result[j].DeptCode
	})
	return result, nil
}

// JobsChart counts distinct employees per job across active history rows.
func (s *Service) JobsChart() ([]JobHeadcount, error) {
	jobs, err := s.repo.ActiveJobs()
	if err != nil {
		return nil, err
	}
	history, err := s.repo.ActiveJobHistory()
	if err != nil {
		return nil, err
	}

	descs := make(map[string]*string, len(jobs))
	for _, j := range jobs {
		descs[j.JobCode] = j.JobDesc
	}

	byJob := make(map[string]map[string]struct{})
	for _, jh := range history {
		if _, known := descs[jh.JobCode]; !known {
			continue
		}
		emps, ok := byJob[jh.JobCode]
		if !ok {
			emps = make(map[string]struct{})
			byJob[jh.JobCode] = emps
		}
		emps[jh.EmpNo] = struct{}{}
	}

	result := make([]JobHeadcount, 0, len(byJob))
	for code, emps := range byJob {
		result = append(result, JobHeadcount{
			JobCode:   code,
			JobDesc:   descs[code],
			Employees: len(emps),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Employees != result[j].Employees {
			return result[i].Employees > result[j].Employees
		}
		return result[i].JobCode < result[j].JobCode
	})
	return result, nil
}

// HeadcountChart buckets active employees by hire year, ascending.
func (s *Service) HeadcountChart() ([]HireYearCount, error) {
	employees, err := s.repo.ActiveEmployees()
	if err != nil {
		return nil, err
	}

	byYear := make(map[int]int)
	for _, e := range employees {
		if e.HireDate == nil {
			continue
		}
		byYear[e.HireDate.Year()]++
	}

	result := make([]HireYearCount, 0, len(byYear))
	for year, count := range byYear {
		result = append(result, HireYearCount{Year: year, Employees: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	return result, nil
}

// SalaryTrends averages salaries per effective-date year across active
// history rows, ascending, alongside the distinct employees seen that year.
func (s *Service) SalaryTrends() ([]SalaryTrendPoint, error) {
	history, err := s.repo.ActiveJobHistory()
	if err != nil {
		return nil, err
	}

	type bucket struct {
		sum   float64
		count int
		emps  map[string]struct{}
	}
	byYear := make(map[int]*bucket)
	for _, jh := range history {
		if jh.Salary == nil {
			continue
		}
		year := jh.EffDate.Year()
		b, ok := byYear[year]
		if !ok {
			b = &bucket{emps: make(map[string]struct{})}
			byYear[year] = b
		}
		b.sum += *jh.Salary
		b.count++
		b.emps[jh.EmpNo] = struct{}{}
	}

	result := make([]SalaryTrendPoint, 0, len(byYear))
	for year, b := range byYear {
		result = append(result, SalaryTrendPoint{
			Year:          year,
			AverageSalary: b.sum / float64(b.count),
			Employees:     len(b.emps),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	return result, nil
}
