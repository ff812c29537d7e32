package report

// Summary is the headline card row of the dashboard.
type Summary struct {
	TotalEmployees   int     `json:"total_employees"`
	AverageSalary    float64 `json:"average_salary"`
	TotalDepartments int     `json:"total_departments"`
	TotalJobs        int     `json:"total_jobs"`
}

// DepartmentHeadcount is one bar of the employees-per-department chart.
// Departments with no employees are omitted.
type DepartmentHeadcount struct {
	DeptCode  string  `json:"deptcode"`
	DeptName  *string `json:"deptname"`
	Employees int     `json:"employees"`
}

// JobHeadcount is one bar of the employees-per-job chart.
type JobHeadcount struct {
	JobCode   string  `json:"jobcode"`
	JobDesc   *string `json:"jobdesc"`
	Employees int     `json:"employees"`
}

// HireYearCount is one point of the headcount-by-hire-year chart.
type HireYearCount struct {
	Year      int `json:"year"`
	Employees int `json:"employees"`
}

// SalaryTrendPoint is one point of the salary trend chart: the average
// salary and distinct employee count across history rows effective that year.
type SalaryTrendPoint struct {
	Year          int     `json:"year"`
	AverageSalary float64 `json:"average_salary"`
	Employees     int     `json:"employees"`
}
