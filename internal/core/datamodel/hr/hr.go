package hr

import "time"

// Record status values shared by all HR tables. Rows are never removed by
// user actions once created; DELETED rows stay in storage until an admin
// restores them.
const (
	StatusAdded    = "ADDED"
	StatusEdited   = "EDITED"
	StatusDeleted  = "DELETED"
	StatusRestored = "RESTORED"
)

type Employee struct {
	EmpNo     string     `gorm:"column:empno;primaryKey"`
	FirstName *string    `gorm:"column:firstname"`
	LastName  *string    `gorm:"column:lastname"`
	Gender    *string    `gorm:"column:gender"`
	BirthDate *time.Time `gorm:"column:birthdate;type:date"`
	HireDate  *time.Time `gorm:"column:hiredate;type:date"`
	SepDate   *time.Time `gorm:"column:sepdate;type:date"`
	Email     *string    `gorm:"column:email"`
	Status    string     `gorm:"column:status;default:ADDED"`
	Stamp     time.Time  `gorm:"column:stamp"`
}

func (Employee) TableName() string {
	return "employee"
}

type Job struct {
	JobCode string    `gorm:"column:jobcode;primaryKey"`
	JobDesc *string   `gorm:"column:jobdesc"`
	Status  string    `gorm:"column:status;default:ADDED"`
	Stamp   time.Time `gorm:"column:stamp"`
}

func (Job) TableName() string {
	return "job"
}

type Department struct {
	DeptCode string    `gorm:"column:deptcode;primaryKey"`
	DeptName *string   `gorm:"column:deptname"`
	Status   string    `gorm:"column:status;default:ADDED"`
	Stamp    time.Time `gorm:"column:stamp"`
}

func (Department) TableName() string {
	return "department"
}

// JobHistory is keyed by the composite (empno, jobcode, effdate).
type JobHistory struct {
	EmpNo    string    `gorm:"column:empno;primaryKey"`
	JobCode  string    `gorm:"column:jobcode;primaryKey"`
	EffDate  time.Time `gorm:"column:effdate;primaryKey;type:date"`
	DeptCode *string   `gorm:"column:deptcode"`
	Salary   *float64  `gorm:"column:salary"`
	Status   string    `gorm:"column:status;default:ADDED"`
	Stamp    time.Time `gorm:"column:stamp"`
}

func (JobHistory) TableName() string {
	return "jobhistory"
}
