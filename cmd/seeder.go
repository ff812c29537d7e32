package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		_, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			clearTables(db)
		}

		now := time.Now()
		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		seedUsers := []struct {
			Email    string
			FullName string
			Role     string
		}{
			{"admin@hr.local", "Amir Admin", "admin"},
			{"staff@hr.local", "Sari Staff", "user"},
			{"blocked@hr.local", "Bram Blocked", "blocked"},
		}

		for _, u := range seedUsers {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists; skipping\n", u.Email)
				continue
			}

			userID := uuid.NewString()
			if err := db.Exec(
				"INSERT INTO users (id, email, full_name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, ?, ?)",
				userID, u.Email, u.FullName, string(hash), now, now,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}

			if err := db.Exec(
				"INSERT INTO user_roles (id, user_id, role, updated_at) VALUES (?, ?, ?, ?)",
				uuid.NewString(), userID, u.Role, now,
			).Error; err != nil {
				log.Fatalf("failed to insert role for %s: %v", u.Email, err)
			}
			fmt.Printf("seeded user %s with role %s\n", u.Email, u.Role)

			// the staff account demonstrates a row-level denial: everything
			// allowed by default except deleting employees
			if u.Role == "user" {
				if err := db.Exec(
					"INSERT INTO user_permissions (id, user_id, table_name, can_add, can_edit, can_delete, updated_at) VALUES (?, ?, 'employee', true, true, false, ?)",
					uuid.NewString(), userID, now,
				).Error; err != nil {
					log.Fatalf("failed to insert permission for %s: %v", u.Email, err)
				}
			}
		}

		seedHRData(db, now)
	},
}

func seedHRData(db *gorm.DB, now time.Time) {
	var exists int
	row := db.Raw("SELECT 1 FROM department WHERE deptcode = 'HR'").Row()
	if err := row.Scan(&exists); err == nil {
		fmt.Println("HR sample data already present; skipping")
		return
	}

	departments := [][2]string{
		{"HR", "Human Resources"},
		{"IT", "Information Technology"},
		{"FIN", "Finance"},
	}
	for _, d := range departments {
		if err := db.Exec(
			"INSERT INTO department (deptcode, deptname, status, stamp) VALUES (?, ?, 'ADDED', ?)",
			d[0], d[1], now,
		).Error; err != nil {
			log.Fatalf("failed to insert department %s: %v", d[0], err)
		}
	}

	jobs := [][2]string{
		{"DEV", "Software Developer"},
		{"MGR", "Manager"},
		{"ANL", "Analyst"},
	}
	for _, j := range jobs {
		if err := db.Exec(
			"INSERT INTO job (jobcode, jobdesc, status, stamp) VALUES (?, ?, 'ADDED', ?)",
			j[0], j[1], now,
		).Error; err != nil {
			log.Fatalf("failed to insert job %s: %v", j[0], err)
		}
	}

	employees := []struct {
		EmpNo     string
		FirstName string
		LastName  string
		Gender    string
		Email     string
		HireDate  string
	}{
		{"1001", "Amir", "Admin", "M", "admin@hr.local", "2018-02-01"},
		{"1002", "Sari", "Staff", "F", "staff@hr.local", "2020-07-15"},
		{"1003", "Dewi", "Analis", "F", "dewi@hr.local", "2022-01-10"},
	}
	for _, e := range employees {
		hireDate, _ := time.Parse("2006-01-02", e.HireDate)
		if err := db.Exec(
			"INSERT INTO employee (empno, firstname, lastname, gender, hiredate, email, status, stamp) VALUES (?, ?, ?, ?, ?, ?, 'ADDED', ?)",
			e.EmpNo, e.FirstName, e.LastName, e.Gender, hireDate, e.Email, now,
		).Error; err != nil {
			log.Fatalf("failed to insert employee %s: %v", e.EmpNo, err)
		}
	}

	history := []struct {
		EmpNo    string
		JobCode  string
		EffDate  string
		DeptCode string
		Salary   float64
	}{
		{"1001", "MGR", "2018-02-01", "HR", 9500},
		{"1002", "DEV", "2020-07-15", "IT", 7200},
		{"1002", "MGR", "2023-03-01", "IT", 8800},
		{"1003", "ANL", "2022-01-10", "FIN", 6400},
	}
	for _, h := range history {
		effDate, _ := time.Parse("2006-01-02", h.EffDate)
		if err := db.Exec(
			"INSERT INTO jobhistory (empno, jobcode, effdate, deptcode, salary, status, stamp) VALUES (?, ?, ?, ?, ?, 'ADDED', ?)",
			h.EmpNo, h.JobCode, effDate, h.DeptCode, h.Salary, now,
		).Error; err != nil {
			log.Fatalf("failed to insert jobhistory for %s: %v", h.EmpNo, err)
		}
	}

	fmt.Println("seeded HR sample data")
}

func clearTables(db *gorm.DB) {
	tables := []string{
		"jobhistory",
		"employee",
		"job",
		"department",
		"user_permissions",
		"user_roles",
		"users",
	}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			log.Fatalf("failed to clear table %s: %v", t, err)
		}
	}
	fmt.Println("cleared existing data")
}
