package cmd

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with directions, departments, accounts and personnel records for development and testing.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			clearTables(db)
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		seedAll(db, string(hash))
	},
}

func clearTables(db *sqlx.DB) {
	tables := []string{
		"leave_notifications", "leaves", "attendances", "employees",
		"manager_profile_directions", "manager_profiles", "company_profiles",
		"departments", "directions", "users",
	}
	for _, t := range tables {
		if _, err := db.Exec("DELETE FROM " + t); err != nil {
			log.Fatalf("failed to clear %s: %v", t, err)
		}
	}
	fmt.Println("cleared existing data")
}

func seedAll(db *sqlx.DB, passwordHash string) {
	directions := []string{
		"Direction des Ressources Humaines",
		"Direction des Services Informatiques",
		"Direction des Affaires Financières",
	}
	for _, name := range directions {
		ensureRow(db,
			"SELECT id FROM directions WHERE name = $1",
			"INSERT INTO directions (name, created_at, updated_at) VALUES ($1, now(), now())",
			name)
	}

	departments := []struct {
		name    string
		manager string
	}{
		{"SODECI", "K. Kouassi"},
		{"CIE", "A. Diabaté"},
		{"Orange CI", "M. Koné"},
	}
	for _, d := range departments {
		ensureRow(db,
			"SELECT id FROM departments WHERE name = $1",
			"INSERT INTO departments (name, manager, description, created_at, updated_at) VALUES ($1, $2, '', now(), now())",
			d.name, d.manager)
	}

	users := []struct {
		username  string
		email     string
		firstName string
		lastName  string
		superuser bool
		staff     bool
	}{
		{"admin", "admin@personnel.local", "System", "Admin", true, true},
		{"manager.rh", "manager.rh@personnel.local", "Awa", "Traoré", false, true},
		{"sodeci", "rh@sodeci.local", "Compte", "SODECI", false, false},
		{"j.kouadio", "j.kouadio@personnel.local", "Jean", "Kouadio", false, false},
	}
	for _, u := range users {
		ensureRow(db,
			"SELECT id FROM users WHERE username = $1",
			`INSERT INTO users (username, email, first_name, last_name, password_hash, is_superuser, is_staff, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, true, now(), now())`,
			u.username, u.email, u.firstName, u.lastName, passwordHash, u.superuser, u.staff)
	}

	// manager.rh supervises the HR direction
	managerID := mustID(db, "SELECT id FROM users WHERE username = $1", "manager.rh")
	profileID := ensureRow(db,
		"SELECT id FROM manager_profiles WHERE user_id = $1",
		"INSERT INTO manager_profiles (user_id, created_at, updated_at) VALUES ($1, now(), now())",
		managerID)
	directionID := mustID(db, "SELECT id FROM directions WHERE name = $1", "Direction des Ressources Humaines")
	ensureLink(db,
		"SELECT 1 FROM manager_profile_directions WHERE manager_profile_id = $1 AND direction_id = $2",
		"INSERT INTO manager_profile_directions (manager_profile_id, direction_id) VALUES ($1, $2)",
		profileID, directionID)

	// the sodeci account is the SODECI company's enterprise login
	enterpriseID := mustID(db, "SELECT id FROM users WHERE username = $1", "sodeci")
	sodeciID := mustID(db, "SELECT id FROM departments WHERE name = $1", "SODECI")
	ensureRow(db,
		"SELECT id FROM company_profiles WHERE user_id = $1",
		"INSERT INTO company_profiles (user_id, department_id, created_at, updated_at) VALUES ($1, $2, now(), now())",
		enterpriseID, sodeciID)

	employeeUserID := mustID(db, "SELECT id FROM users WHERE username = $1", "j.kouadio")
	employees := []struct {
		matricule string
		firstName string
		lastName  string
		email     string
		deptID    int64
		direction string
		position  string
		userID    *int64
	}{
		{"CT-0001", "Jean", "Kouadio", "j.kouadio@personnel.local", sodeciID, "Direction des Ressources Humaines", "Assistant RH", &employeeUserID},
		{"CT-0002", "Mariam", "Bamba", "m.bamba@personnel.local", sodeciID, "Direction des Ressources Humaines", "Agent administratif", nil},
		{"CT-0003", "Issa", "Ouattara", "i.ouattara@personnel.local", mustID(db, "SELECT id FROM departments WHERE name = $1", "CIE"), "Direction des Services Informatiques", "Technicien", nil},
	}
	for _, e := range employees {
		var userID interface{}
		if e.userID != nil {
			userID = *e.userID
		}
		ensureRow(db,
			"SELECT id FROM employees WHERE matricule = $1",
			`INSERT INTO employees (matricule, first_name, last_name, email, hire_date, department_id, direction, position, salary, children_count, status, user_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, now(), $5, $6, $7, 0, 0, 'active', $8, now(), now())`,
			e.matricule, e.firstName, e.lastName, e.email, e.deptID, e.direction, e.position, userID)
	}

	fmt.Println("seed complete; all accounts use password 'password'")
}

// ensureRow inserts unless the lookup already matches, then returns the id.
// The first argument of the insert must open the lookup key.
func ensureRow(db *sqlx.DB, lookup, insert string, args ...interface{}) int64 {
	var id int64
	err := db.QueryRow(lookup, args[0]).Scan(&id)
	if err == nil {
		return id
	}
	if err != sql.ErrNoRows {
		log.Fatalf("seed lookup failed: %v", err)
	}
	if _, err := db.Exec(insert, args...); err != nil {
		log.Fatalf("seed insert failed: %v", err)
	}
	if err := db.QueryRow(lookup, args[0]).Scan(&id); err != nil {
		log.Fatalf("seed re-lookup failed: %v", err)
	}
	return id
}

func ensureLink(db *sqlx.DB, lookup, insert string, args ...interface{}) {
	var one int
	err := db.QueryRow(lookup, args...).Scan(&one)
	if err == nil {
		return
	}
	if err != sql.ErrNoRows {
		log.Fatalf("seed lookup failed: %v", err)
	}
	if _, err := db.Exec(insert, args...); err != nil {
		log.Fatalf("seed insert failed: %v", err)
	}
}

func mustID(db *sqlx.DB, query string, args ...interface{}) int64 {
	var id int64
	if err := db.QueryRow(query, args...).Scan(&id); err != nil {
		log.Fatalf("seed lookup failed: %v", err)
	}
	return id
}
