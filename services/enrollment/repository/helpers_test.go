package repository

import (
	"context"
	"path/filepath"
	"testing"

	"enrollment/config"
	"enrollment/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB returns a migrated and seeded SQLite database in a temp directory.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_foreign_keys=on"

	db, err := config.OpenDB(config.DBConfig{Driver: config.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = config.CloseDB(db) })

	require.NoError(t, config.Migrate(db))
	data, err := config.DefaultSeedData()
	require.NoError(t, err)
	require.NoError(t, config.SeedLookups(context.Background(), db, data))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) domain.User {
	t.Helper()
	u := domain.User{Email: email, Password: "x", RoleID: domain.RoleParent}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func strPtr(s string) *string { return &s }

func validRequest(email string) *domain.RegistrationRequest {
	return &domain.RegistrationRequest{
		Email: email,
		ChildInfo: domain.ChildInfo{
			FirstName:    "Mia",
			MiddleName:   strPtr("Rose"),
			LastName:     "Lopez",
			Gender:       domain.GenderFemale,
			DateOfBirth:  "2021-03-14",
			PlaceOfBirth: strPtr("Austin"),
		},
		ParentGuardianInfo: domain.ParentGuardianInfo{
			FirstName:          "Ana",
			LastName:           "Lopez",
			Relationship:       domain.RelationMother,
			Email:              "Ana.Lopez@Example.com",
			Address:            "12 Oak St",
			City:               "Austin",
			State:              "TX",
			ZipCode:            "78701",
			Country:            "USA",
			PrimaryPhoneType:   "Mobile",
			PrimaryPhoneNumber: "(512) 555-0100",
			AltPhoneType:       strPtr("Work"),
			AltPhoneNumber:     strPtr("512-555-0199"),
		},
		MedicalInfo: domain.MedicalInfo{
			PhysicianFirstName: "Sam",
			PhysicianLastName:  "Reed",
			Address:            "1 Clinic Way",
			City:               "Austin",
			State:              "TX",
			ZipCode:            "78702",
			PhoneNumber:        "512.555.0123",
		},
		CareFacilityInfo: domain.CareFacilityInfo{
			EmergencyContactName:  "Luis Lopez",
			EmergencyContactPhone: "512 555 0111",
			Address:               "12 Oak St",
			City:                  "Austin",
			State:                 "TX",
			ZipCode:               "78701",
			PhoneType:             "Home",
		},
		EnrollmentProgramDetails: domain.EnrollmentSelection{
			ProgramType:    "Full Time",
			RoomType:       "Toddler",
			PlanType:       "Monthly",
			EnrollmentDate: "2024-09-01",
		},
	}
}

// rowCounts reports how many rows each table written by a registration holds.
func rowCounts(t *testing.T, db *gorm.DB) map[string]int64 {
	t.Helper()
	counts := map[string]int64{}
	for _, table := range []string{"children", "guardians", "child_guardians", "medicalcontacts", "carefacilities", "registrations"} {
		var n int64
		require.NoError(t, db.Table(table).Count(&n).Error)
		counts[table] = n
	}
	return counts
}

func requireNoRows(t *testing.T, db *gorm.DB) {
	t.Helper()
	for table, n := range rowCounts(t, db) {
		require.Zerof(t, n, "table %s has rows after a failed registration", table)
	}
}
