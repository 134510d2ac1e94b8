package repository

import (
	"context"
	"database/sql"
	"fmt"

	"enrollment/domain"

	"gorm.io/gorm"
)

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(database *gorm.DB) domain.StudentRepo {
	return &studentRepository{
		db: database,
	}
}

const studentSelect = `
SELECT
	c.id               AS child_id,
	c.first_name       AS child_first_name,
	c.middle_name      AS child_middle_name,
	c.last_name        AS child_last_name,
	c.gender           AS child_gender,
	c.date_of_birth    AS child_date_of_birth,
	c.place_of_birth   AS child_place_of_birth,
	c.parent_user_id   AS parent_user_id,
	g.id                   AS guardian_id,
	g.first_name           AS guardian_first_name,
	g.middle_name          AS guardian_middle_name,
	g.last_name            AS guardian_last_name,
	cg.relationship        AS relationship,
	g.email                AS guardian_email,
	g.address              AS guardian_address,
	g.city                 AS guardian_city,
	g.state                AS guardian_state,
	g.zip_code             AS guardian_zip_code,
	g.country              AS guardian_country,
	g.primary_phone_type   AS primary_phone_type,
	g.primary_phone_number AS primary_phone_number,
	g.alt_phone_type       AS alt_phone_type,
	g.alt_phone_number     AS alt_phone_number,
	m.physician_first_name  AS physician_first_name,
	m.physician_middle_name AS physician_middle_name,
	m.physician_last_name   AS physician_last_name,
	m.address               AS medical_address,
	m.city                  AS medical_city,
	m.state                 AS medical_state,
	m.zip_code              AS medical_zip_code,
	m.phone_number          AS medical_phone_number,
	cf.emergency_contact_name  AS emergency_contact_name,
	cf.emergency_contact_phone AS emergency_contact_phone,
	cf.address                 AS care_address,
	cf.city                    AS care_city,
	cf.state                   AS care_state,
	cf.zip_code                AS care_zip_code,
	cf.phone_type              AS care_phone_type,
	r.id              AS registration_id,
	r.status          AS status,
	r.amount          AS amount,
	r.enrollment_date AS enrollment_date,
	ep.id AS enrollment_plan_id,
	p.id    AS program_id,
	p.name  AS program_type,
	rt.id   AS room_type_id,
	rt.type AS room_type,
	pp.id   AS payment_plan_id,
	pp.type AS plan_type
FROM children c
LEFT JOIN child_guardians cg ON cg.child_id = c.id AND cg.is_primary = ?
LEFT JOIN guardians g        ON g.id = cg.guardian_id
LEFT JOIN medicalcontacts m  ON m.child_id = c.id
LEFT JOIN carefacilities cf  ON cf.child_id = c.id
LEFT JOIN registrations r    ON r.child_id = c.id
LEFT JOIN enrollmentplans ep ON ep.id = r.enrollment_plan_id
LEFT JOIN programs p         ON p.id = ep.program_id
LEFT JOIN roomtypes rt       ON rt.id = ep.room_type_id
LEFT JOIN paymentplan pp     ON pp.id = r.payment_plan_id
`

// studentRow is one flat row of studentSelect. Everything outside children is
// nullable because of the outer joins.
type studentRow struct {
	ChildID           uint           `gorm:"column:child_id"`
	ChildFirstName    string         `gorm:"column:child_first_name"`
	ChildMiddleName   sql.NullString `gorm:"column:child_middle_name"`
	ChildLastName     string         `gorm:"column:child_last_name"`
	ChildGender       string         `gorm:"column:child_gender"`
	ChildDateOfBirth  sql.NullTime   `gorm:"column:child_date_of_birth"`
	ChildPlaceOfBirth sql.NullString `gorm:"column:child_place_of_birth"`
	ParentUserID      sql.NullInt64  `gorm:"column:parent_user_id"`

	GuardianID         sql.NullInt64  `gorm:"column:guardian_id"`
	GuardianFirstName  sql.NullString `gorm:"column:guardian_first_name"`
	GuardianMiddleName sql.NullString `gorm:"column:guardian_middle_name"`
	GuardianLastName   sql.NullString `gorm:"column:guardian_last_name"`
	Relationship       sql.NullString `gorm:"column:relationship"`
	GuardianEmail      sql.NullString `gorm:"column:guardian_email"`
	GuardianAddress    sql.NullString `gorm:"column:guardian_address"`
	GuardianCity       sql.NullString `gorm:"column:guardian_city"`
	GuardianState      sql.NullString `gorm:"column:guardian_state"`
	GuardianZipCode    sql.NullString `gorm:"column:guardian_zip_code"`
	GuardianCountry    sql.NullString `gorm:"column:guardian_country"`
	PrimaryPhoneType   sql.NullString `gorm:"column:primary_phone_type"`
	PrimaryPhoneNumber sql.NullString `gorm:"column:primary_phone_number"`
	AltPhoneType       sql.NullString `gorm:"column:alt_phone_type"`
	AltPhoneNumber     sql.NullString `gorm:"column:alt_phone_number"`

	PhysicianFirstName  sql.NullString `gorm:"column:physician_first_name"`
	PhysicianMiddleName sql.NullString `gorm:"column:physician_middle_name"`
	PhysicianLastName   sql.NullString `gorm:"column:physician_last_name"`
	MedicalAddress      sql.NullString `gorm:"column:medical_address"`
	MedicalCity         sql.NullString `gorm:"column:medical_city"`
	MedicalState        sql.NullString `gorm:"column:medical_state"`
	MedicalZipCode      sql.NullString `gorm:"column:medical_zip_code"`
	MedicalPhoneNumber  sql.NullString `gorm:"column:medical_phone_number"`

	EmergencyContactName  sql.NullString `gorm:"column:emergency_contact_name"`
	EmergencyContactPhone sql.NullString `gorm:"column:emergency_contact_phone"`
	CareAddress           sql.NullString `gorm:"column:care_address"`
	CareCity              sql.NullString `gorm:"column:care_city"`
	CareState             sql.NullString `gorm:"column:care_state"`
	CareZipCode           sql.NullString `gorm:"column:care_zip_code"`
	CarePhoneType         sql.NullString `gorm:"column:care_phone_type"`

	RegistrationID   sql.NullInt64   `gorm:"column:registration_id"`
	Status           sql.NullString  `gorm:"column:status"`
	Amount           sql.NullFloat64 `gorm:"column:amount"`
	EnrollmentDate   sql.NullTime    `gorm:"column:enrollment_date"`
	EnrollmentPlanID sql.NullInt64   `gorm:"column:enrollment_plan_id"`
	ProgramID        sql.NullInt64   `gorm:"column:program_id"`
	ProgramType      sql.NullString  `gorm:"column:program_type"`
	RoomTypeID       sql.NullInt64   `gorm:"column:room_type_id"`
	RoomType         sql.NullString  `gorm:"column:room_type"`
	PaymentPlanID    sql.NullInt64   `gorm:"column:payment_plan_id"`
	PlanType         sql.NullString  `gorm:"column:plan_type"`
}

func (sr *studentRepository) GetStudentByID(ctx context.Context, childID uint) (*domain.Student, error) {
	var rows []studentRow
	err := sr.db.WithContext(ctx).
		Raw(studentSelect+"WHERE c.id = ?", true, childID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get student %d: %w", childID, err)
	}

	students := groupStudents(rows)
	if len(students) == 0 {
		return nil, &domain.NotFoundError{Resource: "student", Key: childID}
	}
	return &students[0], nil
}

func (sr *studentRepository) GetAllStudents(ctx context.Context, filter domain.StudentFilter) (*[]domain.Student, error) {
	query := studentSelect
	args := []interface{}{true}
	if filter.ParentUserID != nil {
		query += "WHERE c.parent_user_id = ?\n"
		args = append(args, *filter.ParentUserID)
	}
	query += "ORDER BY c.id"

	var rows []studentRow
	if err := sr.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("could not get students: %w", err)
	}

	students := groupStudents(rows)
	return &students, nil
}

// groupStudents folds joined rows into one Student per child, keeping the
// order in which children first appear.
func groupStudents(rows []studentRow) []domain.Student {
	students := make([]domain.Student, 0, len(rows))
	seen := make(map[uint]struct{}, len(rows))
	for i := range rows {
		if _, ok := seen[rows[i].ChildID]; ok {
			continue
		}
		seen[rows[i].ChildID] = struct{}{}
		students = append(students, rows[i].toStudent())
	}
	return students
}

func (r *studentRow) toStudent() domain.Student {
	var s domain.Student

	s.ChildInfo = domain.StudentChildInfo{
		ChildID:      r.ChildID,
		FirstName:    r.ChildFirstName,
		MiddleName:   r.ChildMiddleName.String,
		LastName:     r.ChildLastName,
		Gender:       r.ChildGender,
		DateOfBirth:  nullDate(r.ChildDateOfBirth),
		PlaceOfBirth: r.ChildPlaceOfBirth.String,
		ParentUserID: nullID(r.ParentUserID),
	}

	s.ParentGuardianInfo = domain.StudentGuardianInfo{
		GuardianID:         nullID(r.GuardianID),
		FirstName:          r.GuardianFirstName.String,
		MiddleName:         r.GuardianMiddleName.String,
		LastName:           r.GuardianLastName.String,
		Relationship:       r.Relationship.String,
		Email:              r.GuardianEmail.String,
		Address:            r.GuardianAddress.String,
		City:               r.GuardianCity.String,
		State:              r.GuardianState.String,
		ZipCode:            r.GuardianZipCode.String,
		Country:            r.GuardianCountry.String,
		PrimaryPhoneType:   r.PrimaryPhoneType.String,
		PrimaryPhoneNumber: r.PrimaryPhoneNumber.String,
		AltPhoneType:       nullString(r.AltPhoneType),
		AltPhoneNumber:     nullString(r.AltPhoneNumber),
	}

	s.MedicalInfo = domain.StudentMedicalInfo{
		PhysicianFirstName:  r.PhysicianFirstName.String,
		PhysicianMiddleName: r.PhysicianMiddleName.String,
		PhysicianLastName:   r.PhysicianLastName.String,
		PhysicianName: domain.JoinName(
			r.PhysicianFirstName.String,
			r.PhysicianMiddleName.String,
			r.PhysicianLastName.String,
		),
		Address:     r.MedicalAddress.String,
		City:        r.MedicalCity.String,
		State:       r.MedicalState.String,
		ZipCode:     r.MedicalZipCode.String,
		PhoneNumber: r.MedicalPhoneNumber.String,
	}

	s.CareFacilityInfo = domain.StudentCareFacilityInfo{
		EmergencyContactName:  r.EmergencyContactName.String,
		EmergencyContactPhone: r.EmergencyContactPhone.String,
		Address:               r.CareAddress.String,
		City:                  r.CareCity.String,
		State:                 r.CareState.String,
		ZipCode:               r.CareZipCode.String,
		PhoneType:             r.CarePhoneType.String,
	}

	s.EnrollmentProgramDetails = domain.StudentEnrollment{
		RegistrationID:   nullID(r.RegistrationID),
		EnrollmentPlanID: nullID(r.EnrollmentPlanID),
		ProgramID:        nullID(r.ProgramID),
		ProgramType:      r.ProgramType.String,
		RoomTypeID:       nullID(r.RoomTypeID),
		RoomType:         r.RoomType.String,
		PaymentPlanID:    nullID(r.PaymentPlanID),
		PlanType:         r.PlanType.String,
		EnrollmentDate:   nullDate(r.EnrollmentDate),
		Status:           r.Status.String,
		Amount:           r.Amount.Float64,
	}

	return s
}

func nullID(v sql.NullInt64) *uint {
	if !v.Valid {
		return nil
	}
	id := uint(v.Int64)
	return &id
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullDate(v sql.NullTime) string {
	if !v.Valid {
		return ""
	}
	return domain.FormatDate(v.Time)
}
