package domain

import "context"

// Student is the denormalized read model of one child and everything linked to it.
type Student struct {
	ChildInfo                StudentChildInfo        `json:"childInfo"`
	ParentGuardianInfo       StudentGuardianInfo     `json:"parentGuardianInfo"`
	MedicalInfo              StudentMedicalInfo      `json:"medicalInfo"`
	CareFacilityInfo         StudentCareFacilityInfo `json:"careFacilityInfo"`
	EnrollmentProgramDetails StudentEnrollment       `json:"enrollmentProgramDetails"`
}

type StudentChildInfo struct {
	ChildID      uint   `json:"childId"`
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName"`
	LastName     string `json:"lastName"`
	Gender       string `json:"gender"`
	DateOfBirth  string `json:"dateOfBirth"`
	PlaceOfBirth string `json:"placeOfBirth"`
	ParentUserID *uint  `json:"parentUserId"`
}

type StudentGuardianInfo struct {
	GuardianID         *uint   `json:"guardianId"`
	FirstName          string  `json:"firstName"`
	MiddleName         string  `json:"middleName"`
	LastName           string  `json:"lastName"`
	Relationship       string  `json:"relationship"`
	Email              string  `json:"email"`
	Address            string  `json:"address"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	ZipCode            string  `json:"zipCode"`
	Country            string  `json:"country"`
	PrimaryPhoneType   string  `json:"primaryPhoneType"`
	PrimaryPhoneNumber string  `json:"primaryPhoneNumber"`
	AltPhoneType       *string `json:"altPhoneType"`
	AltPhoneNumber     *string `json:"altPhoneNumber"`
}

type StudentMedicalInfo struct {
	PhysicianFirstName  string `json:"physicianFirstName"`
	PhysicianMiddleName string `json:"physicianMiddleName"`
	PhysicianLastName   string `json:"physicianLastName"`
	PhysicianName       string `json:"physicianName"`
	Address             string `json:"address"`
	City                string `json:"city"`
	State               string `json:"state"`
	ZipCode             string `json:"zipCode"`
	PhoneNumber         string `json:"phoneNumber"`
}

type StudentCareFacilityInfo struct {
	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`
	Address               string `json:"address"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	ZipCode               string `json:"zipCode"`
	PhoneType             string `json:"phoneType"`
}

type StudentEnrollment struct {
	RegistrationID   *uint   `json:"registrationId"`
	EnrollmentPlanID *uint   `json:"enrollmentPlanId"`
	ProgramID        *uint   `json:"programId"`
	ProgramType      string  `json:"programType"`
	RoomTypeID       *uint   `json:"roomTypeId"`
	RoomType         string  `json:"roomType"`
	PaymentPlanID    *uint   `json:"paymentPlanId"`
	PlanType         string  `json:"planType"`
	EnrollmentDate   string  `json:"enrollmentDate"`
	Status           string  `json:"status"`
	Amount           float64 `json:"amount"`
}

// StudentFilter narrows GetAllStudents. A nil ParentUserID lists every child.
type StudentFilter struct {
	ParentUserID *uint
}

type StudentRepo interface {
	GetStudentByID(ctx context.Context, childID uint) (*Student, error)
	GetAllStudents(ctx context.Context, filter StudentFilter) (*[]Student, error)
}

type StudentUseCase interface {
	GetStudentByID(ctx context.Context, childID uint) (*Student, error)
	GetAllStudents(ctx context.Context, filter StudentFilter) (*[]Student, error)
}
