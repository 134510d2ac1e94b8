package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

const StatusPendingApproval = "Pending Approval"

type Registration struct {
	ID               uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ChildID          uint            `gorm:"not null;uniqueIndex" json:"child_id"`
	Child            *Child          `gorm:"foreignKey:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	EnrollmentPlanID uint            `gorm:"not null;index" json:"enrollment_plan_id"`
	EnrollmentPlan   *EnrollmentPlan `gorm:"foreignKey:EnrollmentPlanID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	PaymentPlanID    uint            `gorm:"not null;index" json:"payment_plan_id"`
	PaymentPlan      *PaymentPlan    `gorm:"foreignKey:PaymentPlanID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Status           string          `gorm:"type:varchar(50);not null;default:'Pending Approval'" json:"status"`
	Amount           float64         `gorm:"type:decimal(10,2);not null;default:0" json:"amount"`
	EnrollmentDate   *datatypes.Date `json:"enrollment_date"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Registration) TableName() string { return "registrations" }

// Optional text fields are pointers: on update nil keeps the stored value and
// an empty string clears it.
type ChildInfo struct {
	FirstName    string  `json:"firstName" valid:"required~Child first name is required"`
	MiddleName   *string `json:"middleName"`
	LastName     string  `json:"lastName" valid:"required~Child last name is required"`
	Gender       string  `json:"gender" valid:"required~Child gender is required,in(Male|Female|Other)~Invalid child gender"`
	DateOfBirth  string  `json:"dateOfBirth" valid:"required~Child date of birth is required"`
	PlaceOfBirth *string `json:"placeOfBirth"`
}

type ParentGuardianInfo struct {
	FirstName          string  `json:"firstName" valid:"required~Guardian first name is required"`
	MiddleName         *string `json:"middleName"`
	LastName           string  `json:"lastName" valid:"required~Guardian last name is required"`
	Relationship       string  `json:"relationship" valid:"required~Relationship is required,in(Father|Mother|Guardian)~Invalid relationship"`
	Email              string  `json:"email" valid:"email~Invalid guardian email format"`
	Address            string  `json:"address"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	ZipCode            string  `json:"zipCode"`
	Country            string  `json:"country"`
	PrimaryPhoneType   string  `json:"primaryPhoneType"`
	PrimaryPhoneNumber string  `json:"primaryPhoneNumber" valid:"required~Primary phone number is required"`
	AltPhoneType       *string `json:"altPhoneType"`
	AltPhoneNumber     *string `json:"altPhoneNumber"`
}

type MedicalInfo struct {
	PhysicianFirstName  string  `json:"physicianFirstName" valid:"required~Physician first name is required"`
	PhysicianMiddleName *string `json:"physicianMiddleName"`
	PhysicianLastName   string  `json:"physicianLastName" valid:"required~Physician last name is required"`
	Address             string  `json:"address"`
	City                string  `json:"city"`
	State               string  `json:"state"`
	ZipCode             string  `json:"zipCode"`
	PhoneNumber         string  `json:"phoneNumber"`
}

type CareFacilityInfo struct {
	EmergencyContactName  string `json:"emergencyContactName" valid:"required~Emergency contact name is required"`
	EmergencyContactPhone string `json:"emergencyContactPhone" valid:"required~Emergency contact phone is required"`
	Address               string `json:"address"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	ZipCode               string `json:"zipCode"`
	PhoneType             string `json:"phoneType"`
}

// EnrollmentSelection carries the program, room type and payment plan picked on
// the form. Ids take precedence over the display names.
type EnrollmentSelection struct {
	ProgramID      uint   `json:"programId"`
	ProgramType    string `json:"programType"`
	RoomTypeID     uint   `json:"roomTypeId"`
	RoomType       string `json:"roomType"`
	PaymentPlanID  uint   `json:"paymentPlanId"`
	PlanType       string `json:"planType"`
	EnrollmentDate string `json:"enrollmentDate"`
}

func (s EnrollmentSelection) Program() LookupRef {
	return LookupRef{ID: s.ProgramID, Name: s.ProgramType}
}

func (s EnrollmentSelection) Room() LookupRef {
	return LookupRef{ID: s.RoomTypeID, Name: s.RoomType}
}

func (s EnrollmentSelection) Plan() LookupRef {
	return LookupRef{ID: s.PaymentPlanID, Name: s.PlanType}
}

// RegistrationRequest is the full enrollment form. Sections are validated one
// at a time so that fields sharing a name in different sections stay apart.
type RegistrationRequest struct {
	Email                    string              `json:"email" valid:"required~Owner email is required,email~Invalid owner email format"`
	ChildInfo                ChildInfo           `json:"childInfo" valid:"-"`
	ParentGuardianInfo       ParentGuardianInfo  `json:"parentGuardianInfo" valid:"-"`
	MedicalInfo              MedicalInfo         `json:"medicalInfo" valid:"-"`
	CareFacilityInfo         CareFacilityInfo    `json:"careFacilityInfo" valid:"-"`
	EnrollmentProgramDetails EnrollmentSelection `json:"enrollmentProgramDetails" valid:"-"`
}

// RegistrationUpdate holds the sections to change; nil sections are left alone
// and empty strings inside a present section keep the stored value.
type RegistrationUpdate struct {
	ChildInfo                *ChildInfo           `json:"childInfo" valid:"-"`
	ParentGuardianInfo       *ParentGuardianInfo  `json:"parentGuardianInfo" valid:"-"`
	MedicalInfo              *MedicalInfo         `json:"medicalInfo" valid:"-"`
	CareFacilityInfo         *CareFacilityInfo    `json:"careFacilityInfo" valid:"-"`
	EnrollmentProgramDetails *EnrollmentSelection `json:"enrollmentProgramDetails" valid:"-"`
}

func (u *RegistrationUpdate) IsEmpty() bool {
	return u == nil || (u.ChildInfo == nil && u.ParentGuardianInfo == nil && u.MedicalInfo == nil &&
		u.CareFacilityInfo == nil && u.EnrollmentProgramDetails == nil)
}

type RegistrationRepo interface {
	CreateRegistration(ctx context.Context, req *RegistrationRequest) (uint, error)
	UpdateRegistration(ctx context.Context, childID uint, req *RegistrationUpdate) error
	GetChildOwner(ctx context.Context, childID uint) (*uint, error)
}

type RegistrationUseCase interface {
	CreateRegistration(ctx context.Context, req *RegistrationRequest) (uint, error)
	UpdateRegistration(ctx context.Context, childID uint, req *RegistrationUpdate) error
	UpdateEnrollment(ctx context.Context, childID uint, sel *EnrollmentSelection) error
	GetChildOwner(ctx context.Context, childID uint) (*uint, error)
}
