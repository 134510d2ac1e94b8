package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

type Child struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string         `gorm:"type:varchar(100);not null" json:"first_name"`
	MiddleName   string         `gorm:"type:varchar(100)" json:"middle_name"`
	LastName     string         `gorm:"type:varchar(100);not null" json:"last_name"`
	Gender       string         `gorm:"type:varchar(10);not null" json:"gender"`
	DateOfBirth  datatypes.Date `gorm:"not null" json:"date_of_birth"`
	PlaceOfBirth string         `gorm:"type:varchar(150)" json:"place_of_birth"`
	ParentUserID *uint          `gorm:"index" json:"parent_user_id"`
	ParentUser   *User          `gorm:"foreignKey:ParentUserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Child) TableName() string { return "children" }

type MedicalContact struct {
	ID                  uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ChildID             uint   `gorm:"not null;uniqueIndex" json:"child_id"`
	Child               *Child `gorm:"foreignKey:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PhysicianFirstName  string `gorm:"type:varchar(100)" json:"physician_first_name"`
	PhysicianMiddleName string `gorm:"type:varchar(100)" json:"physician_middle_name"`
	PhysicianLastName   string `gorm:"type:varchar(100)" json:"physician_last_name"`
	Address             string `gorm:"type:varchar(255)" json:"address"`
	City                string `gorm:"type:varchar(100)" json:"city"`
	State               string `gorm:"type:varchar(100)" json:"state"`
	ZipCode             string `gorm:"type:varchar(20)" json:"zip_code"`
	PhoneNumber         string `gorm:"type:varchar(20)" json:"phone_number"`
}

func (MedicalContact) TableName() string { return "medicalcontacts" }

type CareFacility struct {
	ID                    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ChildID               uint   `gorm:"not null;uniqueIndex" json:"child_id"`
	Child                 *Child `gorm:"foreignKey:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	EmergencyContactName  string `gorm:"type:varchar(150)" json:"emergency_contact_name"`
	EmergencyContactPhone string `gorm:"type:varchar(20)" json:"emergency_contact_phone"`
	Address               string `gorm:"type:varchar(255)" json:"address"`
	City                  string `gorm:"type:varchar(100)" json:"city"`
	State                 string `gorm:"type:varchar(100)" json:"state"`
	ZipCode               string `gorm:"type:varchar(20)" json:"zip_code"`
	PhoneType             string `gorm:"type:varchar(20)" json:"phone_type"`
}

func (CareFacility) TableName() string { return "carefacilities" }
