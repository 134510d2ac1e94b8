package domain

import "time"

const (
	RelationFather   = "Father"
	RelationMother   = "Mother"
	RelationGuardian = "Guardian"
)

type Guardian struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName          string    `gorm:"type:varchar(100);not null" json:"first_name"`
	MiddleName         string    `gorm:"type:varchar(100)" json:"middle_name"`
	LastName           string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email              string    `gorm:"type:varchar(255)" json:"email"`
	Address            string    `gorm:"type:varchar(255)" json:"address"`
	City               string    `gorm:"type:varchar(100)" json:"city"`
	State              string    `gorm:"type:varchar(100)" json:"state"`
	ZipCode            string    `gorm:"type:varchar(20)" json:"zip_code"`
	Country            string    `gorm:"type:varchar(100)" json:"country"`
	PrimaryPhoneType   string    `gorm:"type:varchar(20)" json:"primary_phone_type"`
	PrimaryPhoneNumber string    `gorm:"type:varchar(20);not null" json:"primary_phone_number"`
	AltPhoneType       *string   `gorm:"type:varchar(20)" json:"alt_phone_type"`
	AltPhoneNumber     *string   `gorm:"type:varchar(20)" json:"alt_phone_number"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Guardian) TableName() string { return "guardians" }

// ChildGuardian links a child to a guardian. At most one row per child carries
// IsPrimary; the partial unique index created at migration time enforces it.
type ChildGuardian struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChildID      uint      `gorm:"not null;index" json:"child_id"`
	Child        *Child    `gorm:"foreignKey:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	GuardianID   uint      `gorm:"not null;index" json:"guardian_id"`
	Guardian     *Guardian `gorm:"foreignKey:GuardianID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Relationship string    `gorm:"type:varchar(20);not null" json:"relationship"`
	IsPrimary    bool      `gorm:"not null;default:false" json:"is_primary"`
}

func (ChildGuardian) TableName() string { return "child_guardians" }
