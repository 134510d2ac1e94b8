package domain

import (
	"context"
	"time"
)

type Program struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id" yaml:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name" yaml:"name"`
}

func (Program) TableName() string { return "programs" }

type RoomType struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id" yaml:"id"`
	Type string `gorm:"type:varchar(100);not null;uniqueIndex" json:"type" yaml:"type"`
}

func (RoomType) TableName() string { return "roomtypes" }

type PaymentPlan struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id" yaml:"id"`
	Type string `gorm:"type:varchar(100);not null;uniqueIndex" json:"type" yaml:"type"`
}

func (PaymentPlan) TableName() string { return "paymentplan" }

// EnrollmentPlan marks a (program, room type) combination as enrollable.
type EnrollmentPlan struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProgramID  uint      `gorm:"not null;uniqueIndex:idx_enrollmentplans_program_room" json:"programId"`
	Program    *Program  `gorm:"foreignKey:ProgramID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	RoomTypeID uint      `gorm:"not null;uniqueIndex:idx_enrollmentplans_program_room" json:"roomTypeId"`
	RoomType   *RoomType `gorm:"foreignKey:RoomTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (EnrollmentPlan) TableName() string { return "enrollmentplans" }

// EnrollmentPlanView is an enrollment plan with its program and room names.
type EnrollmentPlanView struct {
	ID         uint   `json:"id"`
	ProgramID  uint   `json:"programId"`
	Program    string `json:"programType"`
	RoomTypeID uint   `json:"roomTypeId"`
	RoomType   string `json:"roomType"`
}

// LookupRef selects a lookup row. A non-zero ID wins; otherwise Name is matched
// case-insensitively after trimming.
type LookupRef struct {
	ID   uint
	Name string
}

func (r LookupRef) IsZero() bool {
	return r.ID == 0 && r.Name == ""
}

type LookupRepo interface {
	GetPrograms(ctx context.Context) (*[]Program, error)
	GetRoomTypes(ctx context.Context) (*[]RoomType, error)
	GetPaymentPlans(ctx context.Context) (*[]PaymentPlan, error)
	GetEnrollmentPlans(ctx context.Context) (*[]EnrollmentPlanView, error)
}

type LookupUseCase interface {
	GetPrograms(ctx context.Context) (*[]Program, error)
	GetRoomTypes(ctx context.Context) (*[]RoomType, error)
	GetPaymentPlans(ctx context.Context) (*[]PaymentPlan, error)
	GetEnrollmentPlans(ctx context.Context) (*[]EnrollmentPlanView, error)
}

// LookupCache stores serialized lookup lists. A nil LookupCache disables caching.
type LookupCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}
