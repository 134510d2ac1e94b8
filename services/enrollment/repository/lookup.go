package repository

import (
	"context"
	"fmt"
	"strings"

	"enrollment/domain"

	"gorm.io/gorm"
)

type lookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(database *gorm.DB) domain.LookupRepo {
	return &lookupRepository{
		db: database,
	}
}

func (lr *lookupRepository) GetPrograms(ctx context.Context) (*[]domain.Program, error) {
	programs := []domain.Program{}
	if err := lr.db.WithContext(ctx).Order("id").Find(&programs).Error; err != nil {
		return nil, fmt.Errorf("could not get programs: %w", err)
	}
	return &programs, nil
}

func (lr *lookupRepository) GetRoomTypes(ctx context.Context) (*[]domain.RoomType, error) {
	rooms := []domain.RoomType{}
	if err := lr.db.WithContext(ctx).Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("could not get room types: %w", err)
	}
	return &rooms, nil
}

func (lr *lookupRepository) GetPaymentPlans(ctx context.Context) (*[]domain.PaymentPlan, error) {
	plans := []domain.PaymentPlan{}
	if err := lr.db.WithContext(ctx).Order("id").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("could not get payment plans: %w", err)
	}
	return &plans, nil
}

func (lr *lookupRepository) GetEnrollmentPlans(ctx context.Context) (*[]domain.EnrollmentPlanView, error) {
	views := []domain.EnrollmentPlanView{}
	err := lr.db.WithContext(ctx).
		Table("enrollmentplans AS ep").
		Select("ep.id AS id, p.id AS program_id, p.name AS program, rt.id AS room_type_id, rt.type AS room_type").
		Joins("JOIN programs p ON p.id = ep.program_id").
		Joins("JOIN roomtypes rt ON rt.id = ep.room_type_id").
		Order("ep.id").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("could not get enrollment plans: %w", err)
	}
	return &views, nil
}

// resolveLookupID returns the id of the lookup row selected by ref, or 0 when
// nothing matches.
func resolveLookupID(tx *gorm.DB, model interface{}, nameColumn string, ref domain.LookupRef) (uint, error) {
	q := tx.Model(model)
	if ref.ID != 0 {
		q = q.Where("id = ?", ref.ID)
	} else {
		name := strings.ToLower(strings.TrimSpace(ref.Name))
		if name == "" {
			return 0, nil
		}
		q = q.Where(fmt.Sprintf("LOWER(TRIM(%s)) = ?", nameColumn), name)
	}

	var ids []uint
	if err := q.Limit(1).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

func resolveEnrollmentPlanID(tx *gorm.DB, programID, roomTypeID uint) (uint, error) {
	var ids []uint
	err := tx.Model(&domain.EnrollmentPlan{}).
		Where("program_id = ? AND room_type_id = ?", programID, roomTypeID).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}
