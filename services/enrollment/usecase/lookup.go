package usecase

import (
	"context"
	"time"

	"enrollment/config"
	"enrollment/domain"
)

// Cache keys for the lookup lists.
const (
	KeyPrograms        = "programs"
	KeyRoomTypes       = "room-types"
	KeyPaymentPlans    = "payment-plans"
	KeyEnrollmentPlans = "enrollment-plans"
)

var LookupKeys = []string{KeyPrograms, KeyRoomTypes, KeyPaymentPlans, KeyEnrollmentPlans}

type lookupUseCase struct {
	repo    domain.LookupRepo
	cache   domain.LookupCache
	ttl     time.Duration
	TimeOut time.Duration
}

// NewLookupUseCase reads lookup lists through cache when it is non-nil.
func NewLookupUseCase(repo domain.LookupRepo, cache domain.LookupCache, ttl, to time.Duration) domain.LookupUseCase {
	return &lookupUseCase{
		repo:    repo,
		cache:   cache,
		ttl:     ttl,
		TimeOut: to,
	}
}

func (lu *lookupUseCase) GetPrograms(ctx context.Context) (*[]domain.Program, error) {
	return cached(ctx, lu, KeyPrograms, lu.repo.GetPrograms)
}

func (lu *lookupUseCase) GetRoomTypes(ctx context.Context) (*[]domain.RoomType, error) {
	return cached(ctx, lu, KeyRoomTypes, lu.repo.GetRoomTypes)
}

func (lu *lookupUseCase) GetPaymentPlans(ctx context.Context) (*[]domain.PaymentPlan, error) {
	return cached(ctx, lu, KeyPaymentPlans, lu.repo.GetPaymentPlans)
}

func (lu *lookupUseCase) GetEnrollmentPlans(ctx context.Context) (*[]domain.EnrollmentPlanView, error) {
	return cached(ctx, lu, KeyEnrollmentPlans, lu.repo.GetEnrollmentPlans)
}

// cached serves key from the cache, falling back to load. Cache failures are
// logged and never fail the request.
func cached[T any](ctx context.Context, lu *lookupUseCase, key string, load func(context.Context) (*[]T, error)) (*[]T, error) {
	ctx, cancel := context.WithTimeout(ctx, lu.TimeOut)
	defer cancel()

	if lu.cache != nil {
		var out []T
		hit, err := lu.cache.Get(ctx, key, &out)
		if err != nil {
			config.GetLogrusInstance().WithError(err).WithField("key", key).Warn("lookup cache read failed")
		} else if hit {
			return &out, nil
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if lu.cache != nil {
		if err := lu.cache.Set(ctx, key, items, lu.ttl); err != nil {
			config.GetLogrusInstance().WithError(err).WithField("key", key).Warn("lookup cache write failed")
		}
	}
	return items, nil
}
