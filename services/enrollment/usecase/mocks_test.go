package usecase

import (
	"context"
	"time"

	"enrollment/domain"

	"github.com/stretchr/testify/mock"
)

type mockRegistrationRepo struct {
	mock.Mock
}

func (m *mockRegistrationRepo) CreateRegistration(ctx context.Context, req *domain.RegistrationRequest) (uint, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockRegistrationRepo) UpdateRegistration(ctx context.Context, childID uint, req *domain.RegistrationUpdate) error {
	args := m.Called(ctx, childID, req)
	return args.Error(0)
}

func (m *mockRegistrationRepo) GetChildOwner(ctx context.Context, childID uint) (*uint, error) {
	args := m.Called(ctx, childID)
	owner, _ := args.Get(0).(*uint)
	return owner, args.Error(1)
}

type mockLookupRepo struct {
	mock.Mock
}

func (m *mockLookupRepo) GetPrograms(ctx context.Context) (*[]domain.Program, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*[]domain.Program)
	return out, args.Error(1)
}

func (m *mockLookupRepo) GetRoomTypes(ctx context.Context) (*[]domain.RoomType, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*[]domain.RoomType)
	return out, args.Error(1)
}

func (m *mockLookupRepo) GetPaymentPlans(ctx context.Context) (*[]domain.PaymentPlan, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*[]domain.PaymentPlan)
	return out, args.Error(1)
}

func (m *mockLookupRepo) GetEnrollmentPlans(ctx context.Context) (*[]domain.EnrollmentPlanView, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*[]domain.EnrollmentPlanView)
	return out, args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// memoryCache is an in-process LookupCache that records what it stored.
type memoryCache struct {
	items map[string][]domain.Program
	sets  int
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	v, ok := c.items[key]
	if !ok {
		return false, nil
	}
	*(dest.(*[]domain.Program)) = v
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.sets++
	c.items[key] = *(value.(*[]domain.Program))
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}
