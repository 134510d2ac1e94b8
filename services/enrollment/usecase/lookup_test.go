package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"enrollment/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLookupReadsThroughCache(t *testing.T) {
	repo := new(mockLookupRepo)
	cache := &memoryCache{items: map[string][]domain.Program{}}
	uc := NewLookupUseCase(repo, cache, time.Minute, time.Second)

	programs := &[]domain.Program{{ID: 1, Name: "Full Time"}, {ID: 2, Name: "Part Time"}}
	repo.On("GetPrograms", mock.Anything).Return(programs, nil).Once()

	first, err := uc.GetPrograms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, *programs, *first)
	assert.Equal(t, 1, cache.sets)

	second, err := uc.GetPrograms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, *programs, *second)

	repo.AssertNumberOfCalls(t, "GetPrograms", 1)
}

func TestLookupWithoutCache(t *testing.T) {
	repo := new(mockLookupRepo)
	uc := NewLookupUseCase(repo, nil, time.Minute, time.Second)

	plans := &[]domain.PaymentPlan{{ID: 1, Type: "Weekly"}}
	repo.On("GetPaymentPlans", mock.Anything).Return(plans, nil).Twice()

	for i := 0; i < 2; i++ {
		got, err := uc.GetPaymentPlans(context.Background())
		require.NoError(t, err)
		assert.Equal(t, *plans, *got)
	}
	repo.AssertExpectations(t)
}

func TestLookupRepoErrorIsReturned(t *testing.T) {
	repo := new(mockLookupRepo)
	uc := NewLookupUseCase(repo, nil, time.Minute, time.Second)

	boom := errors.New("db down")
	repo.On("GetRoomTypes", mock.Anything).Return(nil, boom).Once()

	_, err := uc.GetRoomTypes(context.Background())
	require.ErrorIs(t, err, boom)
}
