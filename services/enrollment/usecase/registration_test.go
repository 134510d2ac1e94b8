package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"enrollment/domain"
	"enrollment/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRequest() *domain.RegistrationRequest {
	return &domain.RegistrationRequest{
		Email: "parent@example.com",
		ChildInfo: domain.ChildInfo{
			FirstName:   "Mia",
			LastName:    "Lopez",
			Gender:      domain.GenderFemale,
			DateOfBirth: "2021-03-14",
		},
		ParentGuardianInfo: domain.ParentGuardianInfo{
			FirstName:          "Ana",
			LastName:           "Lopez",
			Relationship:       domain.RelationMother,
			PrimaryPhoneNumber: "5125550100",
		},
		MedicalInfo: domain.MedicalInfo{
			PhysicianFirstName: "Sam",
			PhysicianLastName:  "Reed",
		},
		CareFacilityInfo: domain.CareFacilityInfo{
			EmergencyContactName:  "Luis Lopez",
			EmergencyContactPhone: "5125550111",
		},
		EnrollmentProgramDetails: domain.EnrollmentSelection{
			ProgramType: "Full Time",
			RoomType:    "Toddler",
			PlanType:    "Monthly",
		},
	}
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func TestCreateRegistrationSuccess(t *testing.T) {
	repo := new(mockRegistrationRepo)
	m := newTestMetrics()
	uc := NewRegistrationUseCase(repo, m, time.Second)
	req := newRequest()

	repo.On("CreateRegistration", mock.Anything, req).Return(uint(7), nil).Once()

	id, err := uc.CreateRegistration(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationsCreated))
	repo.AssertExpectations(t)
}

func TestCreateRegistrationValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*domain.RegistrationRequest)
		field string
	}{
		{"missing owner email", func(r *domain.RegistrationRequest) { r.Email = "" }, "email"},
		{"bad owner email", func(r *domain.RegistrationRequest) { r.Email = "not-an-email" }, "email"},
		{"missing child name", func(r *domain.RegistrationRequest) { r.ChildInfo.FirstName = "" }, "firstName"},
		{"unknown gender", func(r *domain.RegistrationRequest) { r.ChildInfo.Gender = "Robot" }, "gender"},
		{"bad relationship", func(r *domain.RegistrationRequest) { r.ParentGuardianInfo.Relationship = "Uncle" }, "relationship"},
		{"bad date of birth", func(r *domain.RegistrationRequest) { r.ChildInfo.DateOfBirth = "14/03/2021" }, "dateOfBirth"},
		{"bad enrollment date", func(r *domain.RegistrationRequest) { r.EnrollmentProgramDetails.EnrollmentDate = "soon" }, "enrollmentDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRegistrationRepo)
			m := newTestMetrics()
			uc := NewRegistrationUseCase(repo, m, time.Second)

			req := newRequest()
			tt.edit(req)

			_, err := uc.CreateRegistration(context.Background(), req)
			require.Error(t, err)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, strings.ToLower(strings.Join(ve.Fields, " ")), strings.ToLower(tt.field))

			assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationFailures.WithLabelValues("create", "validation")))
			repo.AssertNotCalled(t, "CreateRegistration", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateRegistrationReportsEverySection(t *testing.T) {
	repo := new(mockRegistrationRepo)
	uc := NewRegistrationUseCase(repo, nil, time.Second)

	_, err := uc.CreateRegistration(context.Background(), &domain.RegistrationRequest{Email: "parent@example.com"})
	require.Error(t, err)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)

	assert.Subset(t, ve.Fields, []string{
		"childInfo.firstName",
		"childInfo.lastName",
		"parentGuardianInfo.firstName",
		"parentGuardianInfo.lastName",
		"medicalInfo.physicianFirstName",
		"careFacilityInfo.emergencyContactName",
	})
	assert.NotContains(t, ve.Fields, "email")
	for _, msg := range []string{
		"Child first name is required",
		"Child last name is required",
		"Guardian first name is required",
		"Guardian last name is required",
	} {
		assert.Contains(t, ve.Message, msg)
	}
	repo.AssertNotCalled(t, "CreateRegistration", mock.Anything, mock.Anything)
}

func TestCreateRegistrationRepoFailureIsCounted(t *testing.T) {
	repo := new(mockRegistrationRepo)
	m := newTestMetrics()
	uc := NewRegistrationUseCase(repo, m, time.Second)

	txErr := &domain.TransactionError{Op: "insert child", Err: errors.New("boom")}
	repo.On("CreateRegistration", mock.Anything, mock.Anything).Return(uint(0), txErr).Once()

	_, err := uc.CreateRegistration(context.Background(), newRequest())
	require.ErrorIs(t, err, txErr)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationFailures.WithLabelValues("create", "transaction")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RegistrationsCreated))
}

func TestCreateRegistrationAppliesTimeout(t *testing.T) {
	repo := new(mockRegistrationRepo)
	uc := NewRegistrationUseCase(repo, nil, 50*time.Millisecond)

	repo.On("CreateRegistration", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, ok := ctx.Deadline()
			assert.True(t, ok, "repository call should carry a deadline")
		}).
		Return(uint(1), nil).Once()

	_, err := uc.CreateRegistration(context.Background(), newRequest())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateRegistrationEmpty(t *testing.T) {
	repo := new(mockRegistrationRepo)
	uc := NewRegistrationUseCase(repo, nil, time.Second)

	err := uc.UpdateRegistration(context.Background(), 1, &domain.RegistrationUpdate{})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	repo.AssertNotCalled(t, "UpdateRegistration", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRegistrationChecksPresentValues(t *testing.T) {
	repo := new(mockRegistrationRepo)
	uc := NewRegistrationUseCase(repo, nil, time.Second)

	err := uc.UpdateRegistration(context.Background(), 1, &domain.RegistrationUpdate{
		ChildInfo:          &domain.ChildInfo{Gender: "Robot"},
		ParentGuardianInfo: &domain.ParentGuardianInfo{Email: "nope"},
	})
	require.Error(t, err)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"childInfo.gender", "parentGuardianInfo.email"}, ve.Fields)

	// Blank values inside a section are allowed and mean "keep".
	update := &domain.RegistrationUpdate{ChildInfo: &domain.ChildInfo{LastName: "Reed"}}
	repo.On("UpdateRegistration", mock.Anything, uint(1), update).Return(nil).Once()
	require.NoError(t, uc.UpdateRegistration(context.Background(), 1, update))
	repo.AssertExpectations(t)
}

func TestUpdateEnrollmentOnlyTouchesEnrollment(t *testing.T) {
	repo := new(mockRegistrationRepo)
	m := newTestMetrics()
	uc := NewRegistrationUseCase(repo, m, time.Second)
	sel := &domain.EnrollmentSelection{ProgramType: "Part Time", RoomType: "Infant", PlanType: "Weekly"}

	repo.On("UpdateRegistration", mock.Anything, uint(3), mock.MatchedBy(func(u *domain.RegistrationUpdate) bool {
		return u.EnrollmentProgramDetails == sel && u.ChildInfo == nil && u.ParentGuardianInfo == nil &&
			u.MedicalInfo == nil && u.CareFacilityInfo == nil
	})).Return(nil).Once()

	require.NoError(t, uc.UpdateEnrollment(context.Background(), 3, sel))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationsUpdated))
	repo.AssertExpectations(t)
}

func TestUpdateRegistrationNotFoundPassesThrough(t *testing.T) {
	repo := new(mockRegistrationRepo)
	uc := NewRegistrationUseCase(repo, nil, time.Second)
	update := &domain.RegistrationUpdate{ChildInfo: &domain.ChildInfo{FirstName: "X"}}

	repo.On("UpdateRegistration", mock.Anything, uint(9), update).
		Return(&domain.NotFoundError{Resource: "child", Key: uint(9)}).Once()

	err := uc.UpdateRegistration(context.Background(), 9, update)
	assert.True(t, domain.IsNotFound(err))
}
