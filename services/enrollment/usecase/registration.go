package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"enrollment/domain"
	"enrollment/metrics"

	"github.com/asaskevich/govalidator"
)

var (
	genders       = []string{domain.GenderMale, domain.GenderFemale, domain.GenderOther}
	relationships = []string{domain.RelationFather, domain.RelationMother, domain.RelationGuardian}
)

type registrationUseCase struct {
	repo    domain.RegistrationRepo
	metrics *metrics.Metrics
	TimeOut time.Duration
}

func NewRegistrationUseCase(repo domain.RegistrationRepo, m *metrics.Metrics, to time.Duration) domain.RegistrationUseCase {
	return &registrationUseCase{
		repo:    repo,
		metrics: m,
		TimeOut: to,
	}
}

func (ru *registrationUseCase) CreateRegistration(ctx context.Context, req *domain.RegistrationRequest) (uint, error) {
	if err := validateRegistration(req); err != nil {
		ru.metrics.IncrementFailure("create", domain.ErrorKind(err))
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	childID, err := ru.repo.CreateRegistration(ctx, req)
	if err != nil {
		ru.metrics.IncrementFailure("create", domain.ErrorKind(err))
		return 0, err
	}
	ru.metrics.IncrementCreated()
	return childID, nil
}

func (ru *registrationUseCase) UpdateRegistration(ctx context.Context, childID uint, req *domain.RegistrationUpdate) error {
	if req.IsEmpty() {
		err := domain.NewValidationError("Nothing to update")
		ru.metrics.IncrementFailure("update", domain.ErrorKind(err))
		return err
	}
	if err := validateUpdate(req); err != nil {
		ru.metrics.IncrementFailure("update", domain.ErrorKind(err))
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	if err := ru.repo.UpdateRegistration(ctx, childID, req); err != nil {
		ru.metrics.IncrementFailure("update", domain.ErrorKind(err))
		return err
	}
	ru.metrics.IncrementUpdated()
	return nil
}

// UpdateEnrollment changes only the program, room type and payment plan of a child.
func (ru *registrationUseCase) UpdateEnrollment(ctx context.Context, childID uint, sel *domain.EnrollmentSelection) error {
	if sel == nil {
		return ru.UpdateRegistration(ctx, childID, nil)
	}
	return ru.UpdateRegistration(ctx, childID, &domain.RegistrationUpdate{EnrollmentProgramDetails: sel})
}

func (ru *registrationUseCase) GetChildOwner(ctx context.Context, childID uint) (*uint, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	return ru.repo.GetChildOwner(ctx, childID)
}

func validateRegistration(req *domain.RegistrationRequest) error {
	if req == nil {
		return domain.NewValidationError("Invalid request body")
	}
	req.Email = domain.NormalizeEmail(req.Email)

	var v fieldCheck
	v.structure("", req)
	v.structure("childInfo", &req.ChildInfo)
	v.structure("parentGuardianInfo", &req.ParentGuardianInfo)
	v.structure("medicalInfo", &req.MedicalInfo)
	v.structure("careFacilityInfo", &req.CareFacilityInfo)
	v.date("childInfo.dateOfBirth", req.ChildInfo.DateOfBirth, "Invalid child date of birth")
	v.date("enrollmentProgramDetails.enrollmentDate", req.EnrollmentProgramDetails.EnrollmentDate, "Invalid enrollment date")
	return v.err()
}

// validateUpdate checks only the values that are present; blanks keep the
// stored value.
func validateUpdate(req *domain.RegistrationUpdate) error {
	var v fieldCheck
	if c := req.ChildInfo; c != nil {
		v.oneOf("childInfo.gender", c.Gender, genders, "Invalid child gender")
		v.date("childInfo.dateOfBirth", c.DateOfBirth, "Invalid child date of birth")
	}
	if g := req.ParentGuardianInfo; g != nil {
		v.oneOf("parentGuardianInfo.relationship", g.Relationship, relationships, "Invalid relationship")
		v.email("parentGuardianInfo.email", g.Email, "Invalid guardian email format")
	}
	if e := req.EnrollmentProgramDetails; e != nil {
		v.date("enrollmentProgramDetails.enrollmentDate", e.EnrollmentDate, "Invalid enrollment date")
	}
	return v.err()
}

// fieldCheck collects failures as "section.field" keys with their messages.
type fieldCheck struct {
	messages []string
	fields   []string
}

func (v *fieldCheck) fail(field, msg string) {
	v.fields = append(v.fields, field)
	v.messages = append(v.messages, msg)
}

// structure runs the valid: tags of value and records each failing field
// under section, in a stable order.
func (v *fieldCheck) structure(section string, value interface{}) {
	_, err := govalidator.ValidateStruct(value)
	if err == nil {
		return
	}

	byField := govalidator.ErrorsByField(err)
	fields := make([]string, 0, len(byField))
	for f := range byField {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		name := f
		if section != "" {
			name = section + "." + f
		}
		v.fail(name, byField[f])
	}
}

func (v *fieldCheck) date(field, value, msg string) {
	if value = strings.TrimSpace(value); value != "" && !govalidator.IsTime(value, domain.DateLayout) {
		v.fail(field, msg)
	}
}

func (v *fieldCheck) oneOf(field, value string, allowed []string, msg string) {
	if value = strings.TrimSpace(value); value != "" && !govalidator.IsIn(value, allowed...) {
		v.fail(field, msg)
	}
}

func (v *fieldCheck) email(field, value, msg string) {
	if value = strings.TrimSpace(value); value != "" && !govalidator.IsEmail(value) {
		v.fail(field, msg)
	}
}

func (v *fieldCheck) err() error {
	if len(v.messages) == 0 {
		return nil
	}
	return domain.NewValidationError(strings.Join(v.messages, "; "), v.fields...)
}

// validatePayload checks a flat request struct such as a login form.
func validatePayload(value interface{}) error {
	var v fieldCheck
	v.structure("", value)
	return v.err()
}
