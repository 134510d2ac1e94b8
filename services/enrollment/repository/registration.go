package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"enrollment/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(database *gorm.DB) domain.RegistrationRepo {
	return &registrationRepository{
		db: database,
	}
}

func (rr *registrationRepository) CreateRegistration(ctx context.Context, req *domain.RegistrationRequest) (uint, error) {
	tx := rr.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, &domain.ConnectionError{Err: tx.Error}
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	fail := func(err error) (uint, error) {
		tx.Rollback()
		return 0, err
	}

	// Owning user
	var owner domain.User
	err := tx.Where("LOWER(email) = ?", domain.NormalizeEmail(req.Email)).First(&owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(&domain.NotFoundError{Resource: "user", Key: req.Email})
		}
		return fail(txError("find owning user", err))
	}

	// Child
	dob, err := domain.ParseDate(req.ChildInfo.DateOfBirth)
	if err != nil {
		return fail(domain.NewValidationError("Invalid child date of birth", "childInfo.dateOfBirth"))
	}
	child := domain.Child{
		FirstName:    strings.TrimSpace(req.ChildInfo.FirstName),
		MiddleName:   optional(req.ChildInfo.MiddleName),
		LastName:     strings.TrimSpace(req.ChildInfo.LastName),
		Gender:       strings.TrimSpace(req.ChildInfo.Gender),
		DateOfBirth:  dob,
		PlaceOfBirth: optional(req.ChildInfo.PlaceOfBirth),
		ParentUserID: &owner.UserID,
	}
	if err := tx.Omit(clause.Associations).Create(&child).Error; err != nil {
		return fail(txError("insert child", err))
	}

	// Guardian and primary link
	guardian := newGuardian(&req.ParentGuardianInfo)
	if err := tx.Omit(clause.Associations).Create(&guardian).Error; err != nil {
		return fail(txError("insert guardian", err))
	}
	link := domain.ChildGuardian{
		ChildID:      child.ID,
		GuardianID:   guardian.ID,
		Relationship: strings.TrimSpace(req.ParentGuardianInfo.Relationship),
		IsPrimary:    true,
	}
	if err := tx.Omit(clause.Associations).Create(&link).Error; err != nil {
		return fail(txError("link guardian", err))
	}

	medical := newMedicalContact(child.ID, &req.MedicalInfo)
	if err := tx.Omit(clause.Associations).Create(&medical).Error; err != nil {
		return fail(txError("insert medical contact", err))
	}

	care := newCareFacility(child.ID, &req.CareFacilityInfo)
	if err := tx.Omit(clause.Associations).Create(&care).Error; err != nil {
		return fail(txError("insert care facility", err))
	}

	// Enrollment selection
	planID, paymentPlanID, err := resolveEnrollment(tx, &req.EnrollmentProgramDetails)
	if err != nil {
		return fail(err)
	}
	enrollmentDate, err := optionalDate(req.EnrollmentProgramDetails.EnrollmentDate)
	if err != nil {
		return fail(err)
	}

	registration := domain.Registration{
		ChildID:          child.ID,
		EnrollmentPlanID: planID,
		PaymentPlanID:    paymentPlanID,
		Status:           domain.StatusPendingApproval,
		Amount:           0,
		EnrollmentDate:   enrollmentDate,
	}
	if err := tx.Omit(clause.Associations).Create(&registration).Error; err != nil {
		return fail(txError("insert registration", err))
	}

	if err := tx.Commit().Error; err != nil {
		return 0, txError("commit registration", err)
	}

	return child.ID, nil
}

func (rr *registrationRepository) UpdateRegistration(ctx context.Context, childID uint, req *domain.RegistrationUpdate) error {
	tx := rr.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return &domain.ConnectionError{Err: tx.Error}
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	fail := func(err error) error {
		tx.Rollback()
		return err
	}

	var child domain.Child
	err := tx.Select("id").Where("id = ?", childID).First(&child).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(&domain.NotFoundError{Resource: "child", Key: childID})
		}
		return fail(txError("find child", err))
	}

	if req.ChildInfo != nil {
		fields, err := childFields(req.ChildInfo)
		if err != nil {
			return fail(err)
		}
		if len(fields) > 0 {
			if err := tx.Model(&domain.Child{}).Where("id = ?", childID).Updates(fields).Error; err != nil {
				return fail(txError("update child", err))
			}
		}
	}

	if req.ParentGuardianInfo != nil {
		if err := updatePrimaryGuardian(tx, childID, req.ParentGuardianInfo); err != nil {
			return fail(err)
		}
	}

	if req.MedicalInfo != nil {
		if err := upsertMedicalContact(tx, childID, req.MedicalInfo); err != nil {
			return fail(err)
		}
	}

	if req.CareFacilityInfo != nil {
		if err := upsertCareFacility(tx, childID, req.CareFacilityInfo); err != nil {
			return fail(err)
		}
	}

	if req.EnrollmentProgramDetails != nil {
		if err := upsertRegistration(tx, childID, req.EnrollmentProgramDetails); err != nil {
			return fail(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return txError("commit update", err)
	}
	return nil
}

func (rr *registrationRepository) GetChildOwner(ctx context.Context, childID uint) (*uint, error) {
	var child domain.Child
	err := rr.db.WithContext(ctx).Select("id", "parent_user_id").Where("id = ?", childID).First(&child).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Resource: "child", Key: childID}
		}
		return nil, fmt.Errorf("could not get child owner: %w", err)
	}
	return child.ParentUserID, nil
}

// resolveEnrollment maps the form selection to an enrollment plan id and a
// payment plan id, rejecting combinations that are not curated.
func resolveEnrollment(tx *gorm.DB, sel *domain.EnrollmentSelection) (uint, uint, error) {
	programID, err := resolveLookupID(tx, &domain.Program{}, "name", sel.Program())
	if err != nil {
		return 0, 0, txError("resolve program", err)
	}
	roomTypeID, err := resolveLookupID(tx, &domain.RoomType{}, "type", sel.Room())
	if err != nil {
		return 0, 0, txError("resolve room type", err)
	}
	if programID == 0 || roomTypeID == 0 {
		return 0, 0, domain.NewValidationError(domain.MsgInvalidProgramOrRoom, "enrollmentProgramDetails.programType", "enrollmentProgramDetails.roomType")
	}

	planID, err := resolveEnrollmentPlanID(tx, programID, roomTypeID)
	if err != nil {
		return 0, 0, txError("resolve enrollment plan", err)
	}
	if planID == 0 {
		return 0, 0, domain.NewValidationError(domain.MsgNoEnrollmentPlan, "enrollmentProgramDetails.programType", "enrollmentProgramDetails.roomType")
	}

	paymentPlanID, err := resolveLookupID(tx, &domain.PaymentPlan{}, "type", sel.Plan())
	if err != nil {
		return 0, 0, txError("resolve payment plan", err)
	}
	if paymentPlanID == 0 {
		return 0, 0, domain.NewValidationError(domain.MsgInvalidPaymentPlan, "enrollmentProgramDetails.planType")
	}

	return planID, paymentPlanID, nil
}

func updatePrimaryGuardian(tx *gorm.DB, childID uint, info *domain.ParentGuardianInfo) error {
	var link domain.ChildGuardian
	err := tx.Where("child_id = ? AND is_primary = ?", childID, true).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotFoundError{Resource: "primary guardian of child", Key: childID}
		}
		return txError("find guardian link", err)
	}

	fields := guardianFields(info)
	if len(fields) > 0 {
		if err := tx.Model(&domain.Guardian{}).Where("id = ?", link.GuardianID).Updates(fields).Error; err != nil {
			return txError("update guardian", err)
		}
	}

	if rel := strings.TrimSpace(info.Relationship); rel != "" && rel != link.Relationship {
		if err := tx.Model(&domain.ChildGuardian{}).Where("id = ?", link.ID).Update("relationship", rel).Error; err != nil {
			return txError("update guardian relationship", err)
		}
	}
	return nil
}

func upsertMedicalContact(tx *gorm.DB, childID uint, info *domain.MedicalInfo) error {
	var existing domain.MedicalContact
	err := tx.Where("child_id = ?", childID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row := newMedicalContact(childID, info)
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return txError("insert medical contact", err)
		}
		return nil
	}
	if err != nil {
		return txError("find medical contact", err)
	}

	fields := nonEmpty(map[string]string{
		"physician_first_name":  info.PhysicianFirstName,
		"physician_last_name":   info.PhysicianLastName,
		"address":               info.Address,
		"city":                  info.City,
		"state":                 info.State,
		"zip_code":              info.ZipCode,
		"phone_number":          domain.NormalizePhone(info.PhoneNumber),
	})
	setOptional(fields, "physician_middle_name", info.PhysicianMiddleName)
	if len(fields) == 0 {
		return nil
	}
	if err := tx.Model(&domain.MedicalContact{}).Where("id = ?", existing.ID).Updates(fields).Error; err != nil {
		return txError("update medical contact", err)
	}
	return nil
}

func upsertCareFacility(tx *gorm.DB, childID uint, info *domain.CareFacilityInfo) error {
	var existing domain.CareFacility
	err := tx.Where("child_id = ?", childID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row := newCareFacility(childID, info)
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return txError("insert care facility", err)
		}
		return nil
	}
	if err != nil {
		return txError("find care facility", err)
	}

	fields := nonEmpty(map[string]string{
		"emergency_contact_name":  info.EmergencyContactName,
		"emergency_contact_phone": domain.NormalizePhone(info.EmergencyContactPhone),
		"address":                 info.Address,
		"city":                    info.City,
		"state":                   info.State,
		"zip_code":                info.ZipCode,
		"phone_type":              info.PhoneType,
	})
	if len(fields) == 0 {
		return nil
	}
	if err := tx.Model(&domain.CareFacility{}).Where("id = ?", existing.ID).Updates(fields).Error; err != nil {
		return txError("update care facility", err)
	}
	return nil
}

func upsertRegistration(tx *gorm.DB, childID uint, sel *domain.EnrollmentSelection) error {
	planID, paymentPlanID, err := resolveEnrollment(tx, sel)
	if err != nil {
		return err
	}
	enrollmentDate, err := optionalDate(sel.EnrollmentDate)
	if err != nil {
		return err
	}

	var existing domain.Registration
	err = tx.Where("child_id = ?", childID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row := domain.Registration{
			ChildID:          childID,
			EnrollmentPlanID: planID,
			PaymentPlanID:    paymentPlanID,
			Status:           domain.StatusPendingApproval,
			EnrollmentDate:   enrollmentDate,
		}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return txError("insert registration", err)
		}
		return nil
	}
	if err != nil {
		return txError("find registration", err)
	}

	fields := map[string]interface{}{
		"enrollment_plan_id": planID,
		"payment_plan_id":    paymentPlanID,
	}
	if enrollmentDate != nil {
		fields["enrollment_date"] = *enrollmentDate
	}
	if err := tx.Model(&domain.Registration{}).Where("id = ?", existing.ID).Updates(fields).Error; err != nil {
		return txError("update registration", err)
	}
	return nil
}

func newGuardian(info *domain.ParentGuardianInfo) domain.Guardian {
	g := domain.Guardian{
		FirstName:          strings.TrimSpace(info.FirstName),
		MiddleName:         optional(info.MiddleName),
		LastName:           strings.TrimSpace(info.LastName),
		Email:              domain.NormalizeEmail(info.Email),
		Address:            strings.TrimSpace(info.Address),
		City:               strings.TrimSpace(info.City),
		State:              strings.TrimSpace(info.State),
		ZipCode:            strings.TrimSpace(info.ZipCode),
		Country:            strings.TrimSpace(info.Country),
		PrimaryPhoneType:   strings.TrimSpace(info.PrimaryPhoneType),
		PrimaryPhoneNumber: domain.NormalizePhone(info.PrimaryPhoneNumber),
	}
	if info.AltPhoneType != nil && strings.TrimSpace(*info.AltPhoneType) != "" {
		v := strings.TrimSpace(*info.AltPhoneType)
		g.AltPhoneType = &v
	}
	if info.AltPhoneNumber != nil && strings.TrimSpace(*info.AltPhoneNumber) != "" {
		v := domain.NormalizePhone(*info.AltPhoneNumber)
		g.AltPhoneNumber = &v
	}
	return g
}

func newMedicalContact(childID uint, info *domain.MedicalInfo) domain.MedicalContact {
	return domain.MedicalContact{
		ChildID:             childID,
		PhysicianFirstName:  strings.TrimSpace(info.PhysicianFirstName),
		PhysicianMiddleName: optional(info.PhysicianMiddleName),
		PhysicianLastName:   strings.TrimSpace(info.PhysicianLastName),
		Address:             strings.TrimSpace(info.Address),
		City:                strings.TrimSpace(info.City),
		State:               strings.TrimSpace(info.State),
		ZipCode:             strings.TrimSpace(info.ZipCode),
		PhoneNumber:         domain.NormalizePhone(info.PhoneNumber),
	}
}

func newCareFacility(childID uint, info *domain.CareFacilityInfo) domain.CareFacility {
	return domain.CareFacility{
		ChildID:               childID,
		EmergencyContactName:  strings.TrimSpace(info.EmergencyContactName),
		EmergencyContactPhone: domain.NormalizePhone(info.EmergencyContactPhone),
		Address:               strings.TrimSpace(info.Address),
		City:                  strings.TrimSpace(info.City),
		State:                 strings.TrimSpace(info.State),
		ZipCode:               strings.TrimSpace(info.ZipCode),
		PhoneType:             strings.TrimSpace(info.PhoneType),
	}
}

func childFields(info *domain.ChildInfo) (map[string]interface{}, error) {
	fields := nonEmpty(map[string]string{
		"first_name": info.FirstName,
		"last_name":  info.LastName,
		"gender":     info.Gender,
	})
	setOptional(fields, "middle_name", info.MiddleName)
	setOptional(fields, "place_of_birth", info.PlaceOfBirth)
	if strings.TrimSpace(info.DateOfBirth) != "" {
		dob, err := domain.ParseDate(info.DateOfBirth)
		if err != nil {
			return nil, domain.NewValidationError("Invalid child date of birth", "childInfo.dateOfBirth")
		}
		fields["date_of_birth"] = dob
	}
	return fields, nil
}

func guardianFields(info *domain.ParentGuardianInfo) map[string]interface{} {
	fields := nonEmpty(map[string]string{
		"first_name":           info.FirstName,
		"last_name":            info.LastName,
		"email":                domain.NormalizeEmail(info.Email),
		"address":              info.Address,
		"city":                 info.City,
		"state":                info.State,
		"zip_code":             info.ZipCode,
		"country":              info.Country,
		"primary_phone_type":   info.PrimaryPhoneType,
		"primary_phone_number": domain.NormalizePhone(info.PrimaryPhoneNumber),
	})
	setOptional(fields, "middle_name", info.MiddleName)
	// An explicit empty alternate phone clears it.
	if info.AltPhoneType != nil {
		fields["alt_phone_type"] = nullable(*info.AltPhoneType)
	}
	if info.AltPhoneNumber != nil {
		fields["alt_phone_number"] = nullable(domain.NormalizePhone(*info.AltPhoneNumber))
	}
	return fields
}

func nonEmpty(values map[string]string) map[string]interface{} {
	fields := make(map[string]interface{}, len(values))
	for column, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			fields[column] = v
		}
	}
	return fields
}

// optional reads an optional text field for an insert.
func optional(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// setOptional writes column when the field was sent; an empty value clears it.
func setOptional(fields map[string]interface{}, column string, p *string) {
	if p != nil {
		fields[column] = strings.TrimSpace(*p)
	}
}

func nullable(s string) interface{} {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return s
}

func optionalDate(s string) (*datatypes.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, domain.NewValidationError("Invalid enrollment date", "enrollmentProgramDetails.enrollmentDate")
	}
	return &d, nil
}
