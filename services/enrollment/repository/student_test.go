package repository

import (
	"context"
	"testing"

	"enrollment/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllStudentsEmpty(t *testing.T) {
	db := openTestDB(t)

	students, err := NewStudentRepository(db).GetAllStudents(context.Background(), domain.StudentFilter{})
	require.NoError(t, err)
	require.NotNil(t, students)
	assert.Empty(t, *students)
}

func TestGetAllStudentsOrderAndFilter(t *testing.T) {
	db := openTestDB(t)
	first := createUser(t, db, "first@example.com")
	second := createUser(t, db, "second@example.com")
	ctx := context.Background()
	repo := NewRegistrationRepository(db)

	idA, err := repo.CreateRegistration(ctx, validRequest("first@example.com"))
	require.NoError(t, err)
	reqB := validRequest("second@example.com")
	reqB.ChildInfo.FirstName = "Leo"
	idB, err := repo.CreateRegistration(ctx, reqB)
	require.NoError(t, err)
	idC, err := repo.CreateRegistration(ctx, validRequest("first@example.com"))
	require.NoError(t, err)

	students := NewStudentRepository(db)

	all, err := students.GetAllStudents(ctx, domain.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, *all, 3)
	assert.Equal(t, []uint{idA, idB, idC}, childIDs(*all))

	mine, err := students.GetAllStudents(ctx, domain.StudentFilter{ParentUserID: &first.UserID})
	require.NoError(t, err)
	assert.Equal(t, []uint{idA, idC}, childIDs(*mine))

	theirs, err := students.GetAllStudents(ctx, domain.StudentFilter{ParentUserID: &second.UserID})
	require.NoError(t, err)
	require.Len(t, *theirs, 1)
	assert.Equal(t, "Leo", (*theirs)[0].ChildInfo.FirstName)
}

func TestGetStudentByIDIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	createUser(t, db, "parent@example.com")
	ctx := context.Background()

	childID, err := NewRegistrationRepository(db).CreateRegistration(ctx, validRequest("parent@example.com"))
	require.NoError(t, err)

	students := NewStudentRepository(db)
	a, err := students.GetStudentByID(ctx, childID)
	require.NoError(t, err)
	b, err := students.GetStudentByID(ctx, childID)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGetStudentByIDNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := NewStudentRepository(db).GetStudentByID(context.Background(), 42)
	require.Error(t, err)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "student", nf.Resource)
}

func TestGetStudentByIDWithoutLinkedRows(t *testing.T) {
	db := openTestDB(t)

	dob, err := domain.ParseDate("2022-01-02")
	require.NoError(t, err)
	child := domain.Child{FirstName: "Solo", LastName: "Kid", Gender: domain.GenderOther, DateOfBirth: dob}
	require.NoError(t, db.Create(&child).Error)

	student, err := NewStudentRepository(db).GetStudentByID(context.Background(), child.ID)
	require.NoError(t, err)

	assert.Equal(t, "Solo", student.ChildInfo.FirstName)
	assert.Equal(t, "2022-01-02", student.ChildInfo.DateOfBirth)
	assert.Nil(t, student.ChildInfo.ParentUserID)
	assert.Nil(t, student.ParentGuardianInfo.GuardianID)
	assert.Empty(t, student.MedicalInfo.PhysicianName)
	assert.Nil(t, student.EnrollmentProgramDetails.RegistrationID)
	assert.Empty(t, student.EnrollmentProgramDetails.Status)
}

func childIDs(students []domain.Student) []uint {
	ids := make([]uint, len(students))
	for i, s := range students {
		ids[i] = s.ChildInfo.ChildID
	}
	return ids
}
