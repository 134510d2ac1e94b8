package delivery

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"enrollment/config"
	"enrollment/domain"
	"enrollment/middleware"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRegistrationUC struct {
	mock.Mock
}

func (m *mockRegistrationUC) CreateRegistration(ctx context.Context, req *domain.RegistrationRequest) (uint, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockRegistrationUC) UpdateRegistration(ctx context.Context, childID uint, req *domain.RegistrationUpdate) error {
	return m.Called(ctx, childID, req).Error(0)
}

func (m *mockRegistrationUC) UpdateEnrollment(ctx context.Context, childID uint, sel *domain.EnrollmentSelection) error {
	return m.Called(ctx, childID, sel).Error(0)
}

func (m *mockRegistrationUC) GetChildOwner(ctx context.Context, childID uint) (*uint, error) {
	args := m.Called(ctx, childID)
	owner, _ := args.Get(0).(*uint)
	return owner, args.Error(1)
}

type mockStudentUC struct {
	mock.Mock
}

func (m *mockStudentUC) GetStudentByID(ctx context.Context, childID uint) (*domain.Student, error) {
	args := m.Called(ctx, childID)
	s, _ := args.Get(0).(*domain.Student)
	return s, args.Error(1)
}

func (m *mockStudentUC) GetAllStudents(ctx context.Context, filter domain.StudentFilter) (*[]domain.Student, error) {
	args := m.Called(ctx, filter)
	s, _ := args.Get(0).(*[]domain.Student)
	return s, args.Error(1)
}

type mockLookupUC struct {
	mock.Mock
}

func (m *mockLookupUC) GetPrograms(ctx context.Context) (*[]domain.Program, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*[]domain.Program)
	return out, args.Error(1)
}

func (m *mockLookupUC) GetRoomTypes(ctx context.Context) (*[]domain.RoomType, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*[]domain.RoomType)
	return out, args.Error(1)
}

func (m *mockLookupUC) GetPaymentPlans(ctx context.Context) (*[]domain.PaymentPlan, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*[]domain.PaymentPlan)
	return out, args.Error(1)
}

func (m *mockLookupUC) GetEnrollmentPlans(ctx context.Context) (*[]domain.EnrollmentPlanView, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*[]domain.EnrollmentPlanView)
	return out, args.Error(1)
}

type mockAuthUC struct {
	mock.Mock
}

func (m *mockAuthUC) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	args := m.Called(ctx, req)
	out, _ := args.Get(0).(*domain.LoginResponse)
	return out, args.Error(1)
}

func (m *mockAuthUC) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.SafeUser, error) {
	args := m.Called(ctx, req)
	out, _ := args.Get(0).(*domain.SafeUser)
	return out, args.Error(1)
}

func newTestApp() *fiber.App {
	return fiber.New(config.GetFiberConfig())
}

func tokenFor(t *testing.T, userID uint, email string, roleID int) string {
	t.Helper()
	token, err := middleware.GenerateJWT(&domain.User{UserID: userID, Email: email, RoleID: roleID})
	require.NoError(t, err)
	return "Bearer " + token
}

// do sends a JSON request and decodes the JSON response body into a map.
func do(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, sonic.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}
