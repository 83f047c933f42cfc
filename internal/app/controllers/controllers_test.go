package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/futureintern/platform/internal/app/auth"
	"github.com/futureintern/platform/internal/app/models"
	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/app/services"
	"github.com/futureintern/platform/internal/middleware"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.Register(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// MockAuthService is a mock implementation of services.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.RegisterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RegisterResponse), args.Error(1)
}

func (m *MockAuthService) RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*dto.RegisterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RegisterResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

// MockInternshipService is a mock implementation of services.InternshipService.
type MockInternshipService struct {
	mock.Mock
}

func (m *MockInternshipService) List(ctx context.Context, filter models.InternshipFilter, page, perPage int) (*services.InternshipPage, error) {
	args := m.Called(ctx, filter, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.InternshipPage), args.Error(1)
}

func (m *MockInternshipService) ListAll(ctx context.Context) ([]*models.Internship, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Internship), args.Error(1)
}

func (m *MockInternshipService) GetByID(ctx context.Context, id int64) (*models.Internship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Internship), args.Error(1)
}

func (m *MockInternshipService) Create(ctx context.Context, companyID int64, req *dto.InternshipRequest) (*models.Internship, error) {
	args := m.Called(ctx, companyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Internship), args.Error(1)
}

func (m *MockInternshipService) Update(ctx context.Context, actor auth.Actor, id int64, req *dto.UpdateInternshipRequest) (*models.Internship, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Internship), args.Error(1)
}

func (m *MockInternshipService) Delete(ctx context.Context, actor auth.Actor, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockInternshipService) ListByCompany(ctx context.Context, companyID int64) ([]*models.Internship, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]*models.Internship), args.Error(1)
}

// MockApplicationService is a mock implementation of services.ApplicationService.
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Apply(ctx context.Context, studentID int64, req *dto.ApplyRequest) (*models.Application, error) {
	args := m.Called(ctx, studentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) ListMine(ctx context.Context, studentID int64) ([]*models.Application, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *MockApplicationService) ListForInternship(ctx context.Context, actor auth.Actor, internshipID int64) ([]*models.Application, error) {
	args := m.Called(ctx, actor, internshipID)
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *MockApplicationService) ListAll(ctx context.Context) ([]*models.Application, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *MockApplicationService) GetByID(ctx context.Context, actor auth.Actor, id int64) (*models.Application, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, actor auth.Actor, id int64, status string) (*models.Application, error) {
	args := m.Called(ctx, actor, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) Withdraw(ctx context.Context, actor auth.Actor, id int64) (*models.Application, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) Delete(ctx context.Context, actor auth.Actor, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// as injects the identity JWTAuth would have set
func as(id int64, role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextRole, role)
		c.Next()
	}
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthController_RegisterStudent(t *testing.T) {
	svc := new(MockAuthService)
	ctrl := NewAuthController(svc, zerolog.Nop())
	router := gin.New()
	router.POST("/auth/register/student", ctrl.RegisterStudent)

	svc.On("RegisterStudent", mock.Anything, mock.MatchedBy(func(r *dto.RegisterStudentRequest) bool {
		return r.Email == "sara@example.com" && len(r.Skills) == 2
	})).Return(&dto.RegisterResponse{
		Message: "Registration successful",
		User:    &dto.UserResponse{ID: 3, Name: "Sara", Email: "sara@example.com", Role: "student"},
	}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/auth/register/student", map[string]interface{}{
		"name":     "Sara",
		"email":    "sara@example.com",
		"password": "secret123",
		"skills":   []string{"Go", "SQL"},
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	var data dto.RegisterResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(3), data.User.ID)
	svc.AssertExpectations(t)
}

func TestAuthController_RegisterStudent_WeakPassword(t *testing.T) {
	svc := new(MockAuthService)
	router := gin.New()
	router.POST("/auth/register/student", NewAuthController(svc, zerolog.Nop()).RegisterStudent)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/auth/register/student", map[string]string{
		"name":     "Sara",
		"email":    "sara@example.com",
		"password": "password",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "VAL_001", env.Error.Code)
	svc.AssertNotCalled(t, "RegisterStudent", mock.Anything, mock.Anything)
}

func TestAuthController_Login(t *testing.T) {
	svc := new(MockAuthService)
	router := gin.New()
	router.POST("/auth/login", NewAuthController(svc, zerolog.Nop()).Login)

	svc.On("Login", mock.Anything, &dto.LoginRequest{Email: "sara@example.com", Password: "secret123"}).
		Return(&dto.TokenResponse{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900}, nil)
	svc.On("Login", mock.Anything, &dto.LoginRequest{Email: "sara@example.com", Password: "wrong1234"}).
		Return(nil, apperrors.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/auth/login", map[string]string{"email": "sara@example.com", "password": "secret123"}))
	require.Equal(t, http.StatusOK, w.Code)
	var tokens dto.TokenResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &tokens))
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, int64(900), tokens.ExpiresIn)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/auth/login", map[string]string{"email": "sara@example.com", "password": "wrong1234"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_001", decode(t, w).Error.Code)
}

func TestAuthController_ForgotPasswordAlwaysOK(t *testing.T) {
	svc := new(MockAuthService)
	router := gin.New()
	router.POST("/auth/forgot-password", NewAuthController(svc, zerolog.Nop()).ForgotPassword)

	svc.On("ForgotPassword", mock.Anything, "ghost@example.com").Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/auth/forgot-password", map[string]string{"email": "ghost@example.com"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), "reset link")
}

func TestAuthController_MeWithoutIdentity(t *testing.T) {
	router := gin.New()
	router.GET("/auth/me", NewAuthController(new(MockAuthService), zerolog.Nop()).Me)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_007", decode(t, w).Error.Code)
}

func TestInternshipController_List(t *testing.T) {
	svc := new(MockInternshipService)
	router := gin.New()
	router.GET("/internships", NewInternshipController(svc, zerolog.Nop()).List)

	location := "Remote"
	svc.On("List", mock.Anything, models.InternshipFilter{Search: "go", Location: "Remote"}, 2, 100).
		Return(&services.InternshipPage{
			Internships: []*models.Internship{{ID: 7, Title: "Go Intern", Location: &location, IsActive: true}},
			Total:       101,
			Page:        2,
			PerPage:     100,
			Pages:       2,
		}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/internships?page=2&per_page=500&search=+go+&location=Remote", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var page dto.InternshipPageResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	assert.Equal(t, int64(101), page.Total)
	assert.Equal(t, 2, page.Pages)
	require.Len(t, page.Internships, 1)
	assert.Equal(t, "Go Intern", page.Internships[0].Title)
	assert.Equal(t, []string{}, page.Internships[0].RequiredSkills)
	svc.AssertExpectations(t)
}

func TestInternshipController_GetBadID(t *testing.T) {
	router := gin.New()
	router.GET("/internships/:id", NewInternshipController(new(MockInternshipService), zerolog.Nop()).Get)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/internships/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "VAL_001", env.Error.Code)
	assert.Equal(t, "id", env.Error.Field)
}

func TestInternshipController_UpdateForbidden(t *testing.T) {
	svc := new(MockInternshipService)
	router := gin.New()
	router.PUT("/internships/:id", as(21, models.RoleCompany), NewInternshipController(svc, zerolog.Nop()).Update)

	title := "Renamed"
	svc.On("Update", mock.Anything, auth.Actor{UserID: 21, Role: models.RoleCompany}, int64(5), &dto.UpdateInternshipRequest{Title: &title}).
		Return(nil, apperrors.NewForbiddenError("you can only manage your own internships"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPut, "/internships/5", map[string]string{"title": "Renamed"}))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "you can only manage your own internships", decode(t, w).Error.Message)
}

func TestApplicationController_Apply(t *testing.T) {
	svc := new(MockApplicationService)
	router := gin.New()
	router.POST("/applications/apply", as(3, models.RoleStudent), NewApplicationController(svc, zerolog.Nop()).Apply)

	score := 0.65
	svc.On("Apply", mock.Anything, int64(3), &dto.ApplyRequest{InternshipID: 7, CoverLetter: "Hi"}).
		Return(&models.Application{ID: 11, StudentID: 3, InternshipID: 7, Status: models.StatusPending, MatchScore: &score}, nil).Once()
	svc.On("Apply", mock.Anything, int64(3), &dto.ApplyRequest{InternshipID: 8}).
		Return(nil, apperrors.ErrAlreadyApplied).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/applications/apply", map[string]interface{}{"internship_id": 7, "cover_letter": "Hi"}))
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.ApplicationEnvelope
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	require.NotNil(t, created.Application)
	assert.Equal(t, int64(11), created.Application.ID)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/applications/apply", map[string]interface{}{"internship_id": 8}))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "RES_002", decode(t, w).Error.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/applications/apply", map[string]interface{}{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestApplicationController_WithdrawTooLate(t *testing.T) {
	svc := new(MockApplicationService)
	router := gin.New()
	router.PUT("/applications/:id/withdraw", as(3, models.RoleStudent), NewApplicationController(svc, zerolog.Nop()).Withdraw)

	svc.On("Withdraw", mock.Anything, auth.Actor{UserID: 3, Role: models.RoleStudent}, int64(11)).
		Return(nil, apperrors.ErrCannotWithdraw)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/applications/11/withdraw", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Application can no longer be withdrawn", decode(t, w).Error.Message)
}

func TestApplicationController_ListMine(t *testing.T) {
	svc := new(MockApplicationService)
	router := gin.New()
	router.GET("/applications/my", as(3, models.RoleStudent), NewApplicationController(svc, zerolog.Nop()).ListMine)

	svc.On("ListMine", mock.Anything, int64(3)).Return([]*models.Application{
		{ID: 1, Status: models.StatusPending},
		{ID: 2, Status: models.StatusAccepted},
	}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/applications/my", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var list dto.ApplicationListResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	assert.Equal(t, 2, list.Total)
}

func TestAdminController_ImportRejectsNonWorkbook(t *testing.T) {
	router := gin.New()
	router.POST("/admin/internships/import", NewAdminController(nil, zerolog.Nop()).ImportInternships)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "internships.csv")
	require.NoError(t, err)
	_, _ = part.Write([]byte("Title,Company Name\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/internships/import", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_002", decode(t, w).Error.Code)
}

func TestAdminController_ImportMissingFile(t *testing.T) {
	router := gin.New()
	router.POST("/admin/internships/import", NewAdminController(nil, zerolog.Nop()).ImportInternships)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/internships/import", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file selected", decode(t, w).Error.Message)
}
