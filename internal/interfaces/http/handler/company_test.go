package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appdirectory "github.com/adminhub/backend/internal/application/directory"
	"github.com/adminhub/backend/internal/domain/directory"
	"github.com/adminhub/backend/internal/infrastructure/auth"
	"github.com/adminhub/backend/internal/infrastructure/persistence"
	"github.com/adminhub/backend/internal/interfaces/http/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newCompanyTestServer wires the full stack against an in-memory database
// with a fixed authenticated identity carrying the given capabilities.
func newCompanyTestServer(t *testing.T, tenantID, userID uuid.UUID, capabilities []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&directory.Company{}))

	service := appdirectory.NewCompanyService(persistence.NewGormCompanyRepository(db))

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.JWTClaimsKey, &auth.Claims{
			TenantID:     tenantID.String(),
			UserID:       userID.String(),
			Username:     "tester",
			Capabilities: capabilities,
		})
		c.Next()
	})

	v1 := engine.Group("/api/v1")
	NewCompanyHandler(service).RegisterRoutes(v1)
	return engine
}

func doJSON(engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCompanyHandler_CreateAndGet(t *testing.T) {
	tenantID, userID := uuid.New(), uuid.New()
	engine := newCompanyTestServer(t, tenantID, userID, []string{"company:read", "company:write"})

	w, env := doJSON(engine, http.MethodPost, "/api/v1/companies", gin.H{
		"code": "ACME",
		"name": "Acme Corp",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.Success)

	var created appdirectory.CompanyResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, tenantID, created.TenantID)

	w, env = doJSON(engine, http.MethodGet, "/api/v1/companies/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched appdirectory.CompanyResponse
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "Acme Corp", fetched.Name)

	w, _ = doJSON(engine, http.MethodGet, "/api/v1/companies/code/ACME", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCompanyHandler_DuplicateCodeConflicts(t *testing.T) {
	engine := newCompanyTestServer(t, uuid.New(), uuid.New(), []string{"company:write"})

	w, _ := doJSON(engine, http.MethodPost, "/api/v1/companies", gin.H{"code": "ACME", "name": "First"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(engine, http.MethodPost, "/api/v1/companies", gin.H{"code": "ACME", "name": "Second"})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ALREADY_EXISTS", env.Error.Code)
}

func TestCompanyHandler_StaleUpdateConflicts(t *testing.T) {
	engine := newCompanyTestServer(t, uuid.New(), uuid.New(), []string{"company:write"})

	_, env := doJSON(engine, http.MethodPost, "/api/v1/companies", gin.H{"code": "ACME", "name": "Acme"})
	var created appdirectory.CompanyResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))

	path := "/api/v1/companies/" + created.ID.String()

	w, _ := doJSON(engine, http.MethodPut, path, gin.H{"name": "Renamed", "version": 1})
	require.Equal(t, http.StatusOK, w.Code)

	// Replaying the same version must fail; the first writer already moved it.
	w, env = doJSON(engine, http.MethodPut, path, gin.H{"name": "Stale", "version": 1})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestCompanyHandler_DeleteAndRestore(t *testing.T) {
	engine := newCompanyTestServer(t, uuid.New(), uuid.New(), []string{"company:read", "company:write"})

	_, env := doJSON(engine, http.MethodPost, "/api/v1/companies", gin.H{"code": "ACME", "name": "Acme"})
	var created appdirectory.CompanyResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	path := "/api/v1/companies/" + created.ID.String()

	w, env := doJSON(engine, http.MethodDelete, path+"?version=99", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	w, _ = doJSON(engine, http.MethodDelete, fmt.Sprintf("%s?version=%d", path, created.Version), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w, env = doJSON(engine, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(engine, http.MethodPost, path+"/restore", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(engine, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCompanyHandler_DeleteRequiresVersion(t *testing.T) {
	engine := newCompanyTestServer(t, uuid.New(), uuid.New(), []string{"company:write"})

	_, env := doJSON(engine, http.MethodPost, "/api/v1/companies", gin.H{"code": "ACME", "name": "Acme"})
	var created appdirectory.CompanyResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env := doJSON(engine, http.MethodDelete, "/api/v1/companies/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestCompanyHandler_CapabilityGuards(t *testing.T) {
	engine := newCompanyTestServer(t, uuid.New(), uuid.New(), []string{"company:read"})

	w, env := doJSON(engine, http.MethodPost, "/api/v1/companies", gin.H{"code": "ACME", "name": "Acme"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	w, _ = doJSON(engine, http.MethodGet, "/api/v1/companies", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
