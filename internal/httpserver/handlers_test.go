package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/smart_shopper/internal/catalog"
	"github.com/Skotchmaster/smart_shopper/internal/models"
	"github.com/Skotchmaster/smart_shopper/internal/mykafka"
	"github.com/Skotchmaster/smart_shopper/internal/repo"
	"github.com/Skotchmaster/smart_shopper/internal/service"
)

type testEnv struct {
	E  *echo.Echo
	DB *gorm.DB
}

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.List{},
		&models.Store{},
		&models.Product{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := InitTestDB(t)
	r := &repo.GormRepo{DB: db}
	producer := &mykafka.Producer{}

	cat, err := catalog.Load()
	require.NoError(t, err)

	listSvc := &service.ListService{Repo: r, Producer: producer}
	accountSvc := &service.AccountService{
		Repo:          r,
		Producer:      producer,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	e := echo.New()
	Register(e, &Deps{
		ListHandler:    &ListHTTP{Svc: listSvc},
		AccountHandler: &AccountHTTP{Svc: accountSvc},
		CatalogHandler: &CatalogHTTP{Catalog: cat, Index: "catalog_products"},
	})

	return &testEnv{E: e, DB: db}
}

func (env *testEnv) do(t *testing.T, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (env *testEnv) registerUser(t *testing.T, email, password string) models.User {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/users", map[string]string{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[models.User](t, rec)
}
