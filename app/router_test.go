package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/model"
	"okravets/contacts-api/internal/repository"
	"okravets/contacts-api/internal/service"
	"okravets/contacts-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubMailer struct {
	mu   sync.Mutex
	sent []string
}

func (s *stubMailer) SendConfirmation(to, username, baseURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to)
	return nil
}

func (s *stubMailer) sentTo() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func newTestServer(t *testing.T) (*gin.Engine, *internal.Deps, *stubMailer) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}, model.Contact{}))

	tokens := security.NewTokenMaker("test-secret", 15*time.Minute, time.Hour, time.Hour)
	users := repository.NewUserRepo(db, nil)
	argon := security.New()
	mail := &stubMailer{}

	d := &internal.Deps{
		DB:       db,
		Argon:    argon,
		Tokens:   tokens,
		Users:    users,
		Contacts: repository.NewContactRepo(db),
		Auth:     service.NewAuth(users, argon, tokens),
		Mail:     mail,
	}

	return Routes(d, nil), d, mail
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), "body: %s", w.Body.String())
	return m
}

func signupAndConfirm(t *testing.T, router *gin.Engine, d *internal.Deps, email, password string) *service.TokenPair {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    email,
		"password": password,
		"username": "Tester",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	emailToken, err := d.Tokens.CreateEmailToken(email)
	require.NoError(t, err)

	w = doJSON(t, router, http.MethodGet, "/api/auth/confirm_email/"+emailToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var pair service.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	return &pair
}

func TestEndToEndScenario(t *testing.T) {
	router, d, mail := newTestServer(t)

	// Signup leaves the account unverified and kicks off a mail
	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    "a@b.com",
		"password": "password1",
		"username": "A",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Contains(t, body["detail"], "Check your email")
	assert.False(t, body["user"].(map[string]any)["verified"].(bool))

	require.Eventually(t, func() bool {
		return len(mail.sentTo()) == 1
	}, time.Second, 10*time.Millisecond)

	// Login before confirmation fails regardless of the password
	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "a@b.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Email not confirmed", decode(t, w)["error"])

	emailToken, err := d.Tokens.CreateEmailToken("a@b.com")
	require.NoError(t, err)

	w = doJSON(t, router, http.MethodGet, "/api/auth/confirm_email/"+emailToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Email 'a@b.com' confirmed", decode(t, w)["message"])

	// Confirming again reports already-confirmed without erroring
	w = doJSON(t, router, http.MethodGet, "/api/auth/confirm_email/"+emailToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Your email 'a@b.com' is already confirmed", decode(t, w)["message"])

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "a@b.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var pair service.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	assert.Equal(t, "bearer", pair.TokenType)

	// Create and read back a contact
	w = doJSON(t, router, http.MethodPost, "/api/contacts", pair.AccessToken, gin.H{
		"first_name": "X",
		"last_name":  "Y",
		"phone":      "123",
		"birthday":   "1999-12-12T00:00:00Z",
		"inform":     "i",
		"email":      "x@y.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	contactID := int(decode(t, w)["id"].(float64))

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/contacts/%d", contactID), pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "X", decode(t, w)["first_name"])

	// A different user can't see it and learns nothing beyond not-found
	otherPair := signupAndConfirm(t, router, d, "second@b.com", "password2")

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/contacts/%d", contactID), otherPair.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	errMsg := decode(t, w)["error"].(string)
	assert.Contains(t, errMsg, fmt.Sprintf("Contact id = %d", contactID))
	assert.Contains(t, errMsg, "second@b.com")
}

func TestContactEndpointsRequireAuth(t *testing.T) {
	router, _, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/contacts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/contacts", "garbage-token", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnverifiedUserIsRejectedByAuthGate(t *testing.T) {
	router, d, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    "a@b.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// A structurally valid access token still fails while unverified
	access, err := d.Tokens.CreateAccessToken("a@b.com")
	require.NoError(t, err)

	w = doJSON(t, router, http.MethodGet, "/api/contacts", access, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "account_not_verified", decode(t, w)["error"])
}

func TestRefreshTokenSingleValidity(t *testing.T) {
	router, d, _ := newTestServer(t)
	pair := signupAndConfirm(t, router, d, "a@b.com", "password1")

	w := doJSON(t, router, http.MethodGet, "/api/auth/refresh_token", pair.RefreshToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var next service.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &next))
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The pre-rotation token is dead and kills the stored one too
	w = doJSON(t, router, http.MethodGet, "/api/auth/refresh_token", pair.RefreshToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/auth/refresh_token", next.RefreshToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestContactSearchEndpoint(t *testing.T) {
	router, d, _ := newTestServer(t)
	pair := signupAndConfirm(t, router, d, "a@b.com", "password1")

	w := doJSON(t, router, http.MethodPost, "/api/contacts", pair.AccessToken, gin.H{
		"first_name": "Ann",
		"last_name":  "Tester",
		"phone":      "123",
		"birthday":   "1990-05-12T00:00:00Z",
		"inform":     "i",
		"email":      "x@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/contacts/find?field=email&value=x@example.com", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Ann", results[0]["first_name"])

	w = doJSON(t, router, http.MethodGet, "/api/contacts/find?field=bogus_field&value=v", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Empty(t, results)
}

func TestUserMeHidesSecrets(t *testing.T) {
	router, d, _ := newTestServer(t)
	pair := signupAndConfirm(t, router, d, "a@b.com", "password1")

	w := doJSON(t, router, http.MethodGet, "/api/users/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "a@b.com", body["email"])
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), pair.RefreshToken)
}

func TestUserDeleteRemovesContacts(t *testing.T) {
	router, d, _ := newTestServer(t)
	pair := signupAndConfirm(t, router, d, "a@b.com", "password1")

	w := doJSON(t, router, http.MethodPost, "/api/contacts", pair.AccessToken, gin.H{
		"first_name": "Ann",
		"last_name":  "Tester",
		"phone":      "123",
		"birthday":   "1990-05-12T00:00:00Z",
		"inform":     "i",
		"email":      "x@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	me := doJSON(t, router, http.MethodGet, "/api/users/me", pair.AccessToken, nil)
	userID := decode(t, me)["id"].(string)

	w = doJSON(t, router, http.MethodDelete, "/api/users/"+userID, pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, d.DB.Model(model.Contact{}).Count(&count).Error)
	assert.Zero(t, count)
}
