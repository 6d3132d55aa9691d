package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"slayervault/pkg/utils"
)

func testTokens() TokenService {
	return TokenService{Secret: []byte("test-secret"), Issuer: "slayervault", Duration: time.Hour}
}

func TestSecretCheckerPlain(t *testing.T) {
	s := SecretChecker{Password: "hunter2"}
	assert.True(t, s.Configured())
	assert.NoError(t, s.Check("hunter2"))
	assert.ErrorIs(t, s.Check("hunter3"), ErrUnauthorized)
	assert.ErrorIs(t, s.Check(""), ErrUnauthorized)
}

func TestSecretCheckerUnconfigured(t *testing.T) {
	var s SecretChecker
	assert.False(t, s.Configured())
	assert.ErrorIs(t, s.Check(""), ErrUnauthorized)
	assert.ErrorIs(t, s.Check("anything"), ErrUnauthorized)
}

func TestSecretCheckerHashWins(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("from-hash"), bcrypt.MinCost)
	require.NoError(t, err)

	s := SecretChecker{Password: "plain", Hash: string(hash)}
	assert.NoError(t, s.Check("from-hash"))
	assert.ErrorIs(t, s.Check("plain"), ErrUnauthorized)
}

func TestTokenRoundTrip(t *testing.T) {
	ts := testTokens()
	raw, exp, err := ts.Sign()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := ts.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenRejects(t *testing.T) {
	ts := testTokens()
	raw, _, err := ts.Sign()
	require.NoError(t, err)

	other := ts
	other.Secret = []byte("other")
	_, err = other.Parse(raw)
	assert.Error(t, err, "wrong secret")

	wrongIss := ts
	wrongIss.Issuer = "elsewhere"
	_, err = wrongIss.Parse(raw)
	assert.Error(t, err, "wrong issuer")

	expired := ts
	expired.Duration = -time.Minute
	old, _, err := expired.Sign()
	require.NoError(t, err)
	_, err = ts.Parse(old)
	assert.Error(t, err, "expired")

	// a valid signature without the admin role is still rejected
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             "viewer",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: ts.Issuer},
	})
	viewer, err := tok.SignedString(ts.Secret)
	require.NoError(t, err)
	_, err = ts.Parse(viewer)
	assert.Error(t, err, "role")
}

func newAdminRouter(auth Authorizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(auth, nil).RegisterRoutes(r.Group("/admin"))
	return r
}

func TestLoginAndSession(t *testing.T) {
	auth := Authorizer{Secrets: SecretChecker{Password: "hunter2"}, Tokens: testTokens()}
	r := newAdminRouter(auth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(`{"password":"hunter2"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	_, err := time.Parse(time.RFC3339, login.ExpiresAt)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/session", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestLoginRejected(t *testing.T) {
	r := newAdminRouter(Authorizer{Secrets: SecretChecker{Password: "hunter2"}, Tokens: testTokens()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(`{"password":"nope"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(`{`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionRequiresToken(t *testing.T) {
	r := newAdminRouter(Authorizer{Secrets: SecretChecker{Password: "hunter2"}, Tokens: testTokens()})

	for _, header := range []string{"", "Bearer ", "Bearer garbage", "Basic aHVudGVyMg=="} {
		req := httptest.NewRequest(http.MethodGet, "/admin/session", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestTokenServiceWithoutSecret(t *testing.T) {
	ts := TokenService{Issuer: "slayervault", Duration: time.Hour}

	_, _, err := ts.Sign()
	assert.ErrorIs(t, err, ErrNoSigningKey)

	// a token signed with an empty key must not parse either
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: ts.Issuer},
	})
	raw, err := tok.SignedString([]byte{})
	require.NoError(t, err)
	_, err = ts.Parse(raw)
	assert.ErrorIs(t, err, ErrNoSigningKey)
}

func TestUnconfiguredSecretRejectsValidToken(t *testing.T) {
	tokens := testTokens()
	raw, _, err := tokens.Sign()
	require.NoError(t, err)

	r := newAdminRouter(Authorizer{Tokens: tokens})
	req := httptest.NewRequest(http.MethodGet, "/admin/session", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDefaultConfigRejectsForgedToken(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("VAULT_ADMIN_PASSWORD_HASH", "")
	t.Setenv("VAULT_JWT_SECRET", "")

	cfg, err := utils.LoadAdminConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.JWTSecret)

	auth := Authorizer{
		Secrets: SecretChecker{Password: cfg.Password, Hash: cfg.PasswordHash},
		Tokens:  TokenService{Secret: []byte(cfg.JWTSecret), Issuer: cfg.JWTIssuer, Duration: cfg.JWTDuration},
	}
	forged, _, err := TokenService{Secret: []byte("dev-secret-change-me"), Issuer: cfg.JWTIssuer, Duration: time.Hour}.Sign()
	require.NoError(t, err)

	r := newAdminRouter(auth)
	req := httptest.NewRequest(http.MethodGet, "/admin/session", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestLoginWithoutJWTSecret(t *testing.T) {
	r := newAdminRouter(Authorizer{Secrets: SecretChecker{Password: "hunter2"}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(`{"password":"hunter2"}`)))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
