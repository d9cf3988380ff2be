package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"home-services/internal/data/entity"
	"home-services/internal/data/repository"
	"home-services/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testTokens() *utils.TokenManager {
	return utils.NewTokenManager(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
}

// echoUser answers 200 with the user id found on the context, if any.
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, _ := utils.GetUserIDFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(id))
})

func serve(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	tokens := testTokens()
	h := Authenticate(tokens, zap.NewNop())(echoUser)

	id := utils.NewObjectID()
	token, _, err := tokens.Generate(id, "customer")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Token "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer nope").Code)

	rec := serve(h, "bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, rec.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	tokens := testTokens()
	h := OptionalAuth(tokens, zap.NewNop())(echoUser)

	rec := serve(h, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	// a token that is present must be valid
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer nope").Code)

	id := utils.NewObjectID()
	token, _, err := tokens.Generate(id, "customer")
	require.NoError(t, err)
	rec = serve(h, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	tokens := testTokens()
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	newUser := func(role entity.UserRole, blocked bool) string {
		now := time.Now()
		u := &entity.User{
			Base:    entity.Base{ID: utils.NewObjectID(), CreatedAt: now, UpdatedAt: now},
			Name:    string(role),
			Email:   utils.NewObjectID() + "@example.com",
			Role:    role,
			Blocked: blocked,
		}
		require.NoError(t, repo.User.Create(ctx, u))
		return u.ID
	}
	bearer := func(id, role string) string {
		token, _, err := tokens.Generate(id, role)
		require.NoError(t, err)
		return "Bearer " + token
	}

	h := Authenticate(tokens, zap.NewNop())(Admin(repo.User, zap.NewNop())(echoUser))

	admin := newUser(entity.RoleAdmin, false)
	customer := newUser(entity.RoleCustomer, false)
	blocked := newUser(entity.RoleAdmin, true)

	assert.Equal(t, http.StatusOK, serve(h, bearer(admin, "admin")).Code)
	assert.Equal(t, http.StatusForbidden, serve(h, bearer(blocked, "admin")).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, bearer(utils.NewObjectID(), "admin")).Code)

	// the stored role counts, not the claim
	assert.Equal(t, http.StatusForbidden, serve(h, bearer(customer, "admin")).Code)
}
