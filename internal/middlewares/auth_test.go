package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fathima-sithara/account-service/internal/models"
	"github.com/fathima-sithara/account-service/internal/repository"
	"github.com/fathima-sithara/account-service/internal/token"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubRepo serves a single user by id.
type stubRepo struct {
	user *models.User
}

func (s *stubRepo) Create(context.Context, *models.User) error { return nil }

func (s *stubRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubRepo) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, repository.ErrUserNotFound
}

func (s *stubRepo) FindByPhone(context.Context, string) (*models.User, error) {
	return nil, repository.ErrUserNotFound
}

func (s *stubRepo) SetOTP(context.Context, primitive.ObjectID, string, time.Time) error { return nil }

func (s *stubRepo) ConsumeOTP(context.Context, bson.M, string, time.Time, string) (*models.User, error) {
	return nil, repository.ErrOTPMismatch
}

func (s *stubRepo) UpdateFields(context.Context, primitive.ObjectID, bson.M) (*models.User, error) {
	return nil, repository.ErrUserNotFound
}

func newProtectedApp(t *testing.T, role string) (*fiber.App, string) {
	t.Helper()
	tm := token.NewManager("test-secret", time.Hour)
	user := &models.User{ID: primitive.NewObjectID(), Name: "Alice", Role: role}
	repo := &stubRepo{user: user}

	app := fiber.New()
	app.Get("/me", Protect(tm, repo), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"name": CurrentUser(c).Name})
	})
	app.Get("/admin", Protect(tm, repo), Authorize("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tok, err := tm.Issue(user.ID.Hex())
	require.NoError(t, err)
	return app, tok
}

func get(t *testing.T, app *fiber.App, path, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestProtect(t *testing.T) {
	app, tok := newProtectedApp(t, "user")

	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/me", ""))
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/me", "Bearer bogus"))
	assert.Equal(t, http.StatusOK, get(t, app, "/me", "Bearer "+tok))
	assert.Equal(t, http.StatusOK, get(t, app, "/me", tok))
}

func TestProtect_UnknownUser(t *testing.T) {
	tm := token.NewManager("test-secret", time.Hour)
	app := fiber.New()
	app.Get("/me", Protect(tm, &stubRepo{}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tok, err := tm.Issue(primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/me", "Bearer "+tok))
}

func TestAuthorize(t *testing.T) {
	t.Run("role denied", func(t *testing.T) {
		app, tok := newProtectedApp(t, "user")
		assert.Equal(t, http.StatusForbidden, get(t, app, "/admin", "Bearer "+tok))
	})

	t.Run("role allowed", func(t *testing.T) {
		app, tok := newProtectedApp(t, "admin")
		assert.Equal(t, http.StatusOK, get(t, app, "/admin", "Bearer "+tok))
	})
}
