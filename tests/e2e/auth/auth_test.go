//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"rental-listings/internal/domain/user"
	"rental-listings/internal/handler/dto/request"
	"rental-listings/internal/handler/dto/response"
	"rental-listings/internal/pkg/cookie"
	"rental-listings/internal/usecase/queries"
	"rental-listings/tests/common/authtest"
	"rental-listings/tests/common/dbtest"
	"rental-listings/tests/common/httptest"
	"rental-listings/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	refreshURL  = "/api/auth/refresh"
	logoutURL   = "/api/auth/logout"
	meURL       = "/api/auth/me"
)

type AuthSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AuthSuite))
}

// =============================================================================
// TestRegister - Registration API tests
// =============================================================================

func (s *AuthSuite) TestRegister() {
	s.Run("Normal case: Tenant account registered successfully", func() {
		t := s.T()

		reqBody := request.RegisterRequest{
			Email:    "newtenant@example.com",
			Password: "password123",
			Role:     "tenant",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.RegisterResponse
		err := httptest.DecodeResponseBody(t, w.Body, &created)
		require.NoError(t, err)
		require.NotEmpty(t, created.UserID)

		// the fresh account can log in right away
		token := authtest.LoginUser(t, s.Router, "newtenant@example.com", "password123")
		require.NotEmpty(t, token)
	})

	s.Run("Error case: Duplicate email is rejected", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "taken@example.com", string(user.RoleTenant))

		reqBody := request.RegisterRequest{
			Email:    "taken@example.com",
			Password: "password123",
			Role:     "tenant",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already registered")
	})

	s.Run("Error case: Validation failures", func() {
		t := s.T()

		testCases := []struct {
			name string
			body request.RegisterRequest
		}{
			{"invalid email", request.RegisterRequest{Email: "not-an-email", Password: "password123", Role: "tenant"}},
			{"short password", request.RegisterRequest{Email: "a@example.com", Password: "short", Role: "tenant"}},
			{"unknown role", request.RegisterRequest{Email: "a@example.com", Password: "password123", Role: "admin"}},
		}
		for _, tc := range testCases {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, tc.body, "")
			require.Equal(t, http.StatusBadRequest, w.Code, tc.name)
		}
	})
}

// =============================================================================
// TestLogin - Login API tests
// =============================================================================

func (s *AuthSuite) TestLogin() {
	s.Run("Normal case: Login returns token pair and user view", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "login@example.com", string(user.RoleLandlord))

		reqBody := request.LoginRequest{Email: "login@example.com", Password: "password123"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.LoginResponse
		err := httptest.DecodeResponseBody(t, w.Body, &res)
		require.NoError(t, err)
		require.NotEmpty(t, res.AccessToken)
		require.Equal(t, "login@example.com", res.User.Email)
		require.Equal(t, "landlord", res.User.Role)

		cookies := w.Result().Cookies()
		names := make(map[string]bool, len(cookies))
		for _, c := range cookies {
			names[c.Name] = true
		}
		require.True(t, names[cookie.AccessTokenCookieName], "Access token cookie should be set")
		require.True(t, names[cookie.RefreshTokenCookieName], "Refresh token cookie should be set")
	})

	s.Run("Error case: Wrong password is unauthorized", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "login@example.com", string(user.RoleTenant))

		reqBody := request.LoginRequest{Email: "login@example.com", Password: "wrongpass1"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("Error case: Unknown email is unauthorized", func() {
		t := s.T()

		reqBody := request.LoginRequest{Email: "nobody@example.com", Password: "password123"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid email or password")
	})
}

// =============================================================================
// TestRefresh - Token refresh API tests
// =============================================================================

func (s *AuthSuite) TestRefresh() {
	s.Run("Normal case: Refresh cookie rotates the token pair", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "refresh@example.com", string(user.RoleTenant))

		reqBody := request.LoginRequest{Email: "refresh@example.com", Password: "password123"}
		loginResp := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
		require.Equal(t, http.StatusOK, loginResp.Code)

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, refreshURL, nil, loginResp.Result().Cookies(), "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.RefreshResponse
		err := httptest.DecodeResponseBody(t, w.Body, &res)
		require.NoError(t, err)
		require.NotEmpty(t, res.AccessToken)
	})

	s.Run("Error case: Missing refresh token is unauthorized", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Error case: Garbage refresh token is unauthorized", func() {
		t := s.T()

		reqBody := request.RefreshRequest{RefreshToken: "not-a-jwt"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid refresh token")
	})
}

// =============================================================================
// TestMe - Current user API tests
// =============================================================================

func (s *AuthSuite) TestMe() {
	s.Run("Normal case: Returns the authenticated user", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "me@example.com", string(user.RoleTenant))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view queries.AuthorizedUserView
		err := httptest.DecodeResponseBody(t, w.Body, &view)
		require.NoError(t, err)
		require.Equal(t, "me@example.com", view.Email)
		require.Equal(t, "tenant", view.Role)
		require.True(t, view.IsActive)
	})

	s.Run("Auth test - Unauthorized when not logged in", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestLogout - Logout API tests
// =============================================================================

func (s *AuthSuite) TestLogout() {
	s.Run("Normal case: Logout clears auth cookies", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "bye@example.com", string(user.RoleTenant))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		for _, c := range w.Result().Cookies() {
			if c.Name == cookie.AccessTokenCookieName || c.Name == cookie.RefreshTokenCookieName {
				require.LessOrEqual(t, c.MaxAge, 0, "Auth cookie should be expired")
			}
		}
	})
}
