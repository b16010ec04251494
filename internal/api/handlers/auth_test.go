package handlers_test

import (
	"net/http"
	"testing"

	"github.com/mcortez/taskstack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"email":    "a@x.com",
				"password": "pw123456",
				"name":     "A",
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "a@x.com", result.User.Email)
				assert.Equal(t, "A", result.User.Name)
				assert.NotEmpty(t, result.Token)
				assert.NotEmpty(t, result.RefreshToken)
				assert.Positive(t, result.ExpiresIn)
			},
		},
		{
			name: "invalid email",
			request: map[string]string{
				"email":    "not-an-email",
				"password": "pw123456",
				"name":     "A",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "short password",
			request: map[string]string{
				"email":    "b@x.com",
				"password": "short",
				"name":     "B",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing name",
			request: map[string]string{
				"email":    "c@x.com",
				"password": "pw123456",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"email":    "taken@x.com",
				"password": "pw123456",
				"name":     "Dup",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@x.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "empty request body",
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/auth/register"), "", tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@x.com").
		WithPassword("pw123456").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
	}{
		{
			name: "successful login",
			request: map[string]string{
				"email":    user.Email,
				"password": rawPassword,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			request: map[string]string{
				"email":    user.Email,
				"password": "wrongpw1",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown email",
			request: map[string]string{
				"email":    "ghost@x.com",
				"password": "whatever1",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "missing password",
			request: map[string]string{
				"email": user.Email,
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/auth/login"), "", tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusUnauthorized {
				body, _ := testutil.ReadErrorBody(t, resp)
				assert.Equal(t, "Unauthenticated", body.Error)
				assert.Equal(t, "Invalid email or password", body.Message)
			}
		})
	}
}

// A login against an unknown email and one against a known email with the
// wrong password must return byte-identical bodies.
func TestAuthHandler_Login_IdenticalErrorBodies(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().
		WithEmail("real@x.com").
		WithPassword("pw123456").
		Build(t, ts.DB.DB)

	respWrongPassword := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/auth/login"), "", map[string]string{
		"email":    "real@x.com",
		"password": "wrongpw1",
	})
	defer respWrongPassword.Body.Close()

	respUnknownEmail := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/auth/login"), "", map[string]string{
		"email":    "ghost@x.com",
		"password": "wrongpw1",
	})
	defer respUnknownEmail.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, respWrongPassword.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, respUnknownEmail.StatusCode)

	_, rawWrongPassword := testutil.ReadErrorBody(t, respWrongPassword)
	_, rawUnknownEmail := testutil.ReadErrorBody(t, respUnknownEmail)
	assert.Equal(t, rawWrongPassword, rawUnknownEmail)
}

func TestAuthHandler_RegisterThenLogin(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/auth/register"), "", map[string]string{
		"email":    "roundtrip@x.com",
		"password": "pw123456",
		"name":     "Round Trip",
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var registered testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp, &registered)

	resp = testutil.DoJSON(t, http.MethodPost, ts.APIURL("/auth/login"), "", map[string]string{
		"email":    "roundtrip@x.com",
		"password": "pw123456",
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var loggedIn testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp, &loggedIn)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	// Both tokens resolve to the same user via /auth/me.
	for _, token := range []string{registered.Token, loggedIn.Token} {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/auth/me"), token, nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var me struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		}
		testutil.AssertJSONResponse(t, resp, &me)
		assert.Equal(t, registered.User.ID, me.ID)
		assert.Equal(t, "roundtrip@x.com", me.Email)
	}
}

func TestAuthHandler_Me_Unauthorized(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{name: "no token", token: ""},
		{name: "garbage token", token: "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/auth/me"), tt.token, nil)
			defer resp.Body.Close()
			testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthenticated")
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/auth/register"), "", map[string]string{
		"email":    "refresh@x.com",
		"password": "pw123456",
		"name":     "Refresh",
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var registered testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp, &registered)

	resp = testutil.DoJSON(t, http.MethodPost, ts.APIURL("/auth/refresh"), "", map[string]string{
		"refreshToken": registered.RefreshToken,
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var refreshed testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp, &refreshed)
	require.NotEmpty(t, refreshed.Token)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The spent refresh token no longer works.
	resp = testutil.DoJSON(t, http.MethodPost, ts.APIURL("/auth/refresh"), "", map[string]string{
		"refreshToken": registered.RefreshToken,
	})
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthenticated")
}

func TestAuthHandler_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/auth/register"), "", map[string]string{
		"email":    "logout@x.com",
		"password": "pw123456",
		"name":     "Logout",
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var registered testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp, &registered)

	resp = testutil.DoJSON(t, http.MethodPost, ts.APIURL("/auth/logout"), registered.Token, nil)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result map[string]bool
	testutil.AssertJSONResponse(t, resp, &result)
	assert.True(t, result["success"])

	// Refresh sessions are revoked after logout.
	resp = testutil.DoJSON(t, http.MethodPost, ts.APIURL("/auth/refresh"), "", map[string]string{
		"refreshToken": registered.RefreshToken,
	})
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthenticated")
}
