package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/docsmart-health/docsmart-api/internal/config"
)

const testSecret = "test-secret"

func testRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: testSecret}

	r := gin.New()
	r.GET("/protected", RequireAuth(cfg, role), func(c *gin.Context) {
		resp := gin.H{"success": true}
		if role == RoleUser {
			resp["userID"] = c.MustGet(ContextUserID)
		} else {
			resp["adminEmail"] = c.MustGet(ContextAdminEmail)
		}
		c.JSON(http.StatusOK, resp)
	})
	return r
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func userToken(t *testing.T, userID uint, exp time.Time) string {
	return signToken(t, jwt.MapClaims{
		"sub":  userID,
		"role": RoleUser,
		"exp":  exp.Unix(),
	})
}

func adminToken(t *testing.T, email string, exp time.Time) string {
	return signToken(t, jwt.MapClaims{
		"sub":  email,
		"role": RoleAdmin,
		"exp":  exp.Unix(),
	})
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return body.Message
}

func TestRequireAuthRejections(t *testing.T) {
	future := time.Now().Add(time.Hour)

	cases := []struct {
		name        string
		role        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing header",
			role:        RoleUser,
			header:      "",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Not authorized. Login again.",
		},
		{
			name:        "not a bearer scheme",
			role:        RoleUser,
			header:      "Basic abc123",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Not authorized. Login again.",
		},
		{
			name:        "garbage token",
			role:        RoleUser,
			header:      "Bearer not-a-jwt",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token.",
		},
		{
			name:        "expired token",
			role:        RoleUser,
			header:      "Bearer " + userToken(t, 7, time.Now().Add(-time.Hour)),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Session expired. Please login again.",
		},
		{
			name:        "user token on admin route",
			role:        RoleAdmin,
			header:      "Bearer " + userToken(t, 7, future),
			wantStatus:  http.StatusForbidden,
			wantMessage: "Access denied.",
		},
		{
			name:        "admin token on user route",
			role:        RoleUser,
			header:      "Bearer " + adminToken(t, "admin@docsmart.com", future),
			wantStatus:  http.StatusForbidden,
			wantMessage: "Access denied.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := request(testRouter(tc.role), tc.header)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if got := messageOf(t, w); got != tc.wantMessage {
				t.Errorf("message = %q, want %q", got, tc.wantMessage)
			}
		})
	}
}

func TestRequireAuthUserToken(t *testing.T) {
	w := request(testRouter(RoleUser), "Bearer "+userToken(t, 7, time.Now().Add(time.Hour)))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var body struct {
		UserID uint `json:"userID"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.UserID != 7 {
		t.Errorf("userID = %d, want 7", body.UserID)
	}
}

func TestRequireAuthAdminToken(t *testing.T) {
	w := request(testRouter(RoleAdmin), "Bearer "+adminToken(t, "admin@docsmart.com", time.Now().Add(time.Hour)))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var body struct {
		AdminEmail string `json:"adminEmail"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.AdminEmail != "admin@docsmart.com" {
		t.Errorf("adminEmail = %q, want admin@docsmart.com", body.AdminEmail)
	}
}
