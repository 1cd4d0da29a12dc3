package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/users-api/config"
	"github.com/oksasatya/users-api/internal/container"
	"github.com/oksasatya/users-api/pkg/helpers"
	"github.com/oksasatya/users-api/pkg/validation"
)

const missingID = "00000000-0000-0000-0000-000000000000"

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

func newTestServer(t *testing.T, basePath string) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		AppName:             "users-api",
		Env:                 "test",
		APIBasePath:         basePath,
		StoreDriver:         "memory",
		JWTSecret:           "this-is-a-test-secret-with-32-bytes!",
		JWTIssuer:           "Testing",
		JWTTTL:              24 * time.Hour,
		BcryptCost:          4,
		DebugMetricsEnabled: true,
	}
	c := container.New(cfg, helpers.NewLoggerTo(io.Discard, cfg.AppName, cfg.Env))
	return NewEngine(c)
}

type result struct {
	code int
	body []byte
}

func (r result) json(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(r.body, &m), string(r.body))
	return m
}

func do(t *testing.T, h http.Handler, method, path string, body any, headers ...string) result {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return result{code: w.Code, body: w.Body.Bytes()}
}

func signupUser(t *testing.T, h http.Handler, email string) (token, id string) {
	t.Helper()
	res := do(t, h, http.MethodPost, "/users", map[string]string{
		"firstName": "Ada", "lastName": "Lovelace", "email": email, "password": "pw-123",
	})
	require.Equal(t, http.StatusOK, res.code, string(res.body))
	m := res.json(t)
	user := m["user"].(map[string]any)
	return m["token"].(string), user["id"].(string)
}

func TestSignupThenDuplicate(t *testing.T) {
	h := newTestServer(t, "")

	res := do(t, h, http.MethodPost, "/users", map[string]string{"firstName": "Ada", "email": "Ada@Example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, res.code)
	m := res.json(t)
	assert.NotEmpty(t, m["token"])
	user := m["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.Len(t, user, 4)
	assert.NotContains(t, string(res.body), "password")

	res = do(t, h, http.MethodPost, "/users", map[string]string{"email": "ada@example.com", "password": "other"})
	assert.Equal(t, http.StatusForbidden, res.code)
	assert.Equal(t, map[string]any{"error": "Email is already in use"}, res.json(t))
}

func TestSignupInvalidBody(t *testing.T) {
	h := newTestServer(t, "")

	for name, body := range map[string]any{
		"missing email":  map[string]string{"password": "pw"},
		"bad email":      map[string]string{"email": "nope", "password": "pw"},
		"empty password": map[string]string{"email": "a@b.io", "password": ""},
		"not json":       "{",
	} {
		t.Run(name, func(t *testing.T) {
			res := do(t, h, http.MethodPost, "/users", body)
			assert.Equal(t, http.StatusBadRequest, res.code)
			assert.NotEmpty(t, res.json(t)["error"])
		})
	}
}

func TestSignIn(t *testing.T) {
	h := newTestServer(t, "")
	_, id := signupUser(t, h, "ada@example.com")

	res := do(t, h, http.MethodPost, "/users/signin", map[string]string{"email": "ADA@example.com", "password": "pw-123"})
	require.Equal(t, http.StatusOK, res.code)
	m := res.json(t)
	assert.NotEmpty(t, m["token"])
	assert.Equal(t, id, m["user"].(map[string]any)["id"])

	res = do(t, h, http.MethodPost, "/users/signin", map[string]string{"email": "ada@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, res.code)
	assert.Empty(t, res.body)

	res = do(t, h, http.MethodPost, "/users/signin", map[string]string{"email": "nobody@example.com", "password": "pw-123"})
	assert.Equal(t, http.StatusUnauthorized, res.code)

	res = do(t, h, http.MethodPost, "/users/signin", map[string]string{"email": "ada@example.com"})
	assert.Equal(t, http.StatusBadRequest, res.code)
}

func TestSecret(t *testing.T) {
	h := newTestServer(t, "")
	token, _ := signupUser(t, h, "ada@example.com")

	res := do(t, h, http.MethodGet, "/users/secret", nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, map[string]any{"secret": "resource"}, res.json(t))

	res = do(t, h, http.MethodGet, "/users/secret", nil, "Authorization", token)
	assert.Equal(t, http.StatusOK, res.code)

	res = do(t, h, http.MethodGet, "/users/secret", nil)
	assert.Equal(t, http.StatusUnauthorized, res.code)

	res = do(t, h, http.MethodGet, "/users/secret", nil, "Authorization", "Bearer "+token+"x")
	assert.Equal(t, http.StatusUnauthorized, res.code)
}

func TestGetAndList(t *testing.T) {
	h := newTestServer(t, "")

	res := do(t, h, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, []any{}, res.json(t)["data"])

	_, id := signupUser(t, h, "ada@example.com")

	res = do(t, h, http.MethodGet, "/users/"+id, nil)
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, id, res.json(t)["id"])

	res = do(t, h, http.MethodGet, "/users/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = do(t, h, http.MethodGet, "/users/"+missingID, nil)
	assert.Equal(t, http.StatusNotFound, res.code)
	assert.Equal(t, "User does not exists", res.json(t)["error"])

	res = do(t, h, http.MethodGet, "/users", nil)
	assert.Len(t, res.json(t)["data"], 1)
}

func TestPatch(t *testing.T) {
	h := newTestServer(t, "")
	_, id := signupUser(t, h, "ada@example.com")
	signupUser(t, h, "taken@example.com")

	res := do(t, h, http.MethodPatch, "/users/"+id, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, res.code)
	assert.Equal(t, "Please include parameters to update", res.json(t)["error"])

	res = do(t, h, http.MethodPatch, "/users/"+id, nil)
	assert.Equal(t, http.StatusBadRequest, res.code)
	assert.Equal(t, "Please include parameters to update", res.json(t)["error"])

	// empty update wins over an unknown id
	res = do(t, h, http.MethodPatch, "/users/"+missingID, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = do(t, h, http.MethodPatch, "/users/"+missingID, map[string]string{"firstName": "x"})
	assert.Equal(t, http.StatusNotFound, res.code)

	res = do(t, h, http.MethodPatch, "/users/"+id, map[string]string{"email": "TAKEN@example.com"})
	assert.Equal(t, http.StatusForbidden, res.code)

	res = do(t, h, http.MethodPatch, "/users/"+id, map[string]string{"lastName": "Byron", "password": "new-pw"})
	require.Equal(t, http.StatusOK, res.code)
	m := res.json(t)
	assert.Equal(t, true, m["success"])
	assert.Equal(t, "Byron", m["user"].(map[string]any)["lastName"])
	assert.NotContains(t, string(res.body), "new-pw")

	res = do(t, h, http.MethodPost, "/users/signin", map[string]string{"email": "ada@example.com", "password": "new-pw"})
	assert.Equal(t, http.StatusOK, res.code)
}

func TestPut(t *testing.T) {
	h := newTestServer(t, "")
	_, id := signupUser(t, h, "ada@example.com")

	res := do(t, h, http.MethodPut, "/users/"+id, map[string]string{"firstName": "Grace"})
	assert.Equal(t, http.StatusBadRequest, res.code)

	full := map[string]string{"firstName": "Grace", "lastName": "Hopper", "email": "grace@example.com", "password": "cobol"}
	res = do(t, h, http.MethodPut, "/users/"+id, full)
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, map[string]any{
		"success": true,
		"user":    map[string]any{"id": id, "firstName": "Grace", "lastName": "Hopper", "email": "grace@example.com"},
	}, res.json(t))

	res = do(t, h, http.MethodPut, "/users/"+missingID, full)
	assert.Equal(t, http.StatusNotFound, res.code)
}

func TestPasswordOverBcryptLimit(t *testing.T) {
	h := newTestServer(t, "")
	_, id := signupUser(t, h, "ada@example.com")
	long := strings.Repeat("a", 73)

	res := do(t, h, http.MethodPost, "/users", map[string]string{"email": "long@example.com", "password": long})
	assert.Equal(t, http.StatusBadRequest, res.code)
	assert.NotEmpty(t, res.json(t)["error"])

	res = do(t, h, http.MethodPut, "/users/"+id, map[string]string{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": long,
	})
	assert.Equal(t, http.StatusBadRequest, res.code)

	// 40 runes pass the length tag but are 80 bytes once encoded
	res = do(t, h, http.MethodPatch, "/users/"+id, map[string]string{"password": strings.Repeat("é", 40)})
	assert.Equal(t, http.StatusBadRequest, res.code)
	assert.Equal(t, map[string]any{"error": "password must be at most 72 bytes"}, res.json(t))

	res = do(t, h, http.MethodPost, "/users/signin", map[string]string{"email": "ada@example.com", "password": "pw-123"})
	assert.Equal(t, http.StatusOK, res.code)
}

func TestCars(t *testing.T) {
	h := newTestServer(t, "")
	_, id := signupUser(t, h, "seller@example.com")

	res := do(t, h, http.MethodPost, "/users/"+id+"/cars", map[string]any{"make": "Toyota", "model": "Corolla", "year": 2020})
	require.Equal(t, http.StatusCreated, res.code, string(res.body))
	car := res.json(t)
	assert.Equal(t, id, car["seller"])

	res = do(t, h, http.MethodPost, "/users/"+id+"/cars", map[string]any{"make": "Toyota"})
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = do(t, h, http.MethodGet, "/users/"+id+"/cars", nil)
	require.Equal(t, http.StatusOK, res.code)
	var cars []map[string]any
	require.NoError(t, json.Unmarshal(res.body, &cars))
	require.Len(t, cars, 1)
	assert.Equal(t, car["id"], cars[0]["id"])

	res = do(t, h, http.MethodGet, "/users/"+missingID+"/cars", nil)
	assert.Equal(t, http.StatusNotFound, res.code)
}

func TestSearchWithoutIndex(t *testing.T) {
	h := newTestServer(t, "")

	res := do(t, h, http.MethodGet, "/users/search", nil)
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = do(t, h, http.MethodGet, "/users/search?q=ada", nil)
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, []any{}, res.json(t)["data"])
}

func TestNotFoundAndDebug(t *testing.T) {
	h := newTestServer(t, "")

	res := do(t, h, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, res.code)
	assert.Equal(t, map[string]any{"error": "Not Found"}, res.json(t))

	res = do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "ok", res.json(t)["status"])

	signupUser(t, h, "ada@example.com")
	res = do(t, h, http.MethodGet, "/debug/vars", nil)
	require.Equal(t, http.StatusOK, res.code)
	assert.Contains(t, res.json(t), "users_signups_total")
}

func TestBasePath(t *testing.T) {
	h := newTestServer(t, "/api")

	res := do(t, h, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusOK, res.code)

	res = do(t, h, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusNotFound, res.code)
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
