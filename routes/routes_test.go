package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catering/configs"
	"catering/repository"
	"catering/rules"
	"catering/services"
	"catering/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const testSecret = "test-secret"

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := configs.OpenDatabase("sqlite", "file:routes_"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	if err := configs.SetupDatabase(db); err != nil {
		t.Fatal(err)
	}
	env := &services.RuleEnv{
		Store: rules.NewStore(repository.NewSettingRepository(db), "businessRules", zerolog.Nop()),
		Clock: rules.FixedClock{T: time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)},
		Log:   zerolog.Nop(),
	}
	cfg := &configs.Config{JWTSecret: testSecret, JWTTTL: time.Hour}
	r := gin.New()
	RegisterRoutes(r, Deps{DB: db, Config: cfg, Env: env, Log: zerolog.Nop()})
	return r
}

func call(t *testing.T, r http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func adminToken(t *testing.T, role rules.Role) string {
	t.Helper()
	tok, err := utils.GenerateToken(99, role, testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestRegisterLoginAndBrowse(t *testing.T) {
	r := newRouter(t)

	w, _ := call(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email": "ana@catering.test", "password": "secret1", "firstName": "Ana", "lastName": "Ruiz",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body)
	}
	if w, _ := call(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "ana@catering.test", "password": "nope"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: %d", w.Code)
	}
	w, body := call(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "ana@catering.test", "password": "secret1"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body)
	}
	token, _ := body["token"].(string)
	if user, _ := body["user"].(map[string]any); user["role"] != "client" {
		t.Fatalf("user %v", body["user"])
	}

	if w, _ := call(t, r, http.MethodGet, "/menus", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous menus: %d", w.Code)
	}
	if w, _ := call(t, r, http.MethodGet, "/menus", token, nil); w.Code != http.StatusOK {
		t.Fatalf("menus: %d %s", w.Code, w.Body)
	}
	if w, _ := call(t, r, http.MethodGet, "/menus/metrics", token, nil); w.Code != http.StatusForbidden {
		t.Fatalf("client metrics: %d", w.Code)
	}
	w, body = call(t, r, http.MethodGet, "/clients", token, nil)
	if data, _ := body["data"].([]any); w.Code != http.StatusOK || len(data) != 1 {
		t.Fatalf("own clients: %d %s", w.Code, w.Body)
	}
}

func TestMenuDeleteNeedsConfirmation(t *testing.T) {
	r := newRouter(t)
	admin := adminToken(t, rules.RoleAdmin)

	w, _ := call(t, r, http.MethodPost, "/menus", admin, gin.H{
		"menuName": "Soup", "price": "10", "cost": "3", "category": "lunch", "stockLevel": 10, "popularity": 90,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body)
	}

	w, body := call(t, r, http.MethodDelete, "/menus/1", admin, nil)
	if warnings, _ := body["warnings"].([]any); w.Code != http.StatusConflict || len(warnings) != 2 {
		t.Fatalf("unconfirmed delete: %d %s", w.Code, w.Body)
	}
	if w, _ := call(t, r, http.MethodDelete, "/menus/1?confirm=true", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("confirmed delete: %d %s", w.Code, w.Body)
	}
	if w, _ := call(t, r, http.MethodGet, "/menus/1", admin, nil); w.Code != http.StatusNotFound {
		t.Fatalf("deleted menu: %d", w.Code)
	}
	if w, _ := call(t, r, http.MethodGet, "/menus/abc", admin, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", w.Code)
	}
}

func TestRulesEditing(t *testing.T) {
	r := newRouter(t)
	client := adminToken(t, rules.RoleClient)
	admin := adminToken(t, rules.RoleAdmin)

	if w, _ := call(t, r, http.MethodPut, "/rules", client, gin.H{"lowStockThreshold": 8}); w.Code != http.StatusForbidden {
		t.Fatalf("client edit: %d", w.Code)
	}
	w, body := call(t, r, http.MethodPut, "/rules", admin, gin.H{"dinnerStart": 31})
	if issues, _ := body["issues"].([]any); w.Code != http.StatusBadRequest || len(issues) != 1 {
		t.Fatalf("invalid rules: %d %s", w.Code, w.Body)
	}
	if w, _ := call(t, r, http.MethodPut, "/rules", admin, gin.H{"lowStockThreshold": 8}); w.Code != http.StatusOK {
		t.Fatalf("admin edit: %d %s", w.Code, w.Body)
	}

	w, body = call(t, r, http.MethodGet, "/rules", client, nil)
	data, _ := body["data"].(map[string]any)
	if w.Code != http.StatusOK || data["lowStockThreshold"] != float64(8) || data["happyHourStart"] != float64(15) {
		t.Fatalf("rules after edit: %d %s", w.Code, w.Body)
	}
}

func TestDemoUsersEndpoint(t *testing.T) {
	r := newRouter(t)

	cases := []struct {
		body any
		code int
		msg  string
	}{
		{gin.H{"name": "Ana"}, http.StatusBadRequest, "Name and email are required"},
		{gin.H{"name": "  ", "email": "a@b.c"}, http.StatusBadRequest, "Name and email must not contain space"},
		{gin.H{"name": "R2D2", "email": "a@b.c"}, http.StatusBadRequest, "Name must not contain numbers"},
		{gin.H{"name": "Ana", "email": "ana@b.c"}, http.StatusCreated, ""},
	}
	for _, tc := range cases {
		w, body := call(t, r, http.MethodPost, "/api/users", "", tc.body)
		if w.Code != tc.code {
			t.Fatalf("%v: %d %s", tc.body, w.Code, w.Body)
		}
		if tc.msg != "" && body["message"] != tc.msg {
			t.Fatalf("%v: message %v", tc.body, body["message"])
		}
		if tc.msg == "" && (body["id"] == "" || body["name"] != "Ana") {
			t.Fatalf("created %v", body)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var users []services.DemoUser
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil || len(users) != 1 {
		t.Fatalf("list: %s", w.Body)
	}

	w, body := call(t, r, http.MethodGet, "/nowhere", "", nil)
	if w.Code != http.StatusNotFound || body["message"] != "Route not found" {
		t.Fatalf("unknown route: %d %s", w.Code, w.Body)
	}
}

func TestDirectoryAndPaymentGates(t *testing.T) {
	r := newRouter(t)
	client := adminToken(t, rules.RoleClient)
	admin := adminToken(t, rules.RoleAdmin)

	if w, _ := call(t, r, http.MethodGet, "/payments", client, nil); w.Code != http.StatusForbidden {
		t.Fatalf("client payments: %d", w.Code)
	}
	if w, _ := call(t, r, http.MethodGet, "/payments", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("admin payments: %d %s", w.Code, w.Body)
	}

	venue := gin.H{"venueName": "Patio", "address": "Av. 3", "capacity": 20}
	if w, _ := call(t, r, http.MethodPost, "/venues", client, venue); w.Code != http.StatusForbidden {
		t.Fatalf("client venue create: %d", w.Code)
	}
	if w, _ := call(t, r, http.MethodPost, "/venues", admin, venue); w.Code != http.StatusCreated {
		t.Fatalf("admin venue create: %d %s", w.Code, w.Body)
	}

	w, body := call(t, r, http.MethodPost, "/clients", admin, gin.H{"firstName": "Marta", "email": "marta"})
	if issues, _ := body["issues"].([]any); w.Code != http.StatusBadRequest || len(issues) != 4 {
		t.Fatalf("invalid client: %d %s", w.Code, w.Body)
	}
	w, _ = call(t, r, http.MethodPost, "/clients", admin, gin.H{
		"firstName": "Marta", "lastName": "Vega", "email": "marta@example.com", "phoneNumber": "555-0101", "address": "Calle 5",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("admin client create: %d %s", w.Code, w.Body)
	}
}
