package handlers

import (
	"net/http"
	"testing"

	"issuecart-backend/middleware"
	"issuecart-backend/models"
)

func TestSetCustomerCreatesSessionAndRedirects(t *testing.T) {
	db := freshDB(t)
	r := setupRouter(db)
	customer := seedCustomer(t, db, "switch_target")

	w := sessionRequest(r, "GET", "/api/set-customer/"+customer.ID.String(), nil, "")
	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/api/products" {
		t.Errorf("expected redirect to /api/products, got %q", loc)
	}

	cookie := ""
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c.Value
		}
	}
	if cookie == "" {
		t.Fatal("expected session cookie to be set")
	}

	var session models.Session
	if err := db.Where("token = ?", cookie).First(&session).Error; err != nil {
		t.Fatal(err)
	}
	if session.CustomerID != customer.ID {
		t.Errorf("expected session for customer %s, got %s", customer.ID, session.CustomerID)
	}
}

func TestSetCustomerReusesExistingSession(t *testing.T) {
	db := freshDB(t)
	r := setupRouter(db)
	first := seedCustomer(t, db, "first_identity")
	second := seedCustomer(t, db, "second_identity")
	token := seedSession(t, db, first.ID)

	w := sessionRequest(r, "GET", "/api/set-customer/"+second.ID.String(), nil, token)
	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}

	var session models.Session
	if err := db.Where("token = ?", token).First(&session).Error; err != nil {
		t.Fatal(err)
	}
	if session.CustomerID != second.ID {
		t.Errorf("expected session switched to %s, got %s", second.ID, session.CustomerID)
	}

	var count int64
	db.Model(&models.Session{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a single session row, got %d", count)
	}
}

func TestSetCustomerUnknownIDRedirectsWithoutSession(t *testing.T) {
	db := freshDB(t)
	r := setupRouter(db)

	w := sessionRequest(r, "GET", "/api/set-customer/00000000-0000-0000-0000-000000000000", nil, "")
	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}

	var count int64
	db.Model(&models.Session{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no session rows, got %d", count)
	}
}

func TestSetCustomerMalformedIDRedirects(t *testing.T) {
	db := freshDB(t)
	r := setupRouter(db)

	w := sessionRequest(r, "GET", "/api/set-customer/not-a-uuid", nil, "")
	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/api/products" {
		t.Errorf("expected redirect to /api/products, got %q", loc)
	}
}

func TestGetCustomers(t *testing.T) {
	db := freshDB(t)
	r := setupRouter(db)
	seedCustomer(t, db, "alpha")
	waitClock()
	seedCustomer(t, db, "beta")

	w := sessionRequest(r, "GET", "/api/admin/customers", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	customers := parseResponseArray(t, w)
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}
	if customers[0]["username"] != "alpha" {
		t.Errorf("expected oldest customer first, got %v", customers[0]["username"])
	}
}

func TestCreateCustomer(t *testing.T) {
	db := freshDB(t)
	r := setupRouter(db)

	body := `{"username":"yamada","age":25,"email":"yamada@example.com","sex":"M"}`
	w := jsonRequest(r, "POST", "/api/admin/customers", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(t, w)
	if resp["username"] != "yamada" {
		t.Errorf("unexpected username: %v", resp["username"])
	}

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 customer row, got %d", count)
	}
}

func TestCreateCustomerDuplicateUsername(t *testing.T) {
	db := freshDB(t)
	r := setupRouter(db)
	seedCustomer(t, db, "taken")

	body := `{"username":"taken","age":25,"email":"other@example.com","sex":"F"}`
	w := jsonRequest(r, "POST", "/api/admin/customers", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp["message"] != "ユーザー名またはメールアドレスは既に登録されています" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	db := freshDB(t)
	r := setupRouter(db)
	seedCustomer(t, db, "original")

	body := `{"username":"someone_else","age":25,"email":"original@example.com","sex":"O"}`
	w := jsonRequest(r, "POST", "/api/admin/customers", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}

func TestCreateCustomerValidation(t *testing.T) {
	db := freshDB(t)
	r := setupRouter(db)

	cases := []struct {
		name string
		body string
	}{
		{"missing username", `{"age":25,"email":"a@example.com","sex":"M"}`},
		{"bad email", `{"username":"u1","age":25,"email":"not-an-email","sex":"M"}`},
		{"bad sex", `{"username":"u2","age":25,"email":"u2@example.com","sex":"X"}`},
		{"negative age", `{"username":"u3","age":-1,"email":"u3@example.com","sex":"M"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := jsonRequest(r, "POST", "/api/admin/customers", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no customer rows, got %d", count)
	}
}
