package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Brandonkhumalo/harare-wheels-showcase/models"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return New(server.URL, NewMemorySession()), server
}

func TestLoginStoresToken(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"token":"tok-123","admin":{"id":1,"username":"admin@hararewheels"}}`))
	}))
	defer server.Close()

	result, err := c.Login(context.Background(), "admin@hararewheels", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token != "tok-123" || result.Admin.Username != "admin@hararewheels" {
		t.Errorf("Login() = %+v", result)
	}
	if c.Session.Token() != "tok-123" {
		t.Errorf("session token = %q, want tok-123", c.Session.Token())
	}
}

func TestLoginRejectedCarriesServerMessage(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))
	defer server.Close()

	_, err := c.Login(context.Background(), "admin", "wrong")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Login() error = %v, want *AuthError", err)
	}
	if authErr.Message != "Invalid credentials" {
		t.Errorf("message = %q, want server message", authErr.Message)
	}
	if c.Session.Authenticated() {
		t.Error("session must stay unauthenticated after a rejected login")
	}
}

func TestVerifyToken(t *testing.T) {
	t.Run("false without token and no request issued", func(t *testing.T) {
		requests := 0
		c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer server.Close()

		if c.VerifyToken(context.Background()) {
			t.Error("VerifyToken() = true without a token")
		}
		if requests != 0 {
			t.Errorf("issued %d requests without a token", requests)
		}
	})

	t.Run("true on 200", func(t *testing.T) {
		c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
				t.Errorf("Authorization = %q", got)
			}
			w.Write([]byte(`{"valid":true}`))
		}))
		defer server.Close()
		c.Session.SetToken("tok-123")

		if !c.VerifyToken(context.Background()) {
			t.Error("VerifyToken() = false for a live session")
		}
	})

	t.Run("false on rejected token", func(t *testing.T) {
		c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()
		c.Session.SetToken("expired")

		if c.VerifyToken(context.Background()) {
			t.Error("VerifyToken() = true for a rejected token")
		}
	})

	t.Run("false, not panic or error, on network failure", func(t *testing.T) {
		c := New("http://127.0.0.1:1", NewMemorySession())
		c.Session.SetToken("tok-123")

		if c.VerifyToken(context.Background()) {
			t.Error("VerifyToken() = true on unreachable server")
		}
	})
}

func TestLogoutClearsTokenEvenWhenServerUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", NewMemorySession())
	c.Session.SetToken("tok-123")

	err := c.Logout(context.Background())
	if err == nil {
		t.Error("Logout() expected a transport error against an unreachable server")
	}
	if c.Session.Authenticated() {
		t.Error("token survived a failed logout")
	}
}

func TestGetCarNotFound(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Car not found"}`))
	}))
	defer server.Close()

	_, err := c.GetCar(context.Background(), 999)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("GetCar() error = %v, want *NotFoundError", err)
	}
}

func TestGetCarsQueryEncoding(t *testing.T) {
	var gotQuery string
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	if _, err := c.GetCars(context.Background(), nil); err != nil {
		t.Fatalf("GetCars() error = %v", err)
	}
	if gotQuery != "" {
		t.Errorf("nil query sent parameters: %q", gotQuery)
	}

	brandID := 3
	minPrice := 5000.0
	query := &models.CarQuery{BrandID: &brandID, BodyType: "SUV", MinPrice: &minPrice}
	if _, err := c.GetCars(context.Background(), query); err != nil {
		t.Fatalf("GetCars() error = %v", err)
	}
	for _, want := range []string{"brand_id=3", "body_type=SUV", "min_price=5000"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
	for _, unwanted := range []string{"fuel_type", "transmission", "max_price", "featured"} {
		if strings.Contains(gotQuery, unwanted) {
			t.Errorf("query %q contains omitted parameter %q", gotQuery, unwanted)
		}
	}
}

func TestCreateCarRejectsTooManyImagesBeforeSubmitting(t *testing.T) {
	requests := 0
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	form := CarForm{BrandName: "Toyota", Model: "Hilux", Year: 2022, Price: 30000}
	for i := 0; i < MaxImages+1; i++ {
		form.Images = append(form.Images, ImageFile{Filename: "a.jpg", Content: strings.NewReader("img")})
	}

	_, err := c.CreateCar(context.Background(), form)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("CreateCar() error = %v, want *ValidationError", err)
	}
	if requests != 0 {
		t.Errorf("request reached the server despite client-side limit")
	}
}

func TestCreateCarMultipart(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			t.Fatalf("server could not parse form: %v", err)
		}
		if got := r.FormValue("model"); got != "Hilux" {
			t.Errorf("model = %q", got)
		}
		if got := len(r.MultipartForm.File["images"]); got != 2 {
			t.Errorf("images = %d, want 2", got)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"brand_id":1,"brand_name":"Toyota","model":"Hilux","year":2022,"price":30000,"images":[]}`))
	}))
	defer server.Close()
	c.Session.SetToken("tok-123")

	form := CarForm{
		BrandName: "Toyota",
		Model:     "Hilux",
		Year:      2022,
		Price:     30000,
		Images: []ImageFile{
			{Filename: "front.jpg", Content: strings.NewReader("front")},
			{Filename: "rear.jpg", Content: strings.NewReader("rear")},
		},
	}
	car, err := c.CreateCar(context.Background(), form)
	if err != nil {
		t.Fatalf("CreateCar() error = %v", err)
	}
	if car.ID != 7 {
		t.Errorf("car id = %d, want 7", car.ID)
	}
}

func TestDeleteCarSurfacesServerMessage(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Error deleting car"}`))
	}))
	defer server.Close()

	err := c.DeleteCar(context.Background(), 5)
	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("DeleteCar() error = %v, want *OpError", err)
	}
	if opErr.Message != "Error deleting car" {
		t.Errorf("message = %q", opErr.Message)
	}
}
