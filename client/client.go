// Package client is the sole point of contact with the showcase backend. It
// owns the admin session token, attaches it to every request as a bearer
// credential, and translates each REST call into typed results or typed
// errors carrying the server's message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Brandonkhumalo/harare-wheels-showcase/models"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Session *Session
}

// New creates a client against baseURL (e.g. "http://localhost:5001/api")
// reusing a restored session.
func New(baseURL string, session *Session) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Session: session,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}) (*http.Response, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, contentType, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if out != nil && resp.StatusCode < 300 {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, fmt.Errorf("unreadable response: %w", err)
		}
		return resp, nil
	}
	return resp, nil
}

// serverMessage pulls the message out of an {"error": "..."} body, falling
// back when the body is missing or unparsable.
func serverMessage(resp *http.Response, fallback string) string {
	defer resp.Body.Close()
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return fallback
}

// Login authenticates and stores the returned bearer token in the session.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	payload := models.AdminLogin{Username: username, Password: password}

	var result models.LoginResponse
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/login", payload, &result)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{Message: serverMessage(resp, "Login failed")}
	}

	c.Session.SetToken(result.Token)
	return &result, nil
}

// Logout notifies the server and drops the local token. The token is cleared
// even when the server call fails: a network error must never leave a stale
// credential behind.
func (c *Client) Logout(ctx context.Context) error {
	defer c.Session.ClearToken()

	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// VerifyToken reports whether the held token still names a live admin
// session. It never returns an error: no token, a failed request and a
// rejected token all read as false.
func (c *Client) VerifyToken(ctx context.Context) bool {
	if !c.Session.Authenticated() {
		return false
	}
	resp, err := c.doJSON(ctx, http.MethodGet, "/auth/verify", nil, nil)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) GetFilters(ctx context.Context) (*models.Filters, error) {
	var filters models.Filters
	resp, err := c.doJSON(ctx, http.MethodGet, "/filters", nil, &filters)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &OpError{Message: serverMessage(resp, "Failed to load filters")}
	}
	return &filters, nil
}

func (c *Client) GetBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	resp, err := c.doJSON(ctx, http.MethodGet, "/brands", nil, &brands)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &OpError{Message: serverMessage(resp, "Failed to load brands")}
	}
	return brands, nil
}

func (c *Client) CreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	payload := map[string]string{"name": name}

	var brand models.Brand
	resp, err := c.doJSON(ctx, http.MethodPost, "/brands", payload, &brand)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, &ValidationError{Message: serverMessage(resp, "Failed to create brand")}
	}
	return &brand, nil
}

// GetCars lists the catalog, optionally narrowed server-side. Empty query
// fields are not sent; result ordering is owned by the backend.
func (c *Client) GetCars(ctx context.Context, query *models.CarQuery) ([]models.Car, error) {
	params := url.Values{}
	if query != nil {
		if query.BrandID != nil {
			params.Set("brand_id", strconv.Itoa(*query.BrandID))
		}
		if query.BodyType != "" {
			params.Set("body_type", query.BodyType)
		}
		if query.FuelType != "" {
			params.Set("fuel_type", query.FuelType)
		}
		if query.Transmission != "" {
			params.Set("transmission", query.Transmission)
		}
		if query.MinPrice != nil {
			params.Set("min_price", strconv.FormatFloat(*query.MinPrice, 'f', -1, 64))
		}
		if query.MaxPrice != nil {
			params.Set("max_price", strconv.FormatFloat(*query.MaxPrice, 'f', -1, 64))
		}
		if query.Featured != nil && *query.Featured {
			params.Set("featured", "true")
		}
	}

	path := "/cars"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var cars []models.Car
	resp, err := c.doJSON(ctx, http.MethodGet, path, nil, &cars)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &OpError{Message: serverMessage(resp, "Failed to load cars")}
	}
	return cars, nil
}

func (c *Client) GetCar(ctx context.Context, id int) (*models.Car, error) {
	var car models.Car
	resp, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/cars/%d", id), nil, &car)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &NotFoundError{Message: serverMessage(resp, "Car not found")}
	}
	return &car, nil
}

// ImageFile is one image attached to a car submission.
type ImageFile struct {
	Filename string
	Content  io.Reader
}

// CarForm carries a multipart car submission. Zero-valued fields are left
// out of the request, which makes the same form usable for partial updates.
type CarForm struct {
	BrandID      int
	BrandName    string
	Model        string
	Year         int
	Price        float64
	Mileage      *int
	FuelType     string
	Transmission string
	BodyType     string
	Color        string
	Engine       string
	Description  string
	Featured     *bool
	Images       []ImageFile
}

func (f *CarForm) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	fields := map[string]string{}
	if f.BrandID > 0 {
		fields["brand_id"] = strconv.Itoa(f.BrandID)
	}
	if f.BrandName != "" {
		fields["brand_name"] = f.BrandName
	}
	if f.Model != "" {
		fields["model"] = f.Model
	}
	if f.Year > 0 {
		fields["year"] = strconv.Itoa(f.Year)
	}
	if f.Price > 0 {
		fields["price"] = strconv.FormatFloat(f.Price, 'f', -1, 64)
	}
	if f.Mileage != nil {
		fields["mileage"] = strconv.Itoa(*f.Mileage)
	}
	if f.FuelType != "" {
		fields["fuel_type"] = f.FuelType
	}
	if f.Transmission != "" {
		fields["transmission"] = f.Transmission
	}
	if f.BodyType != "" {
		fields["body_type"] = f.BodyType
	}
	if f.Color != "" {
		fields["color"] = f.Color
	}
	if f.Engine != "" {
		fields["engine"] = f.Engine
	}
	if f.Description != "" {
		fields["description"] = f.Description
	}
	if f.Featured != nil {
		fields["featured"] = strconv.FormatBool(*f.Featured)
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	for _, image := range f.Images {
		part, err := writer.CreateFormFile("images", image.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, image.Content); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

func (c *Client) submitCar(ctx context.Context, method, path string, form CarForm, fallback string) (*models.Car, error) {
	// Enforced before any bytes leave the client, independent of the server.
	if len(form.Images) > MaxImages {
		return nil, &ValidationError{Message: fmt.Sprintf("a car can have at most %d images", MaxImages)}
	}

	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, method, path, contentType, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, &ValidationError{Message: serverMessage(resp, fallback)}
	}

	defer resp.Body.Close()
	var car models.Car
	if err := json.NewDecoder(resp.Body).Decode(&car); err != nil {
		return nil, fmt.Errorf("unreadable response: %w", err)
	}
	return &car, nil
}

// MaxImages is the most images accepted in one car submission.
const MaxImages = 8

func (c *Client) CreateCar(ctx context.Context, form CarForm) (*models.Car, error) {
	return c.submitCar(ctx, http.MethodPost, "/cars", form, "Failed to create car")
}

func (c *Client) UpdateCar(ctx context.Context, id int, form CarForm) (*models.Car, error) {
	return c.submitCar(ctx, http.MethodPut, fmt.Sprintf("/cars/%d", id), form, "Failed to update car")
}

func (c *Client) DeleteCar(ctx context.Context, id int) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/cars/%d", id), nil, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &OpError{Message: serverMessage(resp, "Failed to delete car")}
	}
	resp.Body.Close()
	return nil
}

func (c *Client) DeleteCarImage(ctx context.Context, carID, imageID int) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/cars/%d/images/%d", carID, imageID), nil, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &OpError{Message: serverMessage(resp, "Failed to delete image")}
	}
	resp.Body.Close()
	return nil
}

func (c *Client) SubmitContact(ctx context.Context, msg models.ContactMessage) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/contact", msg, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &ValidationError{Message: serverMessage(resp, "Failed to send message")}
	}
	resp.Body.Close()
	return nil
}
