// Package client provides a Go client for the Thoughtwall API.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/thoughtwall/thoughtwall/internal/model"
)

// Client is a Thoughtwall API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
	UserID     string
	Username   string
}

// New creates a new Thoughtwall client.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Errors
var (
	ErrAlreadyRegistered = errors.New("already registered")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
)

type sessionResult struct {
	Success     bool   `json:"success"`
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	AccessToken string `json:"accessToken"`
	Error       string `json:"error"`
	Message     string `json:"message"`
}

// ThoughtPage is one page of a thought listing.
type ThoughtPage struct {
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	Results    []model.Thought `json:"results"`
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(username, email, password string) error {
	reqBody := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	resp, err := c.doRequest(http.MethodPost, "/users", reqBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return ErrAlreadyRegistered
	}
	if resp.StatusCode != http.StatusCreated {
		return responseError("register", resp)
	}

	var result sessionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	c.Token = result.AccessToken
	c.UserID = result.UserID
	c.Username = result.Username
	return nil
}

// Login exchanges credentials for a fresh token and stores it on the client.
func (c *Client) Login(email, password string) error {
	reqBody := map[string]string{"email": email, "password": password}
	resp, err := c.doRequest(http.MethodPost, "/sessions", reqBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return responseError("login", resp)
	}

	var result sessionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	c.Token = result.AccessToken
	c.UserID = result.UserID
	c.Username = result.Username
	return nil
}

// PostThought creates a new thought.
func (c *Client) PostThought(message, category string) (*model.Thought, error) {
	reqBody := map[string]string{"message": message}
	if category != "" {
		reqBody["category"] = category
	}
	resp, err := c.doRequest(http.MethodPost, "/thoughts", reqBody)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, responseError("post thought", resp)
	}

	var thought model.Thought
	if err := json.NewDecoder(resp.Body).Decode(&thought); err != nil {
		return nil, err
	}
	return &thought, nil
}

// GetThoughts fetches one page of thoughts.
func (c *Client) GetThoughts(category, sort string, page, limit int) (*ThoughtPage, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if sort != "" {
		q.Set("sort", sort)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/thoughts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("get thoughts", resp)
	}

	var result ThoughtPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetThought fetches a single thought.
func (c *Client) GetThought(id string) (*model.Thought, error) {
	resp, err := c.doRequest(http.MethodGet, "/thoughts/"+id, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, responseError("get thought", resp)
	}

	var thought model.Thought
	if err := json.NewDecoder(resp.Body).Decode(&thought); err != nil {
		return nil, err
	}
	return &thought, nil
}

// Like increments a thought's heart counter and returns the updated record.
func (c *Client) Like(id string) (*model.Thought, error) {
	resp, err := c.doRequest(http.MethodPost, "/thoughts/"+id+"/like", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, responseError("like", resp)
	}

	var thought model.Thought
	if err := json.NewDecoder(resp.Body).Decode(&thought); err != nil {
		return nil, err
	}
	return &thought, nil
}

// UpdateThought edits a thought you own. Nil fields are left unchanged.
func (c *Client) UpdateThought(id string, message, category *string) (*model.Thought, error) {
	reqBody := map[string]any{}
	if message != nil {
		reqBody["message"] = *message
	}
	if category != nil {
		reqBody["category"] = *category
	}

	resp, err := c.doRequest(http.MethodPatch, "/thoughts/"+id, reqBody)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusForbidden:
		return nil, ErrForbidden
	default:
		return nil, responseError("update thought", resp)
	}

	var thought model.Thought
	if err := json.NewDecoder(resp.Body).Decode(&thought); err != nil {
		return nil, err
	}
	return &thought, nil
}

// DeleteThought deletes a thought you own and returns the deleted record.
func (c *Client) DeleteThought(id string) (*model.Thought, error) {
	resp, err := c.doRequest(http.MethodDelete, "/thoughts/"+id, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusForbidden:
		return nil, ErrForbidden
	default:
		return nil, responseError("delete thought", resp)
	}

	var result struct {
		Deleted model.Thought `json:"deleted"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result.Deleted, nil
}

// GetCategories fetches the distinct category list.
func (c *Client) GetCategories() ([]string, error) {
	resp, err := c.doRequest(http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("get categories", resp)
	}

	var categories []string
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetStats fetches site statistics.
func (c *Client) GetStats() (*model.SiteStats, error) {
	resp, err := c.doRequest(http.MethodGet, "/stats", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("get stats", resp)
	}

	var stats model.SiteStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// DeleteMe deletes the authenticated account and all of its thoughts.
func (c *Client) DeleteMe() error {
	resp, err := c.doRequest(http.MethodDelete, "/users/me", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return responseError("delete account", resp)
	}
	c.Token = ""
	c.UserID = ""
	c.Username = ""
	return nil
}

// doRequest performs an HTTP request, attaching the token when present.
func (c *Client) doRequest(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return c.HTTPClient.Do(req)
}

func responseError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%s failed (%d): %s", op, resp.StatusCode, string(body))
}

// TestHelper provides utilities for creating authenticated clients in tests.
type TestHelper struct {
	BaseURL string
}

// NewTestHelper creates a new test helper for the given base URL.
func NewTestHelper(baseURL string) *TestHelper {
	return &TestHelper{BaseURL: baseURL}
}

// CreateAuthenticatedClient registers an account derived from name and
// returns an authenticated client. If the account already exists it logs
// in instead. This is a convenience method for tests.
func (h *TestHelper) CreateAuthenticatedClient(name string) (*Client, error) {
	c := New(h.BaseURL)
	email := name + "@example.com"
	password := name + "-password"

	err := c.Register(name, email, password)
	if errors.Is(err, ErrAlreadyRegistered) {
		err = c.Login(email, password)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetToken creates an account (if needed) and returns an access token.
// This is a convenience method for tests that need just the token string.
func (h *TestHelper) GetToken(name string) (string, error) {
	c, err := h.CreateAuthenticatedClient(name)
	if err != nil {
		return "", err
	}
	return c.Token, nil
}
