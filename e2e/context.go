package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "skilloncall"
	tokenAudience = "skilloncall-api"
)

// TestContext holds the state shared by the steps of one scenario.
type TestContext struct {
	BaseURL    string
	SigningKey []byte
	HTTPClient *http.Client

	users        map[string]uuid.UUID
	currentToken string
	lastResponse *http.Response
	lastBody     []byte
}

// NewTestContext reads E2E_BASE_URL and E2E_JWT_SIGNING_KEY.
func NewTestContext() *TestContext {
	baseURL := os.Getenv("E2E_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	key := os.Getenv("E2E_JWT_SIGNING_KEY")
	if key == "" {
		key = "dev-secret-key-change-in-production"
	}
	return &TestContext{
		BaseURL:    baseURL,
		SigningKey: []byte(key),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		users:      make(map[string]uuid.UUID),
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.users = make(map[string]uuid.UUID)
	tc.currentToken = ""
	tc.lastResponse = nil
	tc.lastBody = nil
}

// UserID returns a stable id for a scenario alias, allocating one on first use.
func (tc *TestContext) UserID(alias string) string {
	userID, ok := tc.users[alias]
	if !ok {
		userID = uuid.New()
		tc.users[alias] = userID
	}
	return userID.String()
}

// SignIn mints an access token the server accepts and uses it for later requests.
func (tc *TestContext) SignIn(alias, tier string, admin bool) error {
	claims := jwt.MapClaims{
		"user_id": tc.UserID(alias),
		"tier":    tier,
		"admin":   admin,
		"iss":     tokenIssuer,
		"aud":     []string{tokenAudience},
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(15 * time.Minute).Unix(),
		"jti":     uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.SigningKey)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	tc.currentToken = token
	return nil
}

func (tc *TestContext) SignOut() {
	tc.currentToken = ""
}

func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

func (tc *TestContext) POST(path string, body any) error {
	return tc.do(http.MethodPost, path, body)
}

func (tc *TestContext) PUT(path string, body any) error {
	return tc.do(http.MethodPut, path, body)
}

func (tc *TestContext) do(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, tc.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.currentToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.currentToken)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	tc.lastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	tc.lastResponse = resp
	return nil
}

func (tc *TestContext) GetLastResponseStatus() int {
	if tc.lastResponse == nil {
		return 0
	}
	return tc.lastResponse.StatusCode
}

func (tc *TestContext) GetLastResponseHeader(name string) string {
	if tc.lastResponse == nil {
		return ""
	}
	return tc.lastResponse.Header.Get(name)
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

// GetResponseField reads a top-level or dotted field ("contact.email") of the last JSON body.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var body map[string]any
	if err := json.Unmarshal(tc.lastBody, &body); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	return lookup(body, field)
}
