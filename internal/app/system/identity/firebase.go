// internal/app/system/identity/firebase.go
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DefaultIdentityToolkitURL is the Identity Toolkit REST root.
const DefaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com"

var adminScopes = []string{
	"https://www.googleapis.com/auth/identitytoolkit",
	"https://www.googleapis.com/auth/cloud-platform",
}

// Firebase talks to Firebase Authentication over the Identity Toolkit REST
// API. Sign-in uses the web API key; account management uses a service
// account and is unavailable when no credentials were given.
type Firebase struct {
	APIKey    string
	ProjectID string
	BaseURL   string
	HTTP      *http.Client // sign-in
	Admin     *http.Client // OAuth2-authorized; nil disables account management
}

// NewFirebase builds the provider. credentialsJSON is a service account key
// file; it may be empty for sign-in-only deployments.
func NewFirebase(ctx context.Context, apiKey, projectID string, credentialsJSON []byte) (*Firebase, error) {
	if apiKey == "" || projectID == "" {
		return nil, fmt.Errorf("identity: firebase api key and project id are required")
	}
	f := &Firebase{
		APIKey:    apiKey,
		ProjectID: projectID,
		BaseURL:   DefaultIdentityToolkitURL,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
	if len(credentialsJSON) > 0 {
		creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, adminScopes...)
		if err != nil {
			return nil, fmt.Errorf("identity: firebase credentials: %w", err)
		}
		admin := oauth2.NewClient(ctx, creds.TokenSource)
		admin.Timeout = 15 * time.Second
		f.Admin = admin
	}
	return f, nil
}

func (f *Firebase) Name() string { return "firebase" }

type signInResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

func (f *Firebase) SignIn(ctx context.Context, email, password string) (Account, error) {
	u := f.base() + "/v1/accounts:signInWithPassword?key=" + url.QueryEscape(f.APIKey)
	var out signInResponse
	err := f.post(ctx, f.HTTP, u, map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &out)
	if err != nil {
		return Account{}, err
	}
	return Account{UID: out.LocalID, Email: out.Email, DisplayName: out.DisplayName, IDToken: out.IDToken}, nil
}

func (f *Firebase) CreateAccount(ctx context.Context, email, password, displayName string) (Account, error) {
	if f.Admin == nil {
		return Account{}, ErrNotSupported
	}
	if len(password) < MinPasswordLength {
		return Account{}, ErrWeakPassword
	}
	u := fmt.Sprintf("%s/v1/projects/%s/accounts", f.base(), url.PathEscape(f.ProjectID))
	var out signInResponse
	err := f.post(ctx, f.Admin, u, map[string]any{
		"email":       email,
		"password":    password,
		"displayName": displayName,
	}, &out)
	if err != nil {
		return Account{}, err
	}
	return Account{UID: out.LocalID, Email: email, DisplayName: displayName}, nil
}

func (f *Firebase) DeleteAccount(ctx context.Context, uid string) error {
	if f.Admin == nil {
		return ErrNotSupported
	}
	u := fmt.Sprintf("%s/v1/projects/%s/accounts:delete", f.base(), url.PathEscape(f.ProjectID))
	return f.post(ctx, f.Admin, u, map[string]any{"localId": uid}, nil)
}

func (f *Firebase) base() string {
	if f.BaseURL == "" {
		return DefaultIdentityToolkitURL
	}
	return strings.TrimRight(f.BaseURL, "/")
}

func (f *Firebase) post(ctx context.Context, client *http.Client, endpoint string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("identity: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("identity: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= 300 {
		return mapFirebaseError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("identity: decode response: %w", err)
	}
	return nil
}

// mapFirebaseError turns an Identity Toolkit error body into one of the
// package's sentinel errors where one applies.
func mapFirebaseError(status int, body []byte) error {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &e)
	// Messages look like "WEAK_PASSWORD : Password should be at least 6 characters".
	code, _, _ := strings.Cut(e.Error.Message, " ")

	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL":
		return ErrInvalidCredentials
	case "USER_DISABLED":
		return ErrAccountDisabled
	case "EMAIL_EXISTS", "DUPLICATE_EMAIL":
		return ErrEmailExists
	case "USER_NOT_FOUND":
		return ErrAccountNotFound
	case "WEAK_PASSWORD":
		return ErrWeakPassword
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return ErrTooManyAttempts
	}
	if e.Error.Message == "" {
		return fmt.Errorf("identity: firebase returned %d", status)
	}
	return fmt.Errorf("identity: firebase returned %d: %s", status, e.Error.Message)
}
