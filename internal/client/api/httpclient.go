package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pocketfarm/pocketfarm-cli/internal/client/models"
	"github.com/pocketfarm/pocketfarm-cli/internal/common"
)

// HTTPClient talks JSON over HTTP to the PocketFarm backend. A cookie jar is
// attached so a server-set session cookie survives across calls.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient builds a client for the given base origin, e.g.
// "http://127.0.0.1:5000". The timeout bounds every individual request.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// httpError is the raw non-2xx outcome of do. Public methods map it to one
// of the typed errors before returning.
type httpError struct {
	code int
	body []byte
}

func (e *httpError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// errorMessage extracts the backend's {"error": "..."} message, if any.
func (e *httpError) errorMessage() string {
	var v struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(e.body, &v); err != nil {
		return ""
	}
	return v.Error
}

func (e *httpError) toServerError() *ServerError {
	return &ServerError{StatusCode: e.code, Message: e.errorMessage()}
}

// mapError converts a raw httpError into a ServerError and passes every
// other error through unchanged.
func (c *HTTPClient) mapError(err error) error {
	var he *httpError
	if errors.As(err, &he) {
		return he.toServerError()
	}
	return err
}

// do issues a single JSON request. A non-nil in is marshalled as the body;
// a non-nil out receives the decoded 2xx response. auth, when set, is sent
// verbatim in the Authorization header. Transport-level failures are wrapped
// in ErrUnavailable; non-2xx statuses come back as *httpError.
func (c *HTTPClient) do(ctx context.Context, method, path, auth string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if auth != "" {
		req.Header.Set(common.AuthorizationHeaderName, auth)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &httpError{code: resp.StatusCode, body: data}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func bearerToken(userID int) string {
	return "Bearer " + strconv.Itoa(userID)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/login", "", credentialsRequest{Email: email, Password: password}, &user)
	if err != nil {
		var he *httpError
		if errors.As(err, &he) {
			var v struct {
				Error  string `json:"error"`
				Email  string `json:"email"`
				UserID int    `json:"user_id"`
			}
			if jsonErr := json.Unmarshal(he.body, &v); jsonErr == nil && v.Error == "email not verified" {
				return nil, &EmailNotVerifiedError{Email: v.Email, UserID: v.UserID}
			}
			return nil, he.toServerError()
		}
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/signup", "", req, &user)
	if err != nil {
		var he *httpError
		if errors.As(err, &he) {
			if he.code == http.StatusConflict {
				return nil, ErrEmailExists
			}
			var v struct {
				PasswordErrors []string `json:"password_errors"`
			}
			if jsonErr := json.Unmarshal(he.body, &v); jsonErr == nil && len(v.PasswordErrors) > 0 {
				return nil, &PasswordPolicyError{PasswordErrors: v.PasswordErrors}
			}
			return nil, he.toServerError()
		}
		return nil, err
	}
	return &user, nil
}

type userIDRequest struct {
	UserID int `json:"user_id"`
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, userID int) error {
	return c.mapError(c.do(ctx, http.MethodPost, "/delete_account", "", userIDRequest{UserID: userID}, nil))
}

func (c *HTTPClient) GetUserCrops(ctx context.Context, userID int) ([]string, error) {
	var crops []string
	if err := c.do(ctx, http.MethodGet, "/get_user_crops", bearerToken(userID), nil, &crops); err != nil {
		return nil, c.mapError(err)
	}
	return crops, nil
}

type cropRequest struct {
	UserID   int    `json:"user_id"`
	CropName string `json:"crop_name"`
}

func (c *HTTPClient) AddToLibrary(ctx context.Context, userID int, cropName string) error {
	return c.mapError(c.do(ctx, http.MethodPost, "/add_to_library", "", cropRequest{UserID: userID, CropName: cropName}, nil))
}

func (c *HTTPClient) RemoveFromGarden(ctx context.Context, userID int, cropName string) error {
	return c.mapError(c.do(ctx, http.MethodPost, "/remove_from_garden", "", cropRequest{UserID: userID, CropName: cropName}, nil))
}

func (c *HTTPClient) CreateSchedule(ctx context.Context, userID int, cropName string) error {
	return c.mapError(c.do(ctx, http.MethodPost, "/user_schedule", "", cropRequest{UserID: userID, CropName: cropName}, nil))
}

// noScheduleMessage is how the backend reports a missing schedule on delete.
// The call still answers 200; the message is the only signal.
const noScheduleMessage = "No schedule found for this crop"

func (c *HTTPClient) DeleteSchedule(ctx context.Context, userID int, cropName string) error {
	path := fmt.Sprintf("/user_schedule/%d/%s", userID, url.PathEscape(cropName))

	var v struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, path, "", nil, &v); err != nil {
		return c.mapError(err)
	}
	if v.Message == noScheduleMessage {
		return fmt.Errorf("schedule for %q: %w", cropName, common.ErrorNotFound)
	}
	return nil
}

func (c *HTTPClient) Recommend(ctx context.Context, query models.RecommendationQuery) ([]models.Crop, error) {
	var crops []models.Crop
	if err := c.do(ctx, http.MethodPost, "/recommend", "", query, &crops); err != nil {
		return nil, c.mapError(err)
	}
	return crops, nil
}

func (c *HTTPClient) GetCrop(ctx context.Context, name string) (*models.Crop, error) {
	var crop models.Crop
	if err := c.do(ctx, http.MethodGet, "/crop/"+url.PathEscape(name), "", nil, &crop); err != nil {
		return nil, c.mapError(err)
	}
	return &crop, nil
}
