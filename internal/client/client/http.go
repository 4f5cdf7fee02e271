package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/logging"
	"github.com/dmitrijs2005/fittracker/internal/observability"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 1 << 20
)

const (
	opLogin          = "login"
	opRegister       = "register"
	opSubmitActivity = "submit_activity"
	opFetchHistory   = "fetch_history"
	opFetchProfile   = "fetch_profile"
	opUpdateProfile  = "update_profile"
	opFetchGoal      = "fetch_goal"
	opSetGoal        = "set_goal"
)

// HTTPClient is the Client implementation over HTTP.
type HTTPClient struct {
	base    *url.URL
	http    *http.Client
	logger  logging.Logger
	metrics *observability.GatewayMetrics
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. The timeout passed to
// NewHTTPClient is not applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func WithMetrics(m *observability.GatewayMetrics) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

// NewHTTPClient builds a client for the API rooted at baseURL, e.g.
// "http://127.0.0.1:8080/api/".
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse base url: unsupported scheme %q", u.Scheme)
	}

	c := &HTTPClient{
		base:   u,
		http:   &http.Client{Timeout: timeout},
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Envelope[models.AuthData], error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	return call[models.AuthData](ctx, c, opLogin, http.MethodPost, "login.php", form)
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*models.Envelope[models.AuthData], error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("email", email)
	form.Set("password", password)
	return call[models.AuthData](ctx, c, opRegister, http.MethodPost, "register.php", form)
}

func (c *HTTPClient) SubmitActivity(ctx context.Context, r models.ActivityRecord) (*models.Envelope[models.ActivityCreated], error) {
	form := url.Values{}
	form.Set("userId", strconv.Itoa(r.UserID))
	form.Set("activity_type", r.Type.Wire())
	form.Set("duration", strconv.Itoa(r.DurationMin))
	form.Set("calories_burned", strconv.Itoa(r.Calories))
	form.Set("activity_date", r.Timestamp)
	if r.Latitude != nil {
		form.Set("latitude", formatFloat(*r.Latitude))
	}
	if r.Longitude != nil {
		form.Set("longitude", formatFloat(*r.Longitude))
	}
	if r.LocationName != nil {
		form.Set("location_name", *r.LocationName)
	}
	return call[models.ActivityCreated](ctx, c, opSubmitActivity, http.MethodPost, "activities.php", form)
}

func (c *HTTPClient) FetchHistory(ctx context.Context, userID int, f models.HistoryFilter) (*models.Envelope[models.ActivityList], error) {
	q := url.Values{}
	q.Set("userId", strconv.Itoa(userID))
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	return call[models.ActivityList](ctx, c, opFetchHistory, http.MethodGet, "activities.php", q)
}

func (c *HTTPClient) FetchProfile(ctx context.Context, userID int) (*models.Envelope[models.ProfileData], error) {
	q := url.Values{}
	q.Set("user_id", strconv.Itoa(userID))
	return call[models.ProfileData](ctx, c, opFetchProfile, http.MethodGet, "profile.php", q)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, userID int, u models.ProfileUpdate) (*models.Envelope[models.ProfileData], error) {
	form := url.Values{}
	form.Set("user_id", strconv.Itoa(userID))
	if u.Height != nil {
		form.Set("height", formatFloat(*u.Height))
	}
	if u.Weight != nil {
		form.Set("current_weight", formatFloat(*u.Weight))
	}
	if u.DateOfBirth != nil {
		form.Set("date_of_birth", *u.DateOfBirth)
	}
	if u.Gender != nil {
		form.Set("gender", *u.Gender)
	}
	if u.Phone != nil {
		form.Set("phone", *u.Phone)
	}
	return call[models.ProfileData](ctx, c, opUpdateProfile, http.MethodPost, "profile.php", form)
}

func (c *HTTPClient) FetchGoal(ctx context.Context, userID int) (*models.Envelope[models.GoalState], error) {
	q := url.Values{}
	q.Set("user_id", strconv.Itoa(userID))
	return call[models.GoalState](ctx, c, opFetchGoal, http.MethodGet, "goals.php", q)
}

func (c *HTTPClient) SetGoal(ctx context.Context, userID int, target int) (*models.Envelope[models.GoalState], error) {
	form := url.Values{}
	form.Set("user_id", strconv.Itoa(userID))
	form.Set("target_calories", strconv.Itoa(target))
	return call[models.GoalState](ctx, c, opSetGoal, http.MethodPost, "goals.php", form)
}

// call performs one request and decodes the envelope. GET sends params as
// the query string, POST as a form body.
func call[T any](ctx context.Context, c *HTTPClient, op, method, path string, params url.Values) (*models.Envelope[T], error) {
	requestID := uuid.NewString()
	started := time.Now()

	env, status, err := roundTrip[T](ctx, c, method, path, params, requestID)

	outcome := observability.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, ErrUnavailable):
		outcome = observability.OutcomeUnavailable
	case errors.Is(err, ErrRejected):
		outcome = observability.OutcomeRejected
	case errors.Is(err, ErrDecode):
		outcome = observability.OutcomeDecodeError
	case errors.Is(err, context.Canceled):
		outcome = observability.OutcomeCanceled
	default:
		outcome = observability.OutcomeFailed
	}
	c.metrics.Observe(op, outcome, time.Since(started))

	if err != nil {
		c.logger.Warn(ctx, "backend request failed",
			"operation", op,
			"request_id", requestID,
			"status", status,
			"error", err,
		)
		return nil, err
	}

	c.logger.Debug(ctx, "backend request done",
		"operation", op,
		"request_id", requestID,
		"status", status,
		"success", env.Success,
	)
	return env, nil
}

func roundTrip[T any](ctx context.Context, c *HTTPClient, method, path string, params url.Values, requestID string) (*models.Envelope[T], int, error) {
	u := c.base.ResolveReference(&url.URL{Path: path})

	var body io.Reader
	if method == http.MethodGet {
		u.RawQuery = params.Encode()
	} else {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	var env models.Envelope[T]
	decodeErr := sonic.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rejected := &RejectedError{Status: resp.StatusCode}
		if decodeErr == nil {
			rejected.Message = env.Text("")
		}
		return nil, resp.StatusCode, rejected
	}

	if decodeErr != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %v", ErrDecode, decodeErr)
	}
	return &env, resp.StatusCode, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
