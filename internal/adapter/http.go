package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/hackmd-tools/hackmd-cli/internal/config"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
	"github.com/hackmd-tools/hackmd-cli/models"
)

// headerIdempotencyKey carries the client-generated key that makes retried
// mutations safe for the server to deduplicate.
const headerIdempotencyKey = "X-Idempotency-Key"

type httpAPIClient struct {
	client  *resty.Client
	retry   retryPolicy
	breaker *gobreaker.CircuitBreaker[*resty.Response]

	token string

	logger *logger.Logger
}

// NewHTTPAPIClient constructs an HTTP/REST implementation of [APIClient].
// It normalises and validates the base URL from apiCfg.BaseURL, configures
// the underlying resty client with the resolved base URL and per-attempt
// timeout, and installs the retry policy and circuit breaker derived from
// retryCfg.
//
// Returns an error if apiCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPAPIClient(apiCfg config.ClientAPI, retryCfg config.ClientRetry, log *logger.Logger) (APIClient, error) {
	baseURL, err := normalizeBaseURL(apiCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(apiCfg.RequestTimeout)

	breaker := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:    "hackmd-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// a user interrupt says nothing about server health
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &httpAPIClient{
		client:  client,
		retry:   newRetryPolicy(retryCfg, log),
		breaker: breaker,
		logger:  log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [APIClient]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpAPIClient) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [APIClient]. It returns the bearer token currently held
// by the client, or an empty string if none has been set.
func (h *httpAPIClient) Token() string {
	return h.token
}

// VerifyToken implements [APIClient]. It GETs the identity endpoint with the
// candidate token and returns the decoded account record. The stored token
// is left untouched, so a failed verification cannot disturb an existing
// session.
func (h *httpAPIClient) VerifyToken(ctx context.Context, token string) (models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.User{}, ErrNoToken
	}

	resp, err := h.do(ctx, token, http.MethodGet, "/me", nil)
	if err != nil {
		return models.User{}, fmt.Errorf("verify token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("decode identity response: %w", err)
	}

	return user, nil
}

// Identity implements [APIClient]. It GETs /me with the stored token and
// returns the decoded account record.
func (h *httpAPIClient) Identity(ctx context.Context) (models.User, error) {
	resp, err := h.doAuthed(ctx, http.MethodGet, "/me", nil)
	if err != nil {
		return models.User{}, fmt.Errorf("identity request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("decode identity response: %w", err)
	}

	return user, nil
}

// ListNotes implements [APIClient]. It GETs /notes and decodes the response
// into a slice of [models.Note]. Requires a stored token.
func (h *httpAPIClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	resp, err := h.doAuthed(ctx, http.MethodGet, "/notes", nil)
	if err != nil {
		return nil, fmt.Errorf("list notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var notes []models.Note
	if err = json.Unmarshal(resp.Body(), &notes); err != nil {
		return nil, fmt.Errorf("decode notes response: %w", err)
	}

	return notes, nil
}

// GetNote implements [APIClient]. It GETs /notes/{id} and decodes the full
// note record, content included. Returns [ErrNotFound] (wrapped) on 404.
func (h *httpAPIClient) GetNote(ctx context.Context, noteID string) (models.Note, error) {
	resp, err := h.doAuthed(ctx, http.MethodGet, "/notes/"+url.PathEscape(noteID), nil)
	if err != nil {
		return models.Note{}, fmt.Errorf("get note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var note models.Note
	if err = json.Unmarshal(resp.Body(), &note); err != nil {
		return models.Note{}, fmt.Errorf("decode note response: %w", err)
	}

	return note, nil
}

// CreateNote implements [APIClient]. It POSTs the draft to /notes with a
// client-generated idempotency key and decodes the created note.
func (h *httpAPIClient) CreateNote(ctx context.Context, draft models.NoteDraft) (models.Note, error) {
	resp, err := h.doAuthed(ctx, http.MethodPost, "/notes", draft)
	if err != nil {
		return models.Note{}, fmt.Errorf("create note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var note models.Note
	if err = json.Unmarshal(resp.Body(), &note); err != nil {
		return models.Note{}, fmt.Errorf("decode note response: %w", err)
	}

	return note, nil
}

// UpdateNote implements [APIClient]. It PATCHes the non-zero draft fields to
// /notes/{id}. Returns [ErrNotFound] (wrapped) on 404.
func (h *httpAPIClient) UpdateNote(ctx context.Context, noteID string, draft models.NoteDraft) error {
	resp, err := h.doAuthed(ctx, http.MethodPatch, "/notes/"+url.PathEscape(noteID), draft)
	if err != nil {
		return fmt.Errorf("update note request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteNote implements [APIClient]. It sends DELETE /notes/{id}. Returns
// [ErrNotFound] (wrapped) on 404.
func (h *httpAPIClient) DeleteNote(ctx context.Context, noteID string) error {
	resp, err := h.doAuthed(ctx, http.MethodDelete, "/notes/"+url.PathEscape(noteID), nil)
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}

	return mapHTTPError(resp)
}

// ListTeams implements [APIClient]. It GETs /teams and decodes the response
// into a slice of [models.Team].
func (h *httpAPIClient) ListTeams(ctx context.Context) ([]models.Team, error) {
	resp, err := h.doAuthed(ctx, http.MethodGet, "/teams", nil)
	if err != nil {
		return nil, fmt.Errorf("list teams request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var teams []models.Team
	if err = json.Unmarshal(resp.Body(), &teams); err != nil {
		return nil, fmt.Errorf("decode teams response: %w", err)
	}

	return teams, nil
}

// ListTeamNotes implements [APIClient]. It GETs /teams/{path}/notes and
// decodes the response into a slice of [models.Note].
func (h *httpAPIClient) ListTeamNotes(ctx context.Context, teamPath string) ([]models.Note, error) {
	resp, err := h.doAuthed(ctx, http.MethodGet, "/teams/"+url.PathEscape(teamPath)+"/notes", nil)
	if err != nil {
		return nil, fmt.Errorf("list team notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var notes []models.Note
	if err = json.Unmarshal(resp.Body(), &notes); err != nil {
		return nil, fmt.Errorf("decode team notes response: %w", err)
	}

	return notes, nil
}

// doAuthed runs a request with the stored token, failing locally with
// [ErrNoToken] before any network traffic when none is set.
func (h *httpAPIClient) doAuthed(ctx context.Context, method, path string, body any) (*resty.Response, error) {
	if h.token == "" {
		return nil, ErrNoToken
	}
	return h.do(ctx, h.token, method, path, body)
}

// do executes one logical request through the retry state machine and the
// circuit breaker. Mutating methods are stamped with a single idempotency
// key shared by every attempt, which is what makes them safe to retry.
func (h *httpAPIClient) do(ctx context.Context, token, method, path string, body any) (*resty.Response, error) {
	var idempotencyKey string
	if method != http.MethodGet {
		idempotencyKey = uuid.NewString()
	}

	attempt := func() (*resty.Response, error) {
		req := h.client.R().
			SetContext(ctx).
			SetHeader("Authorization", "Bearer "+token).
			SetHeader("Accept", "application/json")
		if body != nil {
			req.SetHeader("Content-Type", "application/json").SetBody(body)
		}
		if idempotencyKey != "" {
			req.SetHeader(headerIdempotencyKey, idempotencyKey)
		}
		return req.Execute(method, path)
	}

	resp, err := h.breaker.Execute(func() (*resty.Response, error) {
		resp, err := h.retry.run(ctx, attempt)
		if err != nil {
			return nil, err
		}
		// a response that is still retryable here has outlived the retry
		// budget; count it against the breaker
		if h.retry.shouldRetry(resp, nil) {
			return resp, mapHTTPError(resp)
		}
		return resp, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return nil, fmt.Errorf("%w: circuit breaker open", ErrTransient)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// the caller's context expired or was cancelled; a plain
			// per-attempt timeout is transient like any other
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		case errors.Is(err, ErrTransient):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		}
	}

	return resp, nil
}
