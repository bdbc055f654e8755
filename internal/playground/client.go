// Package playground is the HTTP client for the playground to-do API.
package playground

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"todo-sync/internal/config"
	"todo-sync/internal/domain"
	"todo-sync/internal/errors"
)

// maxBodySize caps how much of a response body is read
const maxBodySize = 1 << 20

// Client defines the remote operations the synchronizer relies on
type Client interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListTasks(ctx context.Context, user string) ([]domain.Task, error)
	ReplaceTasks(ctx context.Context, user string, tasks []domain.Task) error
	DeleteTask(ctx context.Context, id int64) error
	CreateTask(ctx context.Context, user, label string) (domain.Task, error)
}

// HTTPClient implements Client over net/http
type HTTPClient struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	schemas *Schemas
	logger  *log.Logger
}

// New creates a client for the configured API
func New(cfg config.APIConfig, logger *log.Logger) (*HTTPClient, error) {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewWithHTTPClient creates a client that sends requests through hc
func NewWithHTTPClient(cfg config.APIConfig, hc *http.Client, logger *log.Logger) (*HTTPClient, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, errors.NewInvalidInputError("base_url", cfg.BaseURL, "must be an absolute URL")
	}
	schemas, err := LoadSchemas()
	if err != nil {
		return nil, err
	}
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http:    hc,
		schemas: schemas,
		logger:  logger,
	}, nil
}

// BaseURL returns the API root requests are sent to
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// ListUsers fetches every known user
func (c *HTTPClient) ListUsers(ctx context.Context) ([]domain.User, error) {
	var resp usersResponse
	if err := c.do(ctx, http.MethodGet, "/users", nil, SchemaUsers, &resp); err != nil {
		return nil, err
	}
	return toDomainUsers(resp.Users), nil
}

// ListTasks fetches the task list of a user
func (c *HTTPClient) ListTasks(ctx context.Context, user string) ([]domain.Task, error) {
	var resp userTasksResponse
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(user), nil, SchemaUserTasks, &resp); err != nil {
		return nil, err
	}
	return toDomainTasks(resp.Todos), nil
}

// ReplaceTasks overwrites the whole task list of a user. The response body must be JSON
// but is otherwise discarded.
func (c *HTTPClient) ReplaceTasks(ctx context.Context, user string, tasks []domain.Task) error {
	body := replaceTasksRequest{Todos: fromDomainTasks(tasks)}
	var discard json.RawMessage
	return c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(user), body, "", &discard)
}

// DeleteTask deletes one task by id
func (c *HTTPClient) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+strconv.FormatInt(id, 10), nil, "", nil)
}

// CreateTask adds a new, not done task for a user and returns it as the server stored it
func (c *HTTPClient) CreateTask(ctx context.Context, user, label string) (domain.Task, error) {
	body := createTaskRequest{Label: label, IsDone: false}
	var resp taskDTO
	if err := c.do(ctx, http.MethodPost, "/todos/"+url.PathEscape(user), body, SchemaTask, &resp); err != nil {
		return domain.Task{}, err
	}
	return toDomainTask(resp), nil
}

// do sends one request. When out is non-nil the response is validated against schema and decoded into it.
func (c *HTTPClient) do(ctx context.Context, method, path string, in interface{}, schema string, out interface{}) error {
	op := method + " " + path

	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to encode request: "+op)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.NewTransportError(op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "err", err)
		return c.transportError(ctx, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return c.transportError(ctx, op, err)
	}
	c.logger.Debug("request", "op", op, "status", resp.StatusCode, "elapsed", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewHTTPStatusError(op, resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if schema != "" {
		if err := c.schemas.Validate(schema, body); err != nil {
			return errors.NewDecodeError(op, err)
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewDecodeError(op, err)
	}
	return nil
}

func (c *HTTPClient) transportError(ctx context.Context, op string, err error) error {
	var urlErr *url.Error
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) || (stderrors.As(err, &urlErr) && urlErr.Timeout()) {
		return errors.NewTimeoutError(op, c.timeout.String())
	}
	return errors.NewTransportError(op, unwrapURLError(err))
}

// unwrapURLError drops the method and URL net/http prefixes onto transport errors
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
