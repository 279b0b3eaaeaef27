package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/common"
	"github.com/dmitrijs2005/catalog/internal/logging"
	"github.com/google/uuid"
)

const DefaultTimeout = 15 * time.Second

// ImageSource opens the bytes behind an image URI for upload.
type ImageSource interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// localFiles is the fallback ImageSource: plain paths and file:// URIs.
type localFiles struct{}

func (localFiles) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	return os.Open(strings.TrimPrefix(uri, "file://"))
}

// HTTPClient talks to the catalog REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	images  ImageSource
	log     logging.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds every request. Zero or negative keeps DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.timeout = d
		}
	}
}

func WithImageSource(src ImageSource) Option {
	return func(h *HTTPClient) { h.images = src }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("invalid server base URL %q", baseURL)
	}

	c := &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: DefaultTimeout,
		images:  localFiles{},
		log:     logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Ping succeeds when the server answers at all with a non-5xx status.
func (c *HTTPClient) Ping(ctx context.Context) error {
	err := c.send(ctx, request{method: http.MethodGet, path: "/products/?limit=1", fallback: "server unavailable"}, nil)
	var re *RequestError
	if errors.As(err, &re) {
		if re.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %s", ErrUnavailable, re.Message)
		}
		return nil
	}
	if errors.Is(err, ErrDecode) {
		return nil
	}
	return err
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.send(ctx, request{method: http.MethodGet, path: "/users", fallback: "failed to load users"}, &users)
	return users, err
}

func (c *HTTPClient) GetUser(ctx context.Context, id int) (models.User, error) {
	var u models.User
	err := c.send(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/users/%d", id), fallback: "failed to load user"}, &u)
	return u, err
}

func (c *HTTPClient) CreateUser(ctx context.Context, fields models.UserFields, image *models.Image) (models.User, error) {
	var u models.User
	req := request{
		method:   http.MethodPost,
		path:     "/users/",
		form:     fields.Form(),
		image:    image,
		fallback: "failed to create user",
	}
	err := c.send(ctx, req, &u)
	return u, err
}

// UpdateUser sends only the non-empty fields; the server leaves the rest as is.
func (c *HTTPClient) UpdateUser(ctx context.Context, id int, fields models.UserFields, image *models.Image) (models.User, error) {
	var u models.User
	req := request{
		method:   http.MethodPut,
		path:     fmt.Sprintf("/users/%d", id),
		form:     fields.Form(),
		image:    image,
		fallback: "failed to update user",
	}
	err := c.send(ctx, req, &u)
	return u, err
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var ps []models.Product
	err := c.send(ctx, request{method: http.MethodGet, path: "/products/", fallback: "failed to load products"}, &ps)
	return ps, err
}

func (c *HTTPClient) GetProduct(ctx context.Context, id int) (models.Product, error) {
	var p models.Product
	err := c.send(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/products/%d", id), fallback: "failed to load product"}, &p)
	return p, err
}

func (c *HTTPClient) CreateProduct(ctx context.Context, userID int, fields models.ProductFields, image *models.Image) (models.Product, error) {
	form, err := fields.Form()
	if err != nil {
		return models.Product{}, err
	}

	var p models.Product
	req := request{
		method:   http.MethodPost,
		path:     fmt.Sprintf("/users/%d/products/", userID),
		form:     form,
		image:    image,
		fallback: "failed to create product",
	}
	err = c.send(ctx, req, &p)
	return p, err
}

func (c *HTTPClient) ListNotifications(ctx context.Context, userID int) ([]models.Notification, error) {
	var ns []models.Notification
	req := request{method: http.MethodGet, path: fmt.Sprintf("/users/%d/notifications/", userID), fallback: "failed to load notifications"}
	err := c.send(ctx, req, &ns)
	return ns, err
}

// MarkAllNotificationsRead returns the notifications the server flipped to read.
func (c *HTTPClient) MarkAllNotificationsRead(ctx context.Context, userID int) ([]models.Notification, error) {
	var ns []models.Notification
	req := request{method: http.MethodPut, path: fmt.Sprintf("/users/%d/notifications/read_all", userID), fallback: "failed to mark notifications as read"}
	err := c.send(ctx, req, &ns)
	return ns, err
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, userID, notificationID int) (models.Notification, error) {
	var n models.Notification
	req := request{
		method:   http.MethodPut,
		path:     fmt.Sprintf("/users/%d/notifications/%d", userID, notificationID),
		json:     map[string]bool{"is_read": true},
		fallback: "failed to mark notification as read",
	}
	err := c.send(ctx, req, &n)
	return n, err
}

func (c *HTTPClient) DeleteNotification(ctx context.Context, userID, notificationID int) error {
	req := request{
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/users/%d/notifications/%d", userID, notificationID),
		fallback: "failed to delete notification",
	}
	return c.send(ctx, req, nil)
}

type request struct {
	method string
	path   string

	// form, when non-nil, makes the body multipart/form-data; image is
	// attached as the "image" file part.
	form  map[string]string
	image *models.Image
	json  any

	// fallback is the message for an error body that is JSON without "detail".
	fallback string
}

func (c *HTTPClient) send(ctx context.Context, r request, out any) error {
	// The timeout covers reading the image as well as the round trip.
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, contentType, err := c.encode(reqCtx, r)
	if err != nil {
		if reqCtx.Err() != nil {
			return c.mapError(ctx, err)
		}
		return err
	}

	req, err := http.NewRequestWithContext(reqCtx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "api request failed", "method", r.method, "path", r.path, "request_id", requestID, "error", err)
		return c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api request",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.mapError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp.StatusCode, data, r.fallback)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDecode, r.method, r.path, err)
	}
	return nil
}

func (c *HTTPClient) encode(ctx context.Context, r request) (io.Reader, string, error) {
	switch {
	case r.form != nil || r.image != nil:
		return c.multipartBody(ctx, r.form, r.image)
	case r.json != nil:
		b, err := json.Marshal(r.json)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(b), "application/json", nil
	default:
		return nil, "", nil
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (c *HTTPClient) multipartBody(ctx context.Context, form map[string]string, image *models.Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, form[k]); err != nil {
			return nil, "", err
		}
	}

	if image != nil && image.URI != "" {
		src, err := c.images.Open(ctx, image.URI)
		if err != nil {
			return nil, "", fmt.Errorf("open image %q: %w", image.URI, err)
		}
		defer src.Close()

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(image.FileName())))
		h.Set("Content-Type", image.ContentType())

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, src); err != nil {
			return nil, "", fmt.Errorf("read image %q: %w", image.URI, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// mapError turns transport failures, timeouts included, into ErrUnavailable.
// A cancelled caller context is returned unchanged.
func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func newRequestError(status int, body []byte, fallback string) *RequestError {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		if detail, ok := payload["detail"].(string); ok && detail != "" {
			return &RequestError{StatusCode: status, Message: detail}
		}
		return &RequestError{StatusCode: status, Message: fallback}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return &RequestError{StatusCode: status, Message: msg}
}
