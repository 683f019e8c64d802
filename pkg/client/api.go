package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	apperrors "tabletime/pkg/errors"
	"tabletime/pkg/model"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// IsCode reports whether err is an APIError carrying code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

type Availability struct {
	Slots           []model.TimeOfDay `json:"slots"`
	CapacityPerSlot int               `json:"capacityPerSlot"`
}

type SearchParams struct {
	Email string
	Date  string
}

// TableTimeClient speaks the booking HTTP API and decodes its answers.
type TableTimeClient struct {
	httpClient *HttpClient
}

func NewTableTimeClient(baseURL string) *TableTimeClient {
	return &TableTimeClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *TableTimeClient) Health(ctx context.Context) (bool, error) {
	var body struct {
		OK bool `json:"ok"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/health", nil, nil, &body); err != nil {
		return false, err
	}
	return body.OK, nil
}

func (c *TableTimeClient) Restaurants(ctx context.Context, query string) ([]model.Restaurant, error) {
	path := "/api/restaurants"
	if query != "" {
		path += "?" + url.Values{"q": []string{query}}.Encode()
	}

	var restaurants []model.Restaurant
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (c *TableTimeClient) Availability(ctx context.Context, restaurant, date string) (*Availability, error) {
	q := url.Values{}
	q.Set("restaurant", restaurant)
	q.Set("date", date)

	var availability Availability
	if err := c.call(ctx, http.MethodGet, "/api/availability?"+q.Encode(), nil, nil, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}

// CreateBooking sends idempotencyKey as Idempotency-Key when it is set.
func (c *TableTimeClient) CreateBooking(ctx context.Context, req *model.BookingRequest, idempotencyKey string) (*model.Booking, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}

	var booking model.Booking
	if err := c.call(ctx, http.MethodPost, "/api/bookings", req, headers, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *TableTimeClient) SearchBookings(ctx context.Context, params SearchParams) ([]*model.Booking, error) {
	q := url.Values{}
	if params.Email != "" {
		q.Set("email", params.Email)
	}
	if params.Date != "" {
		q.Set("date", params.Date)
	}

	path := "/api/bookings"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var bookings []*model.Booking
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *TableTimeClient) CancelBooking(ctx context.Context, code string) error {
	return c.call(ctx, http.MethodDelete, "/api/bookings/"+url.PathEscape(code), nil, nil, nil)
}

func (c *TableTimeClient) RescheduleBooking(ctx context.Context, code string, req *model.RescheduleRequest) (*model.Booking, error) {
	var booking model.Booking
	if err := c.call(ctx, http.MethodPatch, "/api/bookings/"+url.PathEscape(code), req, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *TableTimeClient) call(ctx context.Context, method, path string, body any, headers map[string]string, target any) error {
	var (
		resp *Response
		err  error
	)
	switch method {
	case http.MethodGet:
		resp, err = c.httpClient.GET(ctx, path)
	case http.MethodPost:
		resp, err = c.httpClient.POST(ctx, path, body, headers)
	case http.MethodPatch:
		resp, err = c.httpClient.PATCH(ctx, path, body)
	case http.MethodDelete:
		resp, err = c.httpClient.DELETE(ctx, path)
	default:
		return fmt.Errorf("unsupported method %s", method)
	}
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := resp.DecodeJSON(target); err != nil {
		return fmt.Errorf("could not decode response:\n%s\n%w", resp.ToString(), err)
	}
	return nil
}

func decodeAPIError(resp *Response) error {
	var body apperrors.ErrorResponse
	if err := resp.DecodeJSON(&body); err != nil || body.Message == "" {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{
		Status:  resp.StatusCode,
		Code:    body.Code,
		Message: body.Message,
		Details: body.Details,
	}
}
