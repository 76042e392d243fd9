package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"points_checker/internal/app/port"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultBaseURL is the public Meteora points endpoint.
	DefaultBaseURL = "https://point-api.meteora.ag/points"
	// DefaultTimeout bounds a single lookup when no timeout is configured.
	DefaultTimeout = 15 * time.Second
)

// ErrUnexpectedStatus matches every *StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status from points API")

// StatusError reports a non-2xx answer. Its message is what gets shown to the user.
type StatusError struct {
	Address    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return "Failed for " + e.Address
}

// Is lets errors.Is(err, ErrUnexpectedStatus) match.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// pointsClientImpl is the fasthttp implementation of port.PointsClient.
type pointsClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewPointsClient creates a client for GET {baseURL}/{address}.
func NewPointsClient(baseURL string, timeout time.Duration, logger *zap.Logger) port.PointsClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pointsClientImpl{
		client: &fasthttp.Client{
			Name:                   "points_checker",
			ReadTimeout:            timeout,
			WriteTimeout:           timeout,
			DisablePathNormalizing: true,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("PointsClient"),
	}
}

// FetchPoints implements port.PointsClient.
func (c *pointsClientImpl) FetchPoints(ctx context.Context, address string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requestURL := c.baseURL + "/" + url.PathEscape(address)
	c.logger.Debug("Requesting points", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := c.client.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		c.logger.Warn("Points request failed", zap.String("url", requestURL), zap.Error(err))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("request to %s failed: %w", requestURL, err)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		c.logger.Warn("Points API returned non-success status",
			zap.String("url", requestURL),
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", resp.Body()),
		)
		return nil, &StatusError{Address: address, StatusCode: status}
	}

	var payload any
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		c.logger.Warn("Failed to decode points response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", resp.Body()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to decode points response for %s: %w", address, err)
	}

	c.logger.Debug("Points fetched", zap.String("address", address))
	return payload, nil
}

// deadline picks the earlier of the context deadline and the client timeout.
func (c *pointsClientImpl) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}
