package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"portfolio_analyzer/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIError is a non-2xx answer of the analyzer API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("analyzer API returned %d: %s", e.StatusCode, e.Message)
}

// SearchResult is the answer of a session search.
type SearchResult struct {
	Report  *entity.PortfolioReport `json:"report,omitempty"`
	Applied bool                    `json:"applied"`
	Error   string                  `json:"error,omitempty"`
}

// PortfolioClient talks to the analyzer HTTP API.
type PortfolioClient struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  logrus.FieldLogger
}

// NewPortfolioClient creates a client for the API served at baseURL.
func NewPortfolioClient(baseURL string, timeout time.Duration, logger logrus.FieldLogger) *PortfolioClient {
	return &PortfolioClient{
		client:  &fasthttp.Client{Name: "portfolio-checker"},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.WithField("component", "PortfolioClient"),
	}
}

// GetPortfolio fetches the full report of a wallet.
func (c *PortfolioClient) GetPortfolio(ctx context.Context, walletAddress string) (*entity.PortfolioReport, error) {
	var report entity.PortfolioReport
	if err := c.do(ctx, fasthttp.MethodGet, "/api/v1/portfolios/"+url.PathEscape(walletAddress), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ValidateAddress asks the server whether the address is well-formed.
func (c *PortfolioClient) ValidateAddress(ctx context.Context, address string) (bool, error) {
	var resp struct {
		Valid bool `json:"valid"`
	}
	if err := c.do(ctx, fasthttp.MethodGet, "/api/v1/addresses/"+url.PathEscape(address)+"/validate", nil, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// Search runs a search in the given session. A failed analysis is returned as an *APIError.
func (c *PortfolioClient) Search(ctx context.Context, sessionID, walletAddress string) (*SearchResult, error) {
	body, err := json.Marshal(map[string]string{"address": walletAddress})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	var result SearchResult
	if err := c.do(ctx, fasthttp.MethodPost, "/api/v1/sessions/"+url.PathEscape(sessionID)+"/search", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *PortfolioClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	requestURL := c.baseURL + path
	c.logger.WithField("url", requestURL).Debug("Requesting analyzer API")

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		c.logger.WithError(err).WithField("url", requestURL).Error("Request to analyzer API failed")
		return fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	rawBody := resp.Body()
	if status := resp.StatusCode(); status < 200 || status >= 300 {
		apiErr := &APIError{StatusCode: status, Message: string(rawBody)}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(rawBody, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		c.logger.WithFields(logrus.Fields{"url": requestURL, "status": status}).Warn("Analyzer API returned an error")
		return apiErr
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", requestURL, err)
	}
	return nil
}

// IsInvalidAddress reports whether err is the API rejecting a malformed address.
func IsInvalidAddress(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == fasthttp.StatusBadRequest
}
