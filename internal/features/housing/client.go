package housing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	common_models "go-crm-leads/internal/common/models"
	"go-crm-leads/internal/config"
	"go-crm-leads/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const snippetLimit = 200

// HTTPDoer is satisfied by *http.Client; tests swap in their own.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// LeadClient is the upstream lead source used by the sync orchestrator.
type LeadClient interface {
	FetchLeads(ctx context.Context, startEpoch, endEpoch string) ([]RawLead, error)
	FetchLatestLeads(ctx context.Context, hoursBack int) ([]common_models.CanonicalLead, error)
}

// Client calls the Housing.com builder-leads API.
type Client struct {
	apiURL        string
	profileID     string
	encryptionKey string
	httpClient    HTTPDoer
	limiter       *rate.Limiter
	logger        *zap.Logger
	now           func() time.Time
}

// NewClient refuses to build a client without a profile id and encryption key.
func NewClient(cfg config.HousingConfig, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.ProfileID) == "" {
		return nil, &ConfigurationError{Field: "HOUSING_PROFILE_ID"}
	}
	if strings.TrimSpace(cfg.EncryptionKey) == "" {
		return nil, &ConfigurationError{Field: "HOUSING_ENCRYPTION_KEY"}
	}
	if cfg.APIURL == "" {
		return nil, &ConfigurationError{Field: "HOUSING_API_URL"}
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiURL:        cfg.APIURL,
		profileID:     cfg.ProfileID,
		encryptionKey: cfg.EncryptionKey,
		httpClient:    &http.Client{Timeout: timeout},
		limiter:       rate.NewLimiter(limit, 1),
		logger:        logger.Named("housing"),
		now:           time.Now,
	}, nil
}

// SetHTTPClient sets a custom HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client HTTPDoer) {
	c.httpClient = client
}

// FetchLeads returns the raw leads created in [startEpoch, endEpoch). An empty
// list is not an error.
func (c *Client) FetchLeads(ctx context.Context, startEpoch, endEpoch string) ([]RawLead, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("housing api rate limiter: %w", err)
	}

	currentTime := strconv.FormatInt(c.now().Unix(), 10)
	hash := utils.SignRequestTimestamp(c.encryptionKey, currentTime)

	params := url.Values{}
	params.Set("start_date", startEpoch)
	params.Set("end_date", endEpoch)
	params.Set("current_time", currentTime)
	params.Set("hash", hash)
	params.Set("id", c.profileID)

	reqURL := c.apiURL
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + params.Encode()
	} else {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("Fetching Housing.com leads",
		zap.String("start_date", startEpoch),
		zap.String("end_date", endEpoch))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("housing api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read housing api response: %w", err)
	}

	leads, err := parseResponse(resp.StatusCode, body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Fetched Housing.com leads", zap.Int("count", len(leads)))
	return leads, nil
}

// FetchLatestLeads fetches [now - hoursBack, now) and maps the result.
func (c *Client) FetchLatestLeads(ctx context.Context, hoursBack int) ([]common_models.CanonicalLead, error) {
	if hoursBack <= 0 {
		hoursBack = 24
	}
	now := c.now()
	end := now.Unix()
	start := end - int64(hoursBack)*3600
	raws, err := c.FetchLeads(ctx, strconv.FormatInt(start, 10), strconv.FormatInt(end, 10))
	if err != nil {
		return nil, err
	}
	return ProcessLeads(raws, now), nil
}

func parseResponse(statusCode int, body []byte) ([]RawLead, error) {
	trimmed := bytes.TrimSpace(body)

	var top json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, &UpstreamProtocolError{Snippet: snippet(trimmed), Err: err}
	}

	var (
		leads   []RawLead
		env     envelope
		dataErr error
		isArr   = len(trimmed) > 0 && trimmed[0] == '['
	)

	if isArr {
		if err := json.Unmarshal(trimmed, &leads); err != nil {
			return nil, &UpstreamProtocolError{Snippet: snippet(trimmed), Err: err}
		}
	} else if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, &UpstreamProtocolError{Snippet: snippet(trimmed), Err: err}
		}
		leads, dataErr = decodeDataArray(env.Data)
	}

	if statusCode < 200 || statusCode >= 300 {
		return nil, &UpstreamRequestFailed{StatusCode: statusCode, Message: env.Message}
	}
	if env.Status != nil && env.Status.String() != "" && env.Status.String() != "200" {
		code, _ := strconv.Atoi(env.Status.String())
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("housing api returned status %s", env.Status.String())
		}
		return nil, &UpstreamRequestFailed{StatusCode: code, Message: msg}
	}
	if dataErr != nil {
		return nil, &UpstreamProtocolError{Snippet: snippet(trimmed), Err: dataErr}
	}

	if leads == nil {
		leads = []RawLead{}
	}
	return leads, nil
}

// decodeDataArray treats a missing or non-array data field as no leads.
// An array with an undecodable element is an error, never a partial batch.
func decodeDataArray(raw json.RawMessage) ([]RawLead, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []RawLead{}, nil
	}
	var leads []RawLead
	if err := json.Unmarshal(raw, &leads); err != nil {
		return nil, fmt.Errorf("decode data array: %w", err)
	}
	return leads, nil
}

func snippet(body []byte) string {
	if len(body) <= snippetLimit {
		return string(body)
	}
	return string(body[:snippetLimit]) + "..."
}
