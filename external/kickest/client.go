package kickest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/antimaLinux/kickscraper/internal/domain/player"
	"github.com/antimaLinux/kickscraper/internal/domain/playerstats"
	"github.com/antimaLinux/kickscraper/internal/platform/logging"
	"github.com/antimaLinux/kickscraper/internal/platform/resilience"
	"github.com/antimaLinux/kickscraper/internal/usecase"
)

const (
	defaultBaseURL  = "https://www.kickest.it/api/v1"
	defaultPageSize = 100
	maxBodyBytes    = 4 << 20
)

var errKickestTransient = crerr.New("kickest transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	PageSize       int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls per-gameweek scored-point tables from the kickest stats
// API. The table endpoint is paginated; FetchGameweek walks every page
// and returns the merged sheet.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	pageSize       int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		pageSize:       pageSize,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type tableRequest struct {
	Gameweek int `json:"gameweek"`
	Page     int `json:"page"`
	PerPage  int `json:"per_page"`
}

type tableEnvelope struct {
	Data struct {
		Players []tablePlayer `json:"players"`
		Pages   int           `json:"pages"`
	} `json:"data"`
}

type tablePlayer struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Points float64 `json:"pts"`
}

func (c *Client) FetchGameweek(ctx context.Context, gameweek int) ([]playerstats.FixtureStat, error) {
	if gameweek <= 0 {
		return nil, fmt.Errorf("gameweek must be greater than zero")
	}

	sheet := make([]playerstats.FixtureStat, 0, c.pageSize)
	for page := 1; ; page++ {
		envelope, err := c.fetchTablePage(ctx, gameweek, page)
		if err != nil {
			return nil, fmt.Errorf("fetch stats table gameweek=%d page=%d: %w", gameweek, page, err)
		}

		for _, row := range envelope.Data.Players {
			position, err := mapRole(row.Role)
			if err != nil {
				c.logger.WarnContext(ctx, "skipping player with unknown role",
					"player_id", row.ID,
					"role", row.Role,
				)
				continue
			}
			sheet = append(sheet, playerstats.FixtureStat{
				PlayerID: strconv.FormatInt(row.ID, 10),
				Name:     row.Name,
				Position: position,
				Points:   row.Points,
			})
		}

		if page >= envelope.Data.Pages || len(envelope.Data.Players) == 0 {
			break
		}
	}

	return sheet, nil
}

func (c *Client) fetchTablePage(ctx context.Context, gameweek, page int) (tableEnvelope, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "kickest circuit breaker rejected request", "state", c.breaker.State())
			return tableEnvelope{}, fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	key := "table:" + strconv.Itoa(gameweek) + ":" + strconv.Itoa(page)
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, gameweek, page)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errKickestTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return tableEnvelope{}, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return tableEnvelope{}, fmt.Errorf("unexpected response payload type %T", out)
	}

	var envelope tableEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return tableEnvelope{}, fmt.Errorf("decode stats table payload: %w", err)
	}
	return envelope, nil
}

func (c *Client) executeRequest(ctx context.Context, gameweek, page int) ([]byte, error) {
	// The encoded payload lives in pooled memory for the whole retry
	// loop; each attempt replays it from a fresh reader.
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	payload := tableRequest{Gameweek: gameweek, Page: page, PerPage: c.pageSize}
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("encode stats table request: %w", err)
	}
	fullURL := c.baseURL + "/stats/table"

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(buf.Bytes()))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("content-type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errKickestTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errKickestTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errKickestTransient, "provider status=%d", resp.StatusCode)
			default:
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "kickest request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// mapRole translates the provider's Italian role letters to position
// categories.
func mapRole(role string) (player.Position, error) {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case "P", "GK":
		return player.PositionGoalkeeper, nil
	case "D", "DEF":
		return player.PositionDefender, nil
	case "C", "MID":
		return player.PositionMidfielder, nil
	case "A", "FWD":
		return player.PositionForward, nil
	default:
		return "", fmt.Errorf("unknown role %q", role)
	}
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
