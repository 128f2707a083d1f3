package overpass

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"placefinder_backend/platform/apperr"
	"placefinder_backend/platform/logger"
)

// Executor submits synthesized queries to the Overpass API endpoint.
// A politeness limiter throttles outbound calls; public Overpass instances
// expect at most a request or two per second from a single client.
type Executor struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	log      *logger.Logger
}

func NewExecutor(endpoint string, rps float64, log *logger.Logger) *Executor {
	if rps <= 0 {
		rps = 1
	}
	return &Executor{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		log:      log,
	}
}

// Execute submits the query form-encoded and returns the element list.
// Query syntax is not validated locally: a syntax error surfaces as an
// error-shaped JSON response with no elements, which counts as an empty
// successful execution. Only transport failures and non-JSON responses
// fail.
func (e *Executor) Execute(ctx context.Context, query string) ([]Element, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, apperr.QueryExecution("地物データの検索を中断しました", err)
	}

	payload := url.Values{}
	payload.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return nil, apperr.QueryExecution("地物データの検索に失敗しました", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(req)
	if err != nil {
		e.log.UpstreamError("overpass", err)
		return nil, apperr.QueryExecution("地物データの検索に失敗しました", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		e.log.UpstreamError("overpass", err)
		return nil, apperr.QueryExecution("地物データの検索結果を解釈できませんでした", err)
	}

	e.log.Debug("overpass query executed", "status", resp.StatusCode, "elements", len(decoded.Elements))

	return decoded.Elements, nil
}
