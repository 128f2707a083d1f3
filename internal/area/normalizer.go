package area

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"placefinder_backend/platform/logger"
)

// NormalizerClient calls the external Japanese address normalization
// service, which splits a free-text place name into prefecture and city.
type NormalizerClient struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

func NewNormalizerClient(baseURL string, log *logger.Logger) *NormalizerClient {
	return &NormalizerClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// Normalize submits a candidate place name and returns whatever
// prefecture/city pair the service recognized. Missing components come
// back as empty strings; deciding whether that is fatal is the caller's
// concern.
func (n *NormalizerClient) Normalize(ctx context.Context, text string) (NormalizedAddress, error) {
	params := url.Values{}
	params.Add("address", text)

	reqURL := fmt.Sprintf("%s?%s", n.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return NormalizedAddress{}, err
	}

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.UpstreamError("address-normalizer", err)
		return NormalizedAddress{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("upstream api error: %d", resp.StatusCode)
		n.log.UpstreamError("address-normalizer", err)
		return NormalizedAddress{}, err
	}

	var normalized NormalizedAddress
	if err := json.NewDecoder(resp.Body).Decode(&normalized); err != nil {
		n.log.UpstreamError("address-normalizer", err)
		return NormalizedAddress{}, err
	}

	return normalized, nil
}
