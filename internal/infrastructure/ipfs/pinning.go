package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PinningClient talks to a web3.storage style pinning service for uploads
// and reads back through an HTTP gateway.
type PinningClient struct {
	baseURL    string
	gatewayURL string
	token      string
	http       *http.Client
}

func NewPinningClient(baseURL, gatewayURL, token string, timeout time.Duration) *PinningClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &PinningClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		token:      token,
		http:       &http.Client{Timeout: timeout},
	}
}

type uploadResponse struct {
	CID   string `json:"cid"`
	Error string `json:"message,omitempty"`
}

func (p *PinningClient) Put(ctx context.Context, name string, v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/upload", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Name", name)

	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("pinning upload: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("pinning upload: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var out uploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("pinning upload: decode response: %w", err)
	}
	return Normalize(out.CID)
}

func (p *PinningClient) Get(ctx context.Context, ref string, out any) error {
	c, err := Normalize(ref)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.gatewayURL+"/ipfs/"+c, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway get %s: %w", c, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, c)
	case resp.StatusCode/100 != 2:
		return fmt.Errorf("gateway get %s: status %d", c, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway get %s: decode: %w", c, err)
	}
	return nil
}
