package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxDownloadSize caps Download bodies.
const MaxDownloadSize = 20 << 20

// Download fetches url with GET and returns the body and its Content-Type.
// Non-200 responses are errors that include the first bytes of the body.
func Download(ctx context.Context, client *http.Client, url string) ([]byte, string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(body) > MaxDownloadSize {
		return nil, "", fmt.Errorf("download exceeds %d bytes", MaxDownloadSize)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
