package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Sources names the four record streams of one bulk load. Each location is an
// http(s) URL or a local file path resolving to a delimited stream with a
// header row.
type Sources struct {
	Customers string `yaml:"customers"`
	Products  string `yaml:"products"`
	Brands    string `yaml:"brands"`
	Purchases string `yaml:"purchases"`
}

// open resolves a source location to a readable stream. Remote fetches are
// bound to ctx so a load timeout cancels the download as well.
func (l *Loader) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, fmt.Errorf("loader: build request for %s: %w", location, err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("loader: fetch %s: %w", location, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("loader: fetch %s: unexpected status %s", location, resp.Status)
		}
		return resp.Body, nil
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", location, err)
	}
	return f, nil
}
