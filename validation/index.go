package validation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// defaultIndexURL is the base URL of the public package index
const defaultIndexURL = "https://pypi.org"

// indexTimeout bounds the package existence request
const indexTimeout = 5 * time.Second

// PackageIndex confirms a package exists in a public package index
type PackageIndex interface {
	// Exists returns nil if the package is published in the index
	Exists(ctx context.Context, packageName string) error
}

// PyPIIndex implements PackageIndex against the PyPI JSON API
type PyPIIndex struct {
	// BaseURL is the base URL of the index, defaults to pypi.org
	BaseURL string

	// Client is the HTTP client to use, defaults to a client with a
	// request timeout
	Client *http.Client
}

// Exists implements PackageIndex by requesting the package's JSON metadata
func (i PyPIIndex) Exists(ctx context.Context, packageName string) error {
	baseURL := i.BaseURL
	if baseURL == "" {
		baseURL = defaultIndexURL
	}

	client := i.Client
	if client == nil {
		client = &http.Client{Timeout: indexTimeout}
	}

	reqURL := fmt.Sprintf("%s/pypi/%s/json", baseURL, url.PathEscape(packageName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build package index request: %s", err.Error())
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query package index: %s", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("package index responded with status: %s", resp.Status)
	}

	return nil
}
