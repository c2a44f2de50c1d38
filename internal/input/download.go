package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/sethvargo/go-retry"
)

// download fetches rawURL into a temporary file that keeps the URL's file
// extension, retrying transport errors and 5xx/429 responses.
func download(ctx context.Context, rawURL string, opts Options) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid dump URL: %w", err)
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	base := opts.Backoff
	if base <= 0 {
		base = time.Second
	}

	f, err := os.CreateTemp(opts.TempDir, "dump2tsv-*"+path.Ext(u.Path))
	if err != nil {
		return "", fmt.Errorf("failed to create download file: %w", err)
	}
	name := f.Name()

	attempt := 0
	backoff := retry.WithMaxRetries(opts.Retries, retry.NewExponential(base))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			opts.Logger.Warn("retrying download", "url", rawURL, "attempt", attempt)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return err
		}
		if err := f.Truncate(0); err != nil {
			return err
		}
		return fetch(ctx, client, rawURL, f, opts.Timeout)
	})
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("failed to download %s: %w", rawURL, err)
	}

	opts.Logger.Info("downloaded dump", "url", rawURL, "path", name, "attempts", attempt)
	return name, nil
}

// statusError is a non-2xx response.
type statusError struct {
	Status string
	Code   int
}

func (e *statusError) Error() string {
	return "unexpected response status " + e.Status
}

// fetch performs one download attempt into w.
func fetch(ctx context.Context, client *http.Client, rawURL string, w io.Writer, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return retry.RetryableError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		serr := &statusError{Status: resp.Status, Code: resp.StatusCode}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return retry.RetryableError(serr)
		}
		return serr
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return retry.RetryableError(err)
	}
	return nil
}
