package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Check performs a one-shot reachability probe against a translation backend
// by fetching its /languages endpoint. LibreTranslate has no dedicated
// health endpoint; /languages is its cheapest GET.
func Check(ctx context.Context, baseURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/languages", nil)
	if err != nil {
		return err
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", res.StatusCode, baseURL)
	}

	return nil
}
