package harness

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const statusPollInterval = time.Millisecond * 500

// AwaitServiceReachable polls the service at statusPath until it returns any HTTP response, or
// until the timeout elapses. This only checks that the service is up before the test run; it
// does not care about the status code, and it has nothing to do with individual test requests,
// which are never retried.
func (c *ServiceClient) AwaitServiceReachable(statusPath string, timeout time.Duration, output io.Writer) error {
	target := c.URL(statusPath, nil)
	fmt.Fprintf(output, "Connecting to service at %s", target)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := c.httpClient.Get(target)
		if err == nil {
			_ = resp.Body.Close()
			fmt.Fprintln(output)
			if resp.StatusCode >= http.StatusInternalServerError {
				fmt.Fprintf(output, "Service responded with status %d; tests may fail\n", resp.StatusCode)
			}
			return nil
		}
		c.logger.Printf("Status query failed: %s", err)
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(statusPollInterval)
	}
}
