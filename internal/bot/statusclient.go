package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of a failed response is kept in a DeliveryError.
const maxErrorBody = 64 << 10

// DeliveryError is returned when the Bot API answers with anything but 200.
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("error sending message: status %d: %s", e.StatusCode, e.Body)
}

// statusCheckingClient is a tgbotapi.HTTPClient that fails every non-200
// response before tgbotapi tries to decode it. It remembers whether a 200
// was received.
type statusCheckingClient struct {
	ctx  context.Context
	next *http.Client
	ok   bool
}

func (c *statusCheckingClient) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.next.Do(req.WithContext(c.ctx))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		c.ok = true
		return resp, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read error response (status %d): %w", resp.StatusCode, err)
	}
	return nil, &DeliveryError{StatusCode: resp.StatusCode, Body: string(body)}
}
