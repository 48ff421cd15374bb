// Package webhook delivers order event notifications to an external
// endpoint as JSON POSTs. Callers treat delivery as best effort.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cargo/internal/core/domain/model/kernel"
)

// Notifier posts order events to a single configured endpoint.
type Notifier struct {
	endpoint string
	client   *http.Client
}

// NewNotifier creates a notifier for the given endpoint URL.
func NewNotifier(endpoint string) (*Notifier, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	return &Notifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type eventPayload struct {
	Category string  `json:"category"`
	OrderID  string  `json:"orderId"`
	HubID    *string `json:"hubId,omitempty"`
	SentAt   string  `json:"sentAt"`
}

// Notify posts one event. A non-2xx response is an error; the caller
// decides whether to log or retry.
func (n *Notifier) Notify(ctx context.Context, category string, orderID kernel.UUID, hubID *kernel.UUID) error {
	payload := eventPayload{
		Category: category,
		OrderID:  orderID.String(),
		SentAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if hubID != nil {
		s := hubID.String()
		payload.HubID = &s
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver event: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("event endpoint returned %d", resp.StatusCode)
	}
	return nil
}
