// Package sanction is the boundary to the external sanction service, which
// penalizes no-shows and cancellations. The core only notifies it, fire and
// forget; its decisions are not part of this engine's invariants.
package sanction

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

type cancellationPayload struct {
	CI            string `json:"ci"`
	ReservationID int64  `json:"reservation_id"`
	Reason        string `json:"reason"`
}

// HTTPNotifier POSTs cancellation notices to the sanction service. Failures
// are logged and swallowed; the caller's cancellation already committed.
type HTTPNotifier struct {
	url    string
	client *http.Client
}

func NewHTTPNotifier(url string, timeout time.Duration) *HTTPNotifier {
	return &HTTPNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (n *HTTPNotifier) NotifyCancellation(ctx context.Context, ci string, reservationID int64, reason string) error {
	body, err := json.Marshal(cancellationPayload{
		CI:            ci,
		ReservationID: reservationID,
		Reason:        reason,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		log.Printf("sanction_notify_failed reservation_id=%d error=%q", reservationID, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		log.Printf("sanction_notify_rejected reservation_id=%d status=%d", reservationID, resp.StatusCode)
	}
	return nil
}
