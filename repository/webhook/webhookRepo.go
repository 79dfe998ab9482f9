package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"fieldrental/util/httpx"
)

// Event is posted to the configured webhook on booking status changes.
type Event struct {
	BookingID int64  `json:"booking_id"`
	UserID    int64  `json:"user_id"`
	Status    string `json:"status"`
}

type Repo interface {
	Notify(ctx context.Context, ev Event) error
}

// New returns a notifier posting to url, or a no-op one when url is empty.
func New(url string) Repo {
	if url == "" {
		return noop{}
	}
	return &repo{url: url, c: httpx.Client()}
}

type noop struct{}

func (noop) Notify(context.Context, Event) error { return nil }

type repo struct {
	url string
	c   *http.Client
}

func (r *repo) Notify(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}
