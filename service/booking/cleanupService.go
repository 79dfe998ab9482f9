package bookingsvc

import (
	"context"
	"time"

	"fieldrental/util/metrics"
)

type Cleaner interface {
	// ReleaseExpired cancels PENDING bookings whose slot has already ended.
	ReleaseExpired(ctx context.Context) (int64, error)
}

type cleaner struct{ r Repo }

func NewCleaner(r Repo) Cleaner { return &cleaner{r: r} }

func (c *cleaner) ReleaseExpired(ctx context.Context) (int64, error) {
	n, err := c.r.CancelExpiredPending(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.AddBookingExpired(n)
	}
	return n, nil
}
