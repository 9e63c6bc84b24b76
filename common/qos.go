package common

import (
	"context"
	"time"
)

// Qos hands out at most limit tokens per second.
type Qos struct {
	Bucket chan struct{}

	limit int
	done  chan struct{}
}

func StartQoS(limit int) *Qos {
	if limit < 1 {
		limit = 1
	}
	q := &Qos{
		Bucket: make(chan struct{}, limit),
		limit:  limit,
		done:   make(chan struct{}),
	}

	q.fill()
	go q.timer()
	return q
}

func (q *Qos) fill() {
	for i := 0; i < q.limit; i++ {
		select {
		case q.Bucket <- struct{}{}:
		default:
			// bucket is full
			return
		}
	}
}

func (q *Qos) timer() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-q.done:
			return
		case <-ticker.C:
			q.fill()
		}
	}
}

// Wait takes one token, blocking until one is available or ctx is done.
func (q *Qos) Wait(ctx context.Context) error {
	select {
	case <-q.Bucket:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Qos) Close() {
	close(q.done)
}
