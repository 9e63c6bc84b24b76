package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQos(t *testing.T) {
	q := StartQoS(3)
	defer q.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		assert.Nil(t, q.Wait(ctx), "bucket starts full")
	}

	// the bucket is empty until the next refill
	ctx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	assert.Equal(t, context.DeadlineExceeded, q.Wait(ctx), "should be equal")
}

func TestQosMinLimit(t *testing.T) {
	q := StartQoS(0)
	defer q.Close()

	assert.Equal(t, 1, cap(q.Bucket), "should be equal")
	assert.Nil(t, q.Wait(context.Background()), "should be nil")
}
