package app

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestCollectionOf(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		cmd  redis.Cmder
		want string
	}{
		{redis.NewStringCmd(ctx, "get", "xgv_rides"), "slots"},
		{redis.NewBoolCmd(ctx, "setnx", "lock:request:q1", 1), "locks"},
		{redis.NewStringCmd(ctx, "get", "idempotency:abc"), "idempotency"},
		{redis.NewStatusCmd(ctx, "ping"), "redis"},
	}

	for _, tt := range tests {
		if got := collectionOf(tt.cmd); got != tt.want {
			t.Errorf("collectionOf(%v) = %q, want %q", tt.cmd.Args(), got, tt.want)
		}
	}
}
