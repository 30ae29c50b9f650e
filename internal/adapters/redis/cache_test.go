package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "house_price/internal/adapters/redis"
)

type cached struct {
	Prediction float64 `json:"prediction"`
}

func TestCache_MissSetHitDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	var got cached
	ok, err := c.Get(ctx, "prediction:a:b", &got)
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "prediction:a:b", cached{Prediction: 81.25}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("house_price:prediction:a:b") {
		t.Fatalf("expected prefixed key in redis; keys=%v", mr.Keys())
	}

	ok, err = c.Get(ctx, "prediction:a:b", &got)
	if err != nil || !ok || got.Prediction != 81.25 {
		t.Fatalf("expected hit with 81.25, got ok=%v err=%v v=%+v", ok, err, got)
	}

	if err := c.Del(ctx, "prediction:a:b"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "prediction:a:b", &got); ok {
		t.Fatalf("expected miss after del")
	}
}

func TestCache_TTLExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "k", cached{Prediction: 1}, 10); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(11 * time.Second)

	var got cached
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Fatalf("expected key to expire")
	}
}
