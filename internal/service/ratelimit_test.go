package service_test

import (
	"testing"
	"time"

	"github.com/msomdec/connectrandom/internal/service"
)

func TestTokenBucket_AllowsBurstThenDenies(t *testing.T) {
	tb := service.NewTokenBucket(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !tb.Allow("a@x.com") {
			t.Fatalf("expected call %d to be allowed", i+1)
		}
	}
	if tb.Allow("a@x.com") {
		t.Fatal("expected 4th call to be denied")
	}
}

func TestTokenBucket_KeysAreIndependent(t *testing.T) {
	tb := service.NewTokenBucket(1, time.Hour)

	if !tb.Allow("a@x.com") {
		t.Fatal("expected first key to be allowed")
	}
	if tb.Allow("a@x.com") {
		t.Fatal("expected first key to be exhausted")
	}
	if !tb.Allow("b@x.com") {
		t.Fatal("expected second key to have its own bucket")
	}
}

func TestTokenBucket_Refills(t *testing.T) {
	tb := service.NewTokenBucket(1, 20*time.Millisecond)

	if !tb.Allow("a@x.com") {
		t.Fatal("expected initial call to be allowed")
	}
	if tb.Allow("a@x.com") {
		t.Fatal("expected bucket to be empty")
	}

	time.Sleep(30 * time.Millisecond)

	if !tb.Allow("a@x.com") {
		t.Fatal("expected bucket to refill after the interval")
	}
}
