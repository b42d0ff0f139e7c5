package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/trovekart/storefront-backend/pkg/logger"
)

type fakeOTPPurger struct {
	deleted int64
	called  int
	err     error
}

func (f *fakeOTPPurger) PurgeExpired(ctx context.Context) (int64, error) {
	f.called++
	if f.err != nil {
		return 0, f.err
	}
	return f.deleted, nil
}

func TestOTPPurgeJobRunsPurge(t *testing.T) {
	purger := &fakeOTPPurger{deleted: 3}
	job, err := NewOTPPurgeJob(OTPPurgeJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		OTP:    purger,
	})
	if err != nil {
		t.Fatalf("NewOTPPurgeJob: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if purger.called != 1 {
		t.Fatalf("expected 1 purge call, got %d", purger.called)
	}
}

func TestOTPPurgeJobPropagatesError(t *testing.T) {
	job, err := NewOTPPurgeJob(OTPPurgeJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		OTP:    &fakeOTPPurger{err: errors.New("boom")},
	})
	if err != nil {
		t.Fatalf("NewOTPPurgeJob: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
