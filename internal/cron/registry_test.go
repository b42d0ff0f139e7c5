package cron

import (
	"context"
	"testing"
)

type namedJob struct {
	name string
}

func (n *namedJob) Name() string              { return n.name }
func (n *namedJob) Run(context.Context) error { return nil }

func TestRegistryPreservesOrderAndCopies(t *testing.T) {
	registry := NewRegistry()
	purge := &namedJob{name: "otp-purge"}
	retention := &namedJob{name: "outbox-retention"}
	registry.Register(purge)
	registry.Register(nil)
	registry.Register(retention)

	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0] != purge || jobs[1] != retention {
		t.Fatal("jobs returned out of registration order")
	}

	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatal("mutating the returned slice must not affect the registry")
	}
}

func TestNewRegistryDropsNilJobs(t *testing.T) {
	registry := NewRegistry(nil, &namedJob{name: "only"}, nil)
	jobs := registry.Jobs()
	if len(jobs) != 1 || jobs[0].Name() != "only" {
		t.Fatalf("expected a single job, got %d", len(jobs))
	}
}
