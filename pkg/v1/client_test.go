package v1

import (
	"errors"
	"testing"
)

func setupClientTest(t *testing.T) *Client {
	t.Helper()

	client, err := New(
		WithBase(t.TempDir()),
		WithSession("sess-test"),
		WithWorkdir("/fixed/project"),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestClientWriteAndGet(t *testing.T) {
	client := setupClientTest(t)

	created, err := client.Write(WriteRequest{
		Title:     "Investigate flaky retry loop",
		Rationale: "retries fire twice",
		Anchors:   []Anchor{{Path: "internal/retry.go", ContextStartText: "func backoff"}},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if created.FreshnessTier != "fresh" {
		t.Errorf("tier = %q, want fresh", created.FreshnessTier)
	}

	got, err := client.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != created.Title || len(got.Anchors) != 1 {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestClientDuplicateWrite(t *testing.T) {
	client := setupClientTest(t)

	req := WriteRequest{Title: "Same insight twice"}
	if _, err := client.Write(req); err != nil {
		t.Fatalf("first write: %v", err)
	}

	_, err := client.Write(req)
	if !errors.Is(err, ErrDuplicateSeed) {
		t.Fatalf("expected ErrDuplicateSeed, got %v", err)
	}
}

func TestClientGetNotFound(t *testing.T) {
	client := setupClientTest(t)

	_, err := client.Get("seed-1700000000000-deadbeef")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientListFilters(t *testing.T) {
	client := setupClientTest(t)

	created, err := client.Write(WriteRequest{Title: "Box me"})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if ok, err := client.Archive(created.ID); err != nil || !ok {
		t.Fatalf("archive = (%v, %v)", ok, err)
	}

	active, err := client.List("active")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active listing = %+v", active)
	}

	archived, err := client.List("archived")
	if err != nil {
		t.Fatalf("list archived: %v", err)
	}
	if len(archived) != 1 || archived[0].Status != "archived" {
		t.Errorf("archived listing = %+v", archived)
	}

	if _, err := client.List("bogus"); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestClientConcludeAndDelete(t *testing.T) {
	client := setupClientTest(t)

	created, err := client.Write(WriteRequest{Title: "Expand me"})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	if ok, err := client.Conclude(created.ID, "root cause found", ""); err != nil || !ok {
		t.Fatalf("conclude = (%v, %v)", ok, err)
	}
	got, err := client.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Expansions) != 1 || got.Expansions[0].Conclusion != "root cause found" {
		t.Errorf("ledger = %+v", got.Expansions)
	}

	if ok, err := client.Delete(created.ID); err != nil || !ok {
		t.Fatalf("delete = (%v, %v)", ok, err)
	}
	if _, err := client.Get(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted seed still readable: %v", err)
	}
}

func TestClientInvalidTitle(t *testing.T) {
	client := setupClientTest(t)

	_, err := client.Write(WriteRequest{Title: "rm -rf; echo"})
	if !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("expected ErrInvalidTitle, got %v", err)
	}
}
