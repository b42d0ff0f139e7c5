package gcs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func staticTokenSource(token string) *tokenSource {
	return &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
		return token, time.Now().Add(time.Hour), nil
	}}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestTokenSourceCachesUntilNearExpiry(t *testing.T) {
	t.Parallel()

	fetches := 0
	ts := &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
		fetches++
		return "tok", time.Now().Add(time.Hour), nil
	}}

	for i := 0; i < 3; i++ {
		token, err := ts.Token(context.Background())
		if err != nil {
			t.Fatalf("Token: %v", err)
		}
		if token != "tok" {
			t.Fatalf("unexpected token %q", token)
		}
	}
	if fetches != 1 {
		t.Fatalf("expected 1 fetch, got %d", fetches)
	}
}

func TestTokenSourceRefreshesExpiredToken(t *testing.T) {
	t.Parallel()

	fetches := 0
	ts := &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
		fetches++
		// Expiry inside the refresh skew forces a fetch on every call.
		return "tok", time.Now().Add(30 * time.Second), nil
	}}

	if _, err := ts.Token(context.Background()); err != nil {
		t.Fatalf("Token: %v", err)
	}
	if _, err := ts.Token(context.Background()); err != nil {
		t.Fatalf("Token: %v", err)
	}
	if fetches != 2 {
		t.Fatalf("expected 2 fetches, got %d", fetches)
	}
}

func TestTokenSourcePropagatesFetchError(t *testing.T) {
	t.Parallel()

	ts := &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
		return "", time.Time{}, errors.New("boom")
	}}
	if _, err := ts.Token(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
}

func TestBucketUploadSendsAuthorizedRequest(t *testing.T) {
	t.Parallel()

	var captured *http.Request
	client := &Client{
		defaultBucket: "media-bucket",
		tokenSource:   staticTokenSource("token-123"),
		httpClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
			captured = req
			return jsonResponse(http.StatusOK, `{}`)
		})},
	}

	bucket := client.BucketHandle("")
	if bucket.Name() != "media-bucket" {
		t.Fatalf("expected default bucket, got %q", bucket.Name())
	}

	err := bucket.Upload(context.Background(), "products/mug.png", "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if captured.Method != http.MethodPost {
		t.Fatalf("expected POST, got %s", captured.Method)
	}
	if got := captured.Header.Get("Authorization"); got != "Bearer token-123" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	if got := captured.Header.Get("Content-Type"); got != "image/png" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !strings.Contains(captured.URL.String(), "media-bucket") {
		t.Fatalf("url missing bucket: %s", captured.URL)
	}
}

func TestBucketUploadSurfacesErrorBody(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "media-bucket",
		tokenSource:   staticTokenSource("token-123"),
		httpClient: &http.Client{Transport: roundTripFunc(func(*http.Request) *http.Response {
			return jsonResponse(http.StatusForbidden, `{"error":"denied"}`)
		})},
	}

	err := client.BucketHandle("").Upload(context.Background(), "products/mug.png", "image/png", []byte("x"))
	if err == nil {
		t.Fatal("expected upload error")
	}
	if !strings.Contains(err.Error(), "denied") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestBucketUploadRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	client := &Client{defaultBucket: "bucket", tokenSource: staticTokenSource("t")}
	bucket := client.BucketHandle("")

	if err := bucket.Upload(context.Background(), "", "image/png", []byte("x")); err == nil {
		t.Fatal("expected error for empty key")
	}
	if err := bucket.Upload(context.Background(), "key", "image/png", nil); err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestBucketDeleteTreatsNotFoundAsSuccess(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "media-bucket",
		tokenSource:   staticTokenSource("token-123"),
		httpClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
			if req.Method != http.MethodDelete {
				t.Fatalf("expected DELETE, got %s", req.Method)
			}
			return jsonResponse(http.StatusNotFound, "")
		})},
	}

	if err := client.BucketHandle("").Delete(context.Background(), "products/gone.png"); err != nil {
		t.Fatalf("Delete on missing object should succeed: %v", err)
	}
}

func TestBucketDeleteFailsOnServerError(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "media-bucket",
		tokenSource:   staticTokenSource("token-123"),
		httpClient: &http.Client{Transport: roundTripFunc(func(*http.Request) *http.Response {
			return jsonResponse(http.StatusInternalServerError, "")
		})},
	}

	if err := client.BucketHandle("").Delete(context.Background(), "products/mug.png"); err == nil {
		t.Fatal("expected delete error")
	}
}

func TestPublicURL(t *testing.T) {
	t.Parallel()

	bucket := &Bucket{name: "media-bucket"}

	if got := bucket.PublicURL("", "products/mug.png"); got != "https://storage.googleapis.com/media-bucket/products%2Fmug.png" {
		t.Fatalf("unexpected default-host url %q", got)
	}
	if got := bucket.PublicURL("https://cdn.trovekart.com/", "products/mug.png"); !strings.HasPrefix(got, "https://cdn.trovekart.com/media-bucket/") {
		t.Fatalf("unexpected cdn url %q", got)
	}
}

func TestPingRequiresConfiguredBucket(t *testing.T) {
	t.Parallel()

	client := &Client{tokenSource: staticTokenSource("t")}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error without default bucket")
	}

	var uninitialized *Client
	if err := uninitialized.Ping(context.Background()); err == nil {
		t.Fatal("expected error on nil client")
	}
}
