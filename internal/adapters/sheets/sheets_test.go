package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "batchtrace/internal/platform/errors"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func TestFeedURL(t *testing.T) {
	got := FeedURL(Options{SheetID: "15CMTLDg", SheetName: "Final Batch Code"})
	want := "https://docs.google.com/spreadsheets/d/15CMTLDg/gviz/tq?sheet=Final+Batch+Code&tqx=out%3Acsv"
	if got != want {
		t.Fatalf("FeedURL = %q, want %q", got, want)
	}
	if got := FeedURL(Options{FeedURL: "https://example.test/feed.csv", SheetID: "x"}); got != "https://example.test/feed.csv" {
		t.Fatalf("explicit url ignored: %q", got)
	}
	if got := FeedURL(Options{BaseURL: "http://h/d", SheetID: "id", SheetName: "s"}); got != "http://h/d/id/gviz/tq?sheet=s&tqx=out%3Acsv" {
		t.Fatalf("base url: %q", got)
	}
}

func TestHTTPFetcher(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("a,b\nc,d\n"))
		case "/big":
			_, _ = w.Write(make([]byte, 64))
		default:
			http.Error(w, "nope", http.StatusForbidden)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	f := NewHTTPFetcher(Options{FeedURL: srv.URL + "/ok"}, srv.Client())
	body, err := f.Fetch(ctx)
	if err != nil || body != "a,b\nc,d\n" {
		t.Fatalf("fetch = %q, %v", body, err)
	}
	if gotUA != defaultUA {
		t.Fatalf("user agent = %q", gotUA)
	}

	_, err = NewHTTPFetcher(Options{FeedURL: srv.URL + "/denied"}, srv.Client()).Fetch(ctx)
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("status error = %v", err)
	}

	_, err = NewHTTPFetcher(Options{FeedURL: srv.URL + "/big", MaxBytes: 16}, srv.Client()).Fetch(ctx)
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("size error = %v", err)
	}
}

func TestHTTPFetcherTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher(Options{FeedURL: url}, nil).Fetch(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestStaticAndFunc(t *testing.T) {
	if body, _ := Static("x,y").Fetch(context.Background()); body != "x,y" {
		t.Fatalf("static = %q", body)
	}
	f := FetcherFunc(func(context.Context) (string, error) { return "z", nil })
	if body, _ := f.Fetch(context.Background()); body != "z" {
		t.Fatalf("func = %q", body)
	}
}
