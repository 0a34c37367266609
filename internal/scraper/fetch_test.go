package scraper

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
)

const schedulePage = `<html><body>
<div id="all_sched">
<!--
<table id="sched_2023-2024_9_1"><tbody><tr><th>1</th></tr></tbody></table>
-->
</div>
<p id="visible">Scores &amp; Fixtures</p>
</body></html>`

func TestFetch(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		encoding   string
		wantStatus int
	}{
		{name: "plain", statusCode: http.StatusOK},
		{name: "gzip", statusCode: http.StatusOK, encoding: "gzip"},
		{name: "brotli", statusCode: http.StatusOK, encoding: "br"},
		{name: "not found", statusCode: http.StatusNotFound, wantStatus: http.StatusNotFound},
		{name: "rate limited", statusCode: http.StatusTooManyRequests, wantStatus: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "fbref-matches") {
					t.Errorf("User-Agent = %q, should contain 'fbref-matches'", ua)
				}
				if tt.encoding != "" {
					w.Header().Set("Content-Encoding", tt.encoding)
				}
				w.WriteHeader(tt.statusCode)
				w.Write(encode(t, tt.encoding, schedulePage))
			}))
			defer server.Close()

			doc, err := New(Options{}).Fetch(context.Background(), server.URL+"/en/comps/9/2023-2024/schedule")

			if tt.wantStatus != 0 {
				var se *StatusError
				if !errors.As(err, &se) {
					t.Fatalf("Fetch() error = %v, want *StatusError", err)
				}
				if se.StatusCode != tt.wantStatus {
					t.Errorf("StatusCode = %d, want %d", se.StatusCode, tt.wantStatus)
				}
				if !strings.HasSuffix(se.URL, "/schedule") {
					t.Errorf("URL = %q, should name the requested page", se.URL)
				}
				if doc != nil {
					t.Error("Fetch() returned a document alongside an error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if got := doc.Find("#visible").Text(); got != "Scores & Fixtures" {
				t.Errorf("visible text = %q", got)
			}
			if doc.Find("#sched_2023-2024_9_1 > tbody > tr").Length() != 1 {
				t.Error("commented-out schedule table should be parsed")
			}
		})
	}
}

func TestFetch_KeepComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(schedulePage))
	}))
	defer server.Close()

	doc, err := New(Options{KeepComments: true}).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if doc.Find("#sched_2023-2024_9_1").Length() != 0 {
		t.Error("table inside a comment should stay hidden with KeepComments")
	}
}

func TestFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(Options{}).Fetch(context.Background(), url)
	if err == nil {
		t.Fatal("Fetch() expected error from closed server")
	}
	var se *StatusError
	if errors.As(err, &se) {
		t.Errorf("transport failure should not be a StatusError: %v", err)
	}
}

func TestFetch_RespectRobots(t *testing.T) {
	var pageHits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
		default:
			pageHits++
			w.Write([]byte("<html><body>ok</body></html>"))
		}
	}))
	defer server.Close()

	f := New(Options{RespectRobots: true})

	if _, err := f.Fetch(context.Background(), server.URL+"/en/comps/9/schedule"); err != nil {
		t.Fatalf("allowed path: unexpected error %v", err)
	}

	_, err := f.Fetch(context.Background(), server.URL+"/private/page")
	if !errors.Is(err, ErrDisallowed) {
		t.Errorf("disallowed path: error = %v, want ErrDisallowed", err)
	}
	if pageHits != 1 {
		t.Errorf("page hits = %d, want 1", pageHits)
	}
}

func TestUncomment(t *testing.T) {
	got := string(Uncomment([]byte(`<div><!-- <table id="x"></table> --></div>`)))
	want := `<div> <table id="x"></table> </div>`
	if got != want {
		t.Errorf("Uncomment() = %q, want %q", got, want)
	}
}

func encode(t *testing.T, encoding, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch encoding {
	case "gzip":
		zw := gzip.NewWriter(&buf)
		zw.Write([]byte(body))
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
	case "br":
		bw := brotli.NewWriter(&buf)
		bw.Write([]byte(body))
		if err := bw.Close(); err != nil {
			t.Fatal(err)
		}
	default:
		buf.WriteString(body)
	}
	return buf.Bytes()
}
