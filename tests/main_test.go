package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

var realBaseURL string
var httpClient = &http.Client{Timeout: 10 * time.Second}

type messageEnvelope struct {
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// TestMain runs the suite against a live server, started for example with
// MAIL_DRIVER=log. Without MAILRELAY_REAL_BASE_URL the suite is skipped.
func TestMain(m *testing.M) {
	realBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("MAILRELAY_REAL_BASE_URL")), "/")
	if realBaseURL == "" {
		fmt.Fprintln(os.Stderr, "skipping real tests: MAILRELAY_REAL_BASE_URL is not set")
		os.Exit(0)
	}

	resp, err := httpClient.Get(realBaseURL + "/health")
	if err != nil {
		fmt.Fprintf(os.Stderr, "real tests require a running server. failed to reach %s: %v\n", realBaseURL, err)
		os.Exit(1)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "real tests require a healthy server. %s/health returned %s\n", realBaseURL, resp.Status)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func doJSON(t *testing.T, method, path string, payload any, headers map[string]string) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			t.Fatalf("encode json: %v", err)
		}
		body = buf
	}

	req, err := http.NewRequest(method, realBaseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp.StatusCode, respBody
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode response %q: %v", body, err)
	}
	return out
}
