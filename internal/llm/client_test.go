package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"festbot/internal/holiday"
	"festbot/pkg/logx"
)

func timeDate(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func payloadForTest() holiday.Payload {
	occ := holiday.Definition{Name: "元旦", Month: 1, Day: 1, Aliases: []string{"新年"}}.
		OccurrenceOn(timeDate(2025, 1, 1))
	return occ.Payload()
}

func TestGenerateExtractsAndSanitizes(t *testing.T) {
	t.Setenv("TEST_FEST_KEY", "secret-key")

	var gotAuth string
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "思考：略\n答复：元旦快乐，万事如意！"}},
			},
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Model: "test-model", APIKeyEnv: "TEST_FEST_KEY"}, logx.Nop())
	text, err := c.Generate(context.Background(), Request{Occurrence: payloadForTest(), Style: "warm"})
	if err != nil {
		t.Fatal(err)
	}
	if text != "元旦快乐，万事如意！" {
		t.Fatalf("got %q", text)
	}
	if gotAuth != "Bearer secret-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotBody.Model != "test-model" || len(gotBody.Messages) != 2 {
		t.Fatalf("request body wrong: %+v", gotBody)
	}
	if !strings.Contains(gotBody.Messages[1].Content, "元旦") {
		t.Fatalf("user prompt lacks holiday name: %q", gotBody.Messages[1].Content)
	}
}

func TestGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Model: "m"}, logx.Nop())
	if _, err := c.Generate(context.Background(), Request{Occurrence: payloadForTest()}); err == nil {
		t.Fatal("non-2xx must error")
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Model: "m"}, logx.Nop())
	if _, err := c.Generate(context.Background(), Request{Occurrence: payloadForTest()}); err == nil {
		t.Fatal("response without text must error")
	}
}

func TestGenerateUnconfigured(t *testing.T) {
	c := New(Config{}, logx.Nop())
	if c.Configured() {
		t.Fatal("empty base URL means unconfigured")
	}
	if _, err := c.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("unconfigured client must error")
	}
}
