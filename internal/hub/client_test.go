package hub_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/signalnine/scorecard/internal/hub"
	"github.com/signalnine/scorecard/internal/result"
)

var testSet = result.ResultSet{
	{"model_name": "modelX", "task1": 0.5},
}

func TestPush(t *testing.T) {
	var createBody map[string]any
	var commitAuth string
	var commitLines []string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/repos/create", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&createBody)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/datasets/orgA/eval-results/commit/main", func(w http.ResponseWriter, r *http.Request) {
		commitAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		sc := bufio.NewScanner(bytes.NewReader(body))
		for sc.Scan() {
			commitLines = append(commitLines, sc.Text())
		}
		io.WriteString(w, `{"commitUrl": "/commit/abc"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := hub.NewClient(hub.Options{Endpoint: srv.URL, Token: "tok"})
	if err := client.Push(context.Background(), "orgA/eval-results", testSet); err != nil {
		t.Fatalf("Push: %v", err)
	}

	if createBody["type"] != "dataset" || createBody["organization"] != "orgA" || createBody["name"] != "eval-results" {
		t.Errorf("create body: got %v", createBody)
	}
	if commitAuth != "Bearer tok" {
		t.Errorf("auth header: got %q", commitAuth)
	}
	if len(commitLines) != 2 {
		t.Fatalf("commit ops: got %d lines, want header + file", len(commitLines))
	}

	var fileOp struct {
		Key   string `json:"key"`
		Value struct {
			Path    string `json:"path"`
			Content string `json:"content"`
		} `json:"value"`
	}
	if err := json.Unmarshal([]byte(commitLines[1]), &fileOp); err != nil {
		t.Fatalf("parsing file op: %v", err)
	}
	if fileOp.Key != "file" || fileOp.Value.Path != "data/train.jsonl" {
		t.Errorf("file op: got %+v", fileOp)
	}
	content, err := base64.StdEncoding.DecodeString(fileOp.Value.Content)
	if err != nil {
		t.Fatalf("decoding content: %v", err)
	}
	if !strings.Contains(string(content), `"model_name":"modelX"`) {
		t.Errorf("dataset content: got %q", content)
	}
}

func TestPushRepoAlreadyExists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/repos/create", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	mux.HandleFunc("POST /api/datasets/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := hub.NewClient(hub.Options{Endpoint: srv.URL})
	if err := client.Push(context.Background(), "orgA/eval-results", testSet); err != nil {
		t.Fatalf("Push after 409: %v", err)
	}
}

func TestPushCommitRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/repos/create", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/datasets/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error": "write access denied"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := hub.NewClient(hub.Options{Endpoint: srv.URL})
	err := client.Push(context.Background(), "orgA/eval-results", testSet)

	var upErr *hub.UploadError
	if !errors.As(err, &upErr) {
		t.Fatalf("got %v, want *UploadError", err)
	}
	if upErr.Status != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", upErr.Status)
	}
	if !strings.Contains(upErr.Message, "write access denied") {
		t.Errorf("message: got %q", upErr.Message)
	}
	if upErr.RepoID != "orgA/eval-results" {
		t.Errorf("repo id: got %q", upErr.RepoID)
	}
}

func TestPushTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := hub.NewClient(hub.Options{Endpoint: srv.URL})
	err := client.Push(context.Background(), "orgA/eval-results", testSet)

	var upErr *hub.UploadError
	if !errors.As(err, &upErr) {
		t.Fatalf("got %v, want *UploadError", err)
	}
	if upErr.Status != 0 {
		t.Errorf("transport failures carry no status, got %d", upErr.Status)
	}
}
