// Package hub publishes aggregated results to a dataset-hosting hub
// (Hugging Face Hub or anything speaking its repo/commit API).
package hub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/signalnine/scorecard/internal/result"
)

const (
	// DefaultEndpoint is the public Hugging Face Hub.
	DefaultEndpoint = "https://huggingface.co"

	// DefaultBranch is the revision commits land on.
	DefaultBranch = "main"

	datasetPath = "data/train.jsonl"
)

// UploadError reports a failed dataset publish. The hub is tried
// exactly once; any failure aborts the run.
type UploadError struct {
	RepoID  string
	Status  int
	Message string
}

func (e *UploadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("uploading to %s: hub returned %d: %s", e.RepoID, e.Status, e.Message)
	}
	return fmt.Sprintf("uploading to %s: %s", e.RepoID, e.Message)
}

type Client struct {
	client  *resty.Client
	branch  string
	private bool
}

// Options configure the client. Zero values fall back to the public
// hub, the main branch, and a public dataset.
type Options struct {
	Endpoint string
	Token    string
	Branch   string
	Private  bool
}

func NewClient(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Branch == "" {
		opts.Branch = DefaultBranch
	}
	client := resty.New().SetBaseURL(opts.Endpoint)
	if opts.Token != "" {
		client.SetAuthToken(opts.Token)
	}
	return &Client{client: client, branch: opts.Branch, private: opts.Private}
}

// Push publishes the records as a JSON-lines dataset under repoID,
// creating the dataset repo first if it does not exist. One attempt,
// no retry; the remote side owns versioning.
func (c *Client) Push(ctx context.Context, repoID string, set result.ResultSet) error {
	if err := c.ensureRepo(ctx, repoID); err != nil {
		return err
	}
	data, err := encodeJSONL(set)
	if err != nil {
		return &UploadError{RepoID: repoID, Message: fmt.Sprintf("encoding records: %v", err)}
	}
	return c.commit(ctx, repoID, datasetPath, data)
}

func (c *Client) ensureRepo(ctx context.Context, repoID string) error {
	body := map[string]any{
		"type":    "dataset",
		"name":    repoID,
		"private": c.private,
	}
	if org, name, ok := strings.Cut(repoID, "/"); ok {
		body["organization"] = org
		body["name"] = name
	}

	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/api/repos/create")
	if err != nil {
		return &UploadError{RepoID: repoID, Message: err.Error()}
	}
	// 409 means the repo already exists, which is fine: the commit
	// below overwrites the dataset file in place.
	if !res.IsSuccess() && res.StatusCode() != 409 {
		return &UploadError{RepoID: repoID, Status: res.StatusCode(), Message: hubMessage(res)}
	}
	return nil
}

// commit writes one file through the hub's NDJSON commit API.
func (c *Client) commit(ctx context.Context, repoID, path string, content []byte) error {
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.Encode(commitOp{
		Key:   "header",
		Value: map[string]any{"summary": "Update aggregated evaluation results"},
	})
	enc.Encode(commitOp{
		Key: "file",
		Value: map[string]any{
			"path":     path,
			"content":  base64.StdEncoding.EncodeToString(content),
			"encoding": "base64",
		},
	})

	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-ndjson").
		SetBody(body.Bytes()).
		Post(fmt.Sprintf("/api/datasets/%s/commit/%s", repoID, c.branch))
	if err != nil {
		return &UploadError{RepoID: repoID, Message: err.Error()}
	}
	if !res.IsSuccess() {
		return &UploadError{RepoID: repoID, Status: res.StatusCode(), Message: hubMessage(res)}
	}
	return nil
}

type commitOp struct {
	Key   string         `json:"key"`
	Value map[string]any `json:"value"`
}

func encodeJSONL(set result.ResultSet) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, rec := range set {
		if err := enc.Encode(rec); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func hubMessage(res *resty.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(res.Body(), &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	msg := strings.TrimSpace(res.String())
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		msg = res.Status()
	}
	return msg
}
