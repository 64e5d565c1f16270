// Package comfy drives a ComfyUI-compatible server: it queues a patched
// workflow, waits for the job to show up in the history endpoint and pulls
// the produced artifact.
package comfy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"comfygen/internal/infra"
	"comfygen/internal/workflow"
)

const (
	DefaultBaseURL      = "http://127.0.0.1:8188"
	DefaultFrames       = 24
	DefaultPollInterval = time.Second
	DefaultTimeout      = 10 * time.Minute
	// MinPollInterval is the floor applied to any configured poll interval.
	MinPollInterval = 100 * time.Millisecond

	defaultArtifactType = "output"
	maxErrorBody        = 512
)

// Options configures the job client.
type Options struct {
	BaseURL        string
	TemplatePath   string
	Mapping        *workflow.Mapping
	PollInterval   time.Duration
	Timeout        time.Duration
	RequestTimeout time.Duration
	ClientID       string
	HTTPClient     *http.Client
	Logger         *infra.Logger
}

// Client performs HTTP calls against a single ComfyUI host. It holds only
// immutable configuration and is safe for concurrent use.
type Client struct {
	baseURL      string
	apiBase      string
	templatePath string
	mapping      workflow.Mapping
	pollInterval time.Duration
	timeout      time.Duration
	clientID     string
	httpClient   *http.Client
	logger       *infra.Logger
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("comfy: invalid base url %q", opts.BaseURL)
	}
	mapping := workflow.DefaultMapping()
	if opts.Mapping != nil {
		mapping = *opts.Mapping
	}
	if err := mapping.Validate(); err != nil {
		return nil, fmt.Errorf("comfy: %w", err)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	if poll < MinPollInterval {
		poll = MinPollInterval
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	templatePath := strings.TrimSpace(opts.TemplatePath)
	if templatePath == "" {
		templatePath = workflow.DefaultTemplatePath(".")
	}
	clientID := strings.TrimSpace(opts.ClientID)
	if clientID == "" {
		clientID = uuid.NewString()
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		baseURL:      baseURL,
		apiBase:      baseURL + "/api",
		templatePath: templatePath,
		mapping:      mapping,
		pollInterval: poll,
		timeout:      timeout,
		clientID:     clientID,
		httpClient:   httpClient,
		logger:       logger,
	}, nil
}

// BaseURL returns the configured host.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PollInterval returns the effective delay between history polls.
func (c *Client) PollInterval() time.Duration {
	return c.pollInterval
}

// Timeout returns the bound applied to waiting for a job.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Ping checks that the server answers on /api/system_stats.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/system_stats", nil)
	if err != nil {
		return fmt.Errorf("comfy: build ping request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("comfy: ping: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("comfy: ping status %d", resp.StatusCode)
	}
	return nil
}

// Queue submits a workflow and returns the job handle.
func (c *Client) Queue(ctx context.Context, tpl workflow.Template) (string, error) {
	body, err := json.Marshal(queueRequest{Prompt: tpl, ClientID: c.clientID})
	if err != nil {
		return "", errorf(KindSubmission, "queue", "encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/queue", bytes.NewReader(body))
	if err != nil {
		return "", errorf(KindSubmission, "queue", "build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errorf(KindSubmission, "queue", "http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errorf(KindSubmission, "queue", "read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", errorf(KindSubmission, "queue", "status %d: %s", resp.StatusCode, truncate(raw))
	}
	var decoded queueResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", errorf(KindSubmission, "queue", "decode response: %w", err)
	}
	if len(decoded.NodeErrors) > 0 {
		return "", errorf(KindSubmission, "queue", "server rejected nodes: %s", truncate(raw))
	}
	promptID := strings.TrimSpace(decoded.PromptID)
	if promptID == "" {
		return "", errorf(KindSubmission, "queue", "response has no prompt_id")
	}
	c.logger.Debug().
		Str("prompt_id", promptID).
		Int("queue_number", decoded.Number).
		Msg("comfy: queued prompt")
	return promptID, nil
}

// History fetches the history entry for promptID. The boolean reports
// whether the server knows the job as finished.
func (c *Client) History(ctx context.Context, promptID string) (*HistoryEntry, bool, error) {
	endpoint := c.apiBase + "/history/" + url.PathEscape(promptID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("comfy: build history request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("comfy: history request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("comfy: read history: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("comfy: history status %d: %s", resp.StatusCode, truncate(raw))
	}
	var decoded map[string]HistoryEntry
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, false, fmt.Errorf("comfy: decode history: %w", err)
	}
	entry, ok := decoded[promptID]
	if !ok {
		return nil, false, nil
	}
	return &entry, true, nil
}

// View downloads the bytes of an artifact.
func (c *Client) View(ctx context.Context, artifact Artifact) ([]byte, error) {
	kind := artifact.Type
	if kind == "" {
		kind = defaultArtifactType
	}
	params := url.Values{}
	params.Set("filename", artifact.Filename)
	params.Set("subfolder", artifact.Subfolder)
	params.Set("type", kind)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/view?"+params.Encode(), nil)
	if err != nil {
		return nil, errorf(KindArtifactFetch, "view", "build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errorf(KindArtifactFetch, "view", "http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errorf(KindArtifactFetch, "view", "status %d: %s", resp.StatusCode, truncate(raw))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errorf(KindArtifactFetch, "view", "read body: %w", err)
	}
	return data, nil
}

// FirstArtifact returns the first entry of the mapped output list.
func FirstArtifact(outputs Outputs, ref workflow.OutputRef) (Artifact, error) {
	node, ok := outputs[ref.Node]
	if !ok {
		return Artifact{}, errorf(KindOutputNotFound, "outputs", "output node %q missing", ref.Node)
	}
	rawList, ok := node[ref.List]
	if !ok {
		return Artifact{}, errorf(KindOutputNotFound, "outputs", "output node %q has no %q list", ref.Node, ref.List)
	}
	var list []Artifact
	if err := json.Unmarshal(rawList, &list); err != nil {
		return Artifact{}, errorf(KindOutputNotFound, "outputs", "decode %q list: %w", ref.List, err)
	}
	if len(list) == 0 {
		return Artifact{}, errorf(KindOutputNotFound, "outputs", "output node %q list %q is empty", ref.Node, ref.List)
	}
	first := list[0]
	if strings.TrimSpace(first.Filename) == "" {
		return Artifact{}, errorf(KindOutputNotFound, "outputs", "first artifact of node %q has no filename", ref.Node)
	}
	if first.Type == "" {
		first.Type = defaultArtifactType
	}
	return first, nil
}

func truncate(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
