package tavus

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
)

// API defines the operations the UI modules need from the Tavus service.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	ListReplicas(ctx context.Context) ([]Replica, error)
	GetReplica(ctx context.Context, replicaID string) (Replica, error)
	CreateReplica(ctx context.Context, req CreateReplicaRequest) (Replica, error)
	RenameReplica(ctx context.Context, replicaID, newName string) error
	DeleteReplica(ctx context.Context, replicaID string) error

	ListPersonas(ctx context.Context, personaType string) ([]Persona, error)
	CreatePersona(ctx context.Context, req CreatePersonaRequest) (Persona, error)
	PatchPersona(ctx context.Context, personaID string, patch map[string]any) error
	DeletePersona(ctx context.Context, personaID string) error

	ListVideos(ctx context.Context) ([]Video, error)
	GenerateVideo(ctx context.Context, req GenerateVideoRequest) (Video, error)
	RenameVideo(ctx context.Context, videoID, newName string) error
	DeleteVideo(ctx context.Context, videoID string) error

	ListConversations(ctx context.Context) ([]Conversation, error)
	CreateConversation(ctx context.Context, req CreateConversationRequest) (Conversation, error)
	EndConversation(ctx context.Context, conversationID string) error
	DeleteConversation(ctx context.Context, conversationID string) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the Tavus HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is the production Tavus v2 endpoint.
	DefaultBaseURL = "https://tavusapi.com/v2"

	defaultUserAgent = "tavu/0.1"
	requestTimeout   = 15 * time.Second
)

// NewClient builds a Client for the given base URL and API key. An empty
// baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is empty")
	}
	return &Client{
		baseURL: base,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// CreateReplicaRequest carries the fields for POST /replicas.
type CreateReplicaRequest struct {
	ReplicaName     string `json:"replica_name"`
	TrainVideoURL   string `json:"train_video_url"`
	ConsentVideoURL string `json:"consent_video_url"`
}

// CreatePersonaRequest carries the fields for POST /personas.
type CreatePersonaRequest struct {
	PersonaName      string `json:"persona_name"`
	SystemPrompt     string `json:"system_prompt"`
	Context          string `json:"context,omitempty"`
	DefaultReplicaID string `json:"default_replica_id,omitempty"`
}

// GenerateVideoRequest carries the fields for POST /videos.
type GenerateVideoRequest struct {
	VideoName string `json:"video_name"`
	ReplicaID string `json:"replica_id"`
	Script    string `json:"script"`
}

// CreateConversationRequest carries the fields for POST /conversations.
type CreateConversationRequest struct {
	ConversationName string `json:"conversation_name"`
	ReplicaID        string `json:"replica_id,omitempty"`
	PersonaID        string `json:"persona_id,omitempty"`
	CallbackURL      string `json:"callback_url,omitempty"`
}

// listEnvelope mirrors the {"data": [...]} wrapper Tavus list endpoints use.
type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// ListReplicas retrieves all replicas, including system ones, in verbose form.
func (c *Client) ListReplicas(ctx context.Context) ([]Replica, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "replicas", RawQuery: url.Values{"verbose": {"true"}}.Encode()}
	var payload listEnvelope[Replica]
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// GetReplica retrieves a single replica by id.
func (c *Client) GetReplica(ctx context.Context, replicaID string) (Replica, error) {
	if c == nil {
		return Replica{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(replicaID) == "" {
		return Replica{}, fmt.Errorf("replica id required")
	}
	rel := &url.URL{Path: "replicas/" + replicaID, RawQuery: url.Values{"verbose": {"true"}}.Encode()}
	var payload Replica
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return Replica{}, err
	}
	return payload, nil
}

// CreateReplica starts training a new replica.
func (c *Client) CreateReplica(ctx context.Context, req CreateReplicaRequest) (Replica, error) {
	if c == nil {
		return Replica{}, fmt.Errorf("client is nil")
	}
	var payload Replica
	rel := &url.URL{Path: "replicas"}
	if err := c.do(ctx, http.MethodPost, rel, req, &payload); err != nil {
		return Replica{}, err
	}
	return payload, nil
}

// RenameReplica updates a replica's name.
func (c *Client) RenameReplica(ctx context.Context, replicaID, newName string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(replicaID) == "" {
		return fmt.Errorf("replica id required")
	}
	rel := &url.URL{Path: "replicas/" + replicaID}
	body := map[string]string{"replica_name": newName}
	return c.do(ctx, http.MethodPatch, rel, body, nil)
}

// DeleteReplica removes a replica permanently.
func (c *Client) DeleteReplica(ctx context.Context, replicaID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(replicaID) == "" {
		return fmt.Errorf("replica id required")
	}
	rel := &url.URL{Path: "replicas/" + replicaID}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

// ListPersonas retrieves personas of the given type ("user" or "system").
// An empty personaType fetches without a type filter.
func (c *Client) ListPersonas(ctx context.Context, personaType string) ([]Persona, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if t := strings.TrimSpace(personaType); t != "" {
		values.Set("persona_type", t)
	}
	rel := &url.URL{Path: "personas", RawQuery: values.Encode()}
	var payload listEnvelope[Persona]
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// CreatePersona creates a new persona.
func (c *Client) CreatePersona(ctx context.Context, req CreatePersonaRequest) (Persona, error) {
	if c == nil {
		return Persona{}, fmt.Errorf("client is nil")
	}
	var payload Persona
	rel := &url.URL{Path: "personas"}
	if err := c.do(ctx, http.MethodPost, rel, req, &payload); err != nil {
		return Persona{}, err
	}
	return payload, nil
}

// PatchPersona updates the given fields of a persona.
func (c *Client) PatchPersona(ctx context.Context, personaID string, patch map[string]any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(personaID) == "" {
		return fmt.Errorf("persona id required")
	}
	rel := &url.URL{Path: "personas/" + personaID}
	return c.do(ctx, http.MethodPatch, rel, patch, nil)
}

// DeletePersona removes a persona permanently.
func (c *Client) DeletePersona(ctx context.Context, personaID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(personaID) == "" {
		return fmt.Errorf("persona id required")
	}
	rel := &url.URL{Path: "personas/" + personaID}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

// ListVideos retrieves all generated videos.
func (c *Client) ListVideos(ctx context.Context) ([]Video, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "videos"}
	var payload listEnvelope[Video]
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// GenerateVideo queues generation of a new video from a replica and a script.
func (c *Client) GenerateVideo(ctx context.Context, req GenerateVideoRequest) (Video, error) {
	if c == nil {
		return Video{}, fmt.Errorf("client is nil")
	}
	var payload Video
	rel := &url.URL{Path: "videos"}
	if err := c.do(ctx, http.MethodPost, rel, req, &payload); err != nil {
		return Video{}, err
	}
	return payload, nil
}

// RenameVideo updates a video's name.
func (c *Client) RenameVideo(ctx context.Context, videoID, newName string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(videoID) == "" {
		return fmt.Errorf("video id required")
	}
	rel := &url.URL{Path: "videos/" + videoID}
	body := map[string]string{"video_name": newName}
	return c.do(ctx, http.MethodPatch, rel, body, nil)
}

// DeleteVideo removes a video permanently.
func (c *Client) DeleteVideo(ctx context.Context, videoID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(videoID) == "" {
		return fmt.Errorf("video id required")
	}
	rel := &url.URL{Path: "videos/" + videoID}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

// ListConversations retrieves all conversations.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "conversations"}
	var payload listEnvelope[Conversation]
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// CreateConversation starts a new conversation with a replica and/or persona.
func (c *Client) CreateConversation(ctx context.Context, req CreateConversationRequest) (Conversation, error) {
	if c == nil {
		return Conversation{}, fmt.Errorf("client is nil")
	}
	var payload Conversation
	rel := &url.URL{Path: "conversations"}
	if err := c.do(ctx, http.MethodPost, rel, req, &payload); err != nil {
		return Conversation{}, err
	}
	return payload, nil
}

// EndConversation ends an active conversation without deleting it.
func (c *Client) EndConversation(ctx context.Context, conversationID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(conversationID) == "" {
		return fmt.Errorf("conversation id required")
	}
	rel := &url.URL{Path: "conversations/" + conversationID + "/end"}
	return c.do(ctx, http.MethodPost, rel, nil, nil)
}

// DeleteConversation removes a conversation permanently.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(conversationID) == "" {
		return fmt.Errorf("conversation id required")
	}
	rel := &url.URL{Path: "conversations/" + conversationID}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.resolve(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("x-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		detail := strings.TrimSpace(string(snippet))
		if detail == "" {
			return fmt.Errorf("api %s %s returned status %d", method, rel.Path, resp.StatusCode)
		}
		return fmt.Errorf("api %s %s returned status %d: %s", method, rel.Path, resp.StatusCode, detail)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// resolve joins rel onto the base URL, preserving the base path prefix (/v2).
func (c *Client) resolve(rel *url.URL) *url.URL {
	joined := *c.baseURL
	joined.Path = strings.TrimSuffix(c.baseURL.Path, "/") + "/" + rel.Path
	joined.RawQuery = rel.RawQuery
	return &joined
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
