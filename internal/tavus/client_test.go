package tavus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("http://example.com:1234/v2/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/v2" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("tavusapi.com/v2")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient("", "  "); err == nil {
		t.Fatalf("NewClient returned nil error, want error for empty key")
	}
}

func TestClient_FetchesEndpointsAndSendsAuth(t *testing.T) {
	t.Parallel()

	var gotKey, gotUserAgent string
	var gotReplicaQuery, gotPersonaQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/v2/replicas":
			gotReplicaQuery = r.URL.Query().Get("verbose")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []Replica{{ReplicaID: "r1", ReplicaName: "Anna", ReplicaType: "user"}},
			})
		case "/v2/personas":
			gotPersonaQuery = r.URL.Query().Get("persona_type")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []Persona{{PersonaID: "p1", PersonaName: "Sales Agent"}},
			})
		case "/v2/videos":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []Video{{VideoID: "v1", VideoName: "Intro", Status: "ready"}},
			})
		case "/v2/conversations":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []Conversation{{ConversationID: "c1", Status: "active"}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/v2", "test-key")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	replicas, err := c.ListReplicas(ctx)
	if err != nil {
		t.Fatalf("ListReplicas returned error: %v", err)
	}
	if len(replicas) != 1 || replicas[0].ReplicaID != "r1" {
		t.Fatalf("ListReplicas = %#v, want 1 replica r1", replicas)
	}
	if gotReplicaQuery != "true" {
		t.Fatalf("verbose query = %q, want true", gotReplicaQuery)
	}

	personas, err := c.ListPersonas(ctx, "user")
	if err != nil {
		t.Fatalf("ListPersonas returned error: %v", err)
	}
	if len(personas) != 1 || personas[0].PersonaID != "p1" {
		t.Fatalf("ListPersonas = %#v, want 1 persona p1", personas)
	}
	if gotPersonaQuery != "user" {
		t.Fatalf("persona_type query = %q, want user", gotPersonaQuery)
	}

	videos, err := c.ListVideos(ctx)
	if err != nil {
		t.Fatalf("ListVideos returned error: %v", err)
	}
	if len(videos) != 1 || videos[0].VideoID != "v1" {
		t.Fatalf("ListVideos = %#v, want 1 video v1", videos)
	}

	conversations, err := c.ListConversations(ctx)
	if err != nil {
		t.Fatalf("ListConversations returned error: %v", err)
	}
	if len(conversations) != 1 || conversations[0].ConversationID != "c1" {
		t.Fatalf("ListConversations = %#v, want 1 conversation c1", conversations)
	}

	if gotKey != "test-key" {
		t.Fatalf("x-api-key = %q, want test-key", gotKey)
	}
	if gotUserAgent == "" || !strings.HasPrefix(gotUserAgent, "tavu/") {
		t.Fatalf("User-Agent = %q, want tavu/*", gotUserAgent)
	}
}

func TestClient_MutationsUseExpectedRoutes(t *testing.T) {
	t.Parallel()

	type call struct {
		method string
		path   string
		body   string
	}
	var calls []call

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		calls = append(calls, call{method: r.Method, path: r.URL.Path, body: string(raw)})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{}"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/v2", "test-key")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if err := c.RenameReplica(ctx, "r1", "New Name"); err != nil {
		t.Fatalf("RenameReplica returned error: %v", err)
	}
	if err := c.DeleteReplica(ctx, "r1"); err != nil {
		t.Fatalf("DeleteReplica returned error: %v", err)
	}
	if err := c.PatchPersona(ctx, "p1", map[string]any{"persona_name": "Updated"}); err != nil {
		t.Fatalf("PatchPersona returned error: %v", err)
	}
	if err := c.EndConversation(ctx, "c1"); err != nil {
		t.Fatalf("EndConversation returned error: %v", err)
	}
	if _, err := c.GenerateVideo(ctx, GenerateVideoRequest{VideoName: "Intro", ReplicaID: "r1", Script: "hi"}); err != nil {
		t.Fatalf("GenerateVideo returned error: %v", err)
	}

	want := []call{
		{"PATCH", "/v2/replicas/r1", `{"replica_name":"New Name"}`},
		{"DELETE", "/v2/replicas/r1", ""},
		{"PATCH", "/v2/personas/p1", `{"persona_name":"Updated"}`},
		{"POST", "/v2/conversations/c1/end", ""},
		{"POST", "/v2/videos", `{"video_name":"Intro","replica_id":"r1","script":"hi"}`},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %d, want %d", len(calls), len(want))
	}
	for i, w := range want {
		if calls[i].method != w.method || calls[i].path != w.path {
			t.Fatalf("call %d = %s %s, want %s %s", i, calls[i].method, calls[i].path, w.method, w.path)
		}
		if w.body != "" && calls[i].body != w.body {
			t.Fatalf("call %d body = %q, want %q", i, calls[i].body, w.body)
		}
	}
}

func TestClient_HTTPErrorIncludesStatusAndBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/v2", "bad-key")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListReplicas(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 401") {
		t.Fatalf("ListReplicas error = %v, want status 401 error", err)
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("ListReplicas error = %v, want body detail", err)
	}
}

func TestClient_IDRequiredValidation(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", "k")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if err := c.DeleteReplica(ctx, " "); err == nil {
		t.Fatalf("DeleteReplica returned nil error, want id required")
	}
	if err := c.RenameVideo(ctx, "", "x"); err == nil {
		t.Fatalf("RenameVideo returned nil error, want id required")
	}
	if err := c.PatchPersona(ctx, "", map[string]any{"persona_name": "x"}); err == nil {
		t.Fatalf("PatchPersona returned nil error, want id required")
	}
	if err := c.EndConversation(ctx, ""); err == nil {
		t.Fatalf("EndConversation returned nil error, want id required")
	}
	if _, err := c.GetReplica(ctx, ""); err == nil {
		t.Fatalf("GetReplica returned nil error, want id required")
	}
}
