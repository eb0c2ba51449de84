package tavus

import (
	"strings"
	"testing"
	"time"
)

func TestReplica_TrainingPercent(t *testing.T) {
	cases := []struct {
		progress string
		want     int
	}{
		{"100/100", 100},
		{"50/100", 50},
		{"1/3", 33},
		{"", 0},
		{"garbage", 0},
		{"5/0", 0},
	}
	for _, tc := range cases {
		r := Replica{TrainingProgress: tc.progress}
		if got := r.TrainingPercent(); got != tc.want {
			t.Fatalf("TrainingPercent(%q) = %d, want %d", tc.progress, got, tc.want)
		}
	}
}

func TestReplica_DisplayFormatters(t *testing.T) {
	r := Replica{
		ReplicaID:        "r9xz",
		ReplicaName:      "Anna",
		ReplicaType:      "user",
		Status:           "completed",
		TrainingProgress: "100/100",
		CreatedAt:        "2026-01-02T15:04:05Z",
	}

	short := r.DisplayShort()
	if !strings.Contains(short, "Anna") || !strings.Contains(short, "r9xz") || !strings.Contains(short, "completed") {
		t.Fatalf("DisplayShort = %q, want name, id and status", short)
	}
	if strings.Contains(short, "\n") {
		t.Fatalf("DisplayShort = %q, want single line", short)
	}

	verbose := r.DisplayVerbose()
	for _, want := range []string{"ID: r9xz", "Type: user", "Training Percentage: 100%"} {
		if !strings.Contains(verbose, want) {
			t.Fatalf("DisplayVerbose = %q, want it to contain %q", verbose, want)
		}
	}

	if got := r.CreatedTime(); !got.Equal(time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)) {
		t.Fatalf("CreatedTime = %v, want parsed RFC3339", got)
	}
}

func TestVideo_ScriptPreview(t *testing.T) {
	v := Video{Data: map[string]any{"script": strings.Repeat("a", 30)}}
	if got := v.ScriptPreview(10); got != strings.Repeat("a", 10)+"..." {
		t.Fatalf("ScriptPreview = %q, want truncated with ellipsis", got)
	}
	if got := (Video{}).ScriptPreview(10); got != "No script" {
		t.Fatalf("ScriptPreview on empty = %q, want placeholder", got)
	}
}

func TestVideo_DetailFieldsOmitEmptyURLs(t *testing.T) {
	v := Video{VideoID: "v1", VideoName: "Intro", Status: "ready", HostedURL: "https://x/v1"}
	var labels []string
	for _, f := range v.DetailFields() {
		labels = append(labels, f.Label)
	}
	joined := strings.Join(labels, ",")
	if !strings.Contains(joined, "Hosted URL") {
		t.Fatalf("DetailFields labels = %v, want Hosted URL present", labels)
	}
	if strings.Contains(joined, "Download URL") {
		t.Fatalf("DetailFields labels = %v, want empty Download URL omitted", labels)
	}
}

func TestPersona_DisplayShortMentionsReplicaBinding(t *testing.T) {
	bound := Persona{PersonaID: "p1", PersonaName: "Agent", DefaultReplicaID: "r1"}
	if got := bound.DisplayShort(); !strings.Contains(got, "replica r1") {
		t.Fatalf("DisplayShort = %q, want replica binding", got)
	}
	unbound := Persona{PersonaID: "p2", PersonaName: "Agent"}
	if got := unbound.DisplayShort(); !strings.Contains(got, "no default replica") {
		t.Fatalf("DisplayShort = %q, want no-replica marker", got)
	}
}

func TestConversation_IsActive(t *testing.T) {
	if !(Conversation{Status: "active"}).IsActive() {
		t.Fatalf("IsActive = false for active conversation")
	}
	if (Conversation{Status: "ended"}).IsActive() {
		t.Fatalf("IsActive = true for ended conversation")
	}
}
