package tavus

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DetailField is one label/value pair of a resource's verbose detail view.
type DetailField struct {
	Label string
	Value string
}

// Replica mirrors a replica object from the Tavus API.
type Replica struct {
	ReplicaID         string `json:"replica_id"`
	ReplicaName       string `json:"replica_name"`
	ReplicaType       string `json:"replica_type"`
	Status            string `json:"status"`
	TrainingProgress  string `json:"training_progress"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
	ThumbnailVideoURL string `json:"thumbnail_video_url,omitempty"`
}

// IsUser reports whether the replica was created by the account holder.
// Only user replicas may be renamed or deleted.
func (r Replica) IsUser() bool {
	return r.ReplicaType == "user"
}

// IsCompleted reports whether replica training has finished.
func (r Replica) IsCompleted() bool {
	return r.Status == "completed"
}

// IsTraining reports whether the replica is still training.
func (r Replica) IsTraining() bool {
	return r.Status == "training"
}

// TrainingPercent extracts a percentage from the "current/total" progress string.
func (r Replica) TrainingPercent() int {
	current, total, ok := strings.Cut(r.TrainingProgress, "/")
	if !ok {
		return 0
	}
	cur, err := strconv.Atoi(strings.TrimSpace(current))
	if err != nil {
		return 0
	}
	tot, err := strconv.Atoi(strings.TrimSpace(total))
	if err != nil || tot == 0 {
		return 0
	}
	return cur * 100 / tot
}

// CreatedTime returns the parsed creation timestamp, zero when unparseable.
func (r Replica) CreatedTime() time.Time {
	return parseTime(r.CreatedAt)
}

// UpdatedTime returns the parsed update timestamp, zero when unparseable.
func (r Replica) UpdatedTime() time.Time {
	return parseTime(r.UpdatedAt)
}

// DisplayShort returns the single-line menu row for the replica.
func (r Replica) DisplayShort() string {
	marker := statusMarker(r.IsCompleted(), r.IsTraining(), false)
	return fmt.Sprintf("%s %s (%s) - %s - %s", marker, r.ReplicaName, r.ReplicaID, r.Status, r.TrainingProgress)
}

// DisplayVerbose returns the multi-line detail text for the replica.
func (r Replica) DisplayVerbose() string {
	return joinFields(r.DetailFields())
}

// DetailFields returns the labelled fields shown on the replica detail screen.
func (r Replica) DetailFields() []DetailField {
	fields := []DetailField{
		{"ID", r.ReplicaID},
		{"Name", r.ReplicaName},
		{"Type", r.ReplicaType},
		{"Status", r.Status},
		{"Training Progress", r.TrainingProgress},
		{"Created", r.CreatedAt},
		{"Updated", r.UpdatedAt},
	}
	if r.ThumbnailVideoURL != "" {
		fields = append(fields, DetailField{"Thumbnail URL", r.ThumbnailVideoURL})
	}
	fields = append(fields, DetailField{"Training Percentage", fmt.Sprintf("%d%%", r.TrainingPercent())})
	return fields
}

// Persona mirrors a persona object from the Tavus API.
type Persona struct {
	PersonaID        string         `json:"persona_id"`
	PersonaName      string         `json:"persona_name"`
	DefaultReplicaID string         `json:"default_replica_id"`
	SystemPrompt     string         `json:"system_prompt,omitempty"`
	Context          string         `json:"context,omitempty"`
	Layers           map[string]any `json:"layers,omitempty"`
	CreatedAt        string         `json:"created_at"`
	UpdatedAt        string         `json:"updated_at"`
}

// HasDefaultReplica reports whether the persona is bound to a replica.
func (p Persona) HasDefaultReplica() bool {
	return strings.TrimSpace(p.DefaultReplicaID) != ""
}

// Layer returns the named pipeline layer config (llm, tts, stt, perception).
func (p Persona) Layer(name string) (map[string]any, bool) {
	raw, ok := p.Layers[name]
	if !ok {
		return nil, false
	}
	layer, ok := raw.(map[string]any)
	return layer, ok
}

// CreatedTime returns the parsed creation timestamp, zero when unparseable.
func (p Persona) CreatedTime() time.Time {
	return parseTime(p.CreatedAt)
}

// DisplayShort returns the single-line menu row for the persona.
func (p Persona) DisplayShort() string {
	replica := "no default replica"
	if p.HasDefaultReplica() {
		replica = "replica " + p.DefaultReplicaID
	}
	return fmt.Sprintf("%s (%s) - %s", p.PersonaName, p.PersonaID, replica)
}

// DisplayVerbose returns the multi-line detail text for the persona.
func (p Persona) DisplayVerbose() string {
	return joinFields(p.DetailFields())
}

// DetailFields returns the labelled fields shown on the persona detail screen.
func (p Persona) DetailFields() []DetailField {
	fields := []DetailField{
		{"ID", p.PersonaID},
		{"Name", p.PersonaName},
		{"Default Replica", p.DefaultReplicaID},
		{"Created", p.CreatedAt},
		{"Updated", p.UpdatedAt},
	}
	if p.SystemPrompt != "" {
		fields = append(fields, DetailField{"System Prompt", preview(p.SystemPrompt, 200)})
	}
	if p.Context != "" {
		fields = append(fields, DetailField{"Context", preview(p.Context, 200)})
	}
	for _, layer := range []string{"llm", "tts", "stt", "perception"} {
		if _, ok := p.Layer(layer); ok {
			fields = append(fields, DetailField{"Layer", layer})
		}
	}
	return fields
}

// Video mirrors a video object from the Tavus API.
type Video struct {
	VideoID          string         `json:"video_id"`
	VideoName        string         `json:"video_name"`
	Status           string         `json:"status"`
	StatusDetails    string         `json:"status_details,omitempty"`
	Data             map[string]any `json:"data,omitempty"`
	DownloadURL      string         `json:"download_url,omitempty"`
	StreamURL        string         `json:"stream_url,omitempty"`
	HostedURL        string         `json:"hosted_url,omitempty"`
	StillThumbnail   string         `json:"still_image_thumbnail_url,omitempty"`
	GIFThumbnail     string         `json:"gif_thumbnail_url,omitempty"`
	CreatedAt        string         `json:"created_at"`
	UpdatedAt        string         `json:"updated_at,omitempty"`
}

// IsCompleted reports whether video generation has finished.
func (v Video) IsCompleted() bool {
	return v.Status == "ready"
}

// IsProcessing reports whether the video is still generating.
func (v Video) IsProcessing() bool {
	return v.Status == "generating"
}

// IsFailed reports whether video generation failed.
func (v Video) IsFailed() bool {
	return v.Status == "error"
}

// Script returns the generation script stored in the data payload.
func (v Video) Script() string {
	script, _ := v.Data["script"].(string)
	return script
}

// ScriptPreview returns the script truncated to maxLen runes.
func (v Video) ScriptPreview(maxLen int) string {
	script := v.Script()
	if script == "" {
		return "No script"
	}
	return preview(script, maxLen)
}

// CreatedTime returns the parsed creation timestamp, zero when unparseable.
func (v Video) CreatedTime() time.Time {
	return parseTime(v.CreatedAt)
}

// DisplayShort returns the single-line menu row for the video.
func (v Video) DisplayShort() string {
	marker := statusMarker(v.IsCompleted(), v.IsProcessing(), v.IsFailed())
	return fmt.Sprintf("%s %s (%s) - %s", marker, v.VideoName, v.VideoID, v.Status)
}

// DisplayVerbose returns the multi-line detail text for the video.
func (v Video) DisplayVerbose() string {
	return joinFields(v.DetailFields())
}

// DetailFields returns the labelled fields shown on the video detail screen.
func (v Video) DetailFields() []DetailField {
	fields := []DetailField{
		{"ID", v.VideoID},
		{"Name", v.VideoName},
		{"Status", v.Status},
		{"Created", v.CreatedAt},
		{"Updated", v.UpdatedAt},
	}
	if v.StatusDetails != "" {
		fields = append(fields, DetailField{"Status Details", v.StatusDetails})
	}
	for _, opt := range []DetailField{
		{"Download URL", v.DownloadURL},
		{"Stream URL", v.StreamURL},
		{"Hosted URL", v.HostedURL},
		{"Still Thumbnail", v.StillThumbnail},
		{"GIF Thumbnail", v.GIFThumbnail},
	} {
		if opt.Value != "" {
			fields = append(fields, opt)
		}
	}
	if script := v.Script(); script != "" {
		fields = append(fields, DetailField{"Script", preview(script, 500)})
	}
	return fields
}

// Conversation mirrors a conversation object from the Tavus API.
type Conversation struct {
	ConversationID   string `json:"conversation_id"`
	ConversationName string `json:"conversation_name"`
	ConversationURL  string `json:"conversation_url"`
	CallbackURL      string `json:"callback_url,omitempty"`
	Status           string `json:"status"`
	ReplicaID        string `json:"replica_id"`
	PersonaID        string `json:"persona_id"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// IsActive reports whether the conversation can still be joined or ended.
func (c Conversation) IsActive() bool {
	return c.Status == "active"
}

// CreatedTime returns the parsed creation timestamp, zero when unparseable.
func (c Conversation) CreatedTime() time.Time {
	return parseTime(c.CreatedAt)
}

// DisplayShort returns the single-line menu row for the conversation.
func (c Conversation) DisplayShort() string {
	return fmt.Sprintf("%s (%s) - %s", c.ConversationName, c.ConversationID, c.Status)
}

// DisplayVerbose returns the multi-line detail text for the conversation.
func (c Conversation) DisplayVerbose() string {
	return joinFields(c.DetailFields())
}

// DetailFields returns the labelled fields shown on the conversation detail screen.
func (c Conversation) DetailFields() []DetailField {
	fields := []DetailField{
		{"ID", c.ConversationID},
		{"Name", c.ConversationName},
		{"URL", c.ConversationURL},
		{"Status", c.Status},
		{"Replica ID", c.ReplicaID},
		{"Persona ID", c.PersonaID},
		{"Created", c.CreatedAt},
		{"Updated", c.UpdatedAt},
	}
	if c.CallbackURL != "" {
		fields = append(fields, DetailField{"Callback URL", c.CallbackURL})
	}
	return fields
}

func statusMarker(done, busy, failed bool) string {
	switch {
	case done:
		return "✔"
	case busy:
		return "…"
	case failed:
		return "✘"
	default:
		return "•"
	}
}

func preview(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

func joinFields(fields []DetailField) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("  %s: %s", f.Label, f.Value))
	}
	return strings.Join(lines, "\n")
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
