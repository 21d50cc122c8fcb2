package domain

// GenerationTask is one frame of a generation batch, published to Kafka.
// SourceA/SourceB are data URIs or remote URLs of the two portraits.
type GenerationTask struct {
	ID         string  `json:"id"`
	SnapID     string  `json:"snap_id"`
	SourceA    string  `json:"source_a"`
	SourceB    string  `json:"source_b"`
	Style      StyleID `json:"style"`
	Prompt     string  `json:"prompt"`
	FrameIndex int     `json:"frame_index"`
	FrameCount int     `json:"frame_count"`
}

type GenerationResult struct {
	TaskID string     `json:"task_id"`
	SnapID string     `json:"snap_id"`
	Status SnapStatus `json:"status"`
	URL    string     `json:"url,omitempty"`
	Error  string     `json:"error,omitempty"`
}
