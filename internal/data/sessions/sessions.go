// Package sessions reads agent session logs: one JSONL file per session,
// a header record first, then timestamped message events.
package sessions

// Record is one raw JSONL line. The first record of a file is the header
// (carrying cwd); later records are message events.
type Record struct {
	Type      string   `json:"type,omitempty"`
	SessionID string   `json:"sessionId,omitempty"`
	Cwd       string   `json:"cwd,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	Model     string   `json:"model,omitempty"`
	Usage     Usage    `json:"usage,omitempty"`
	CostUSD   *float64 `json:"costUSD,omitempty"`
}

// Usage carries the per-event token counts.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Event is one parsed message event.
type Event struct {
	Timestamp    int64 // Unix seconds
	Model        string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	HasCost      bool
}

// Session is one fully parsed session log.
type Session struct {
	Path      string
	SessionID string
	Cwd       string
	Events    []Event
}
