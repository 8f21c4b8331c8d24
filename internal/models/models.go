package models

import (
	"time"
)

// Message is one inbound operational message captured from a monitored group.
// Rows are created by the upstream ingestion service; this worker only ever
// fills Embedding and Processed, and only once per row.
type Message struct {
	ID            string    `db:"id" json:"id"`
	GroupID       string    `db:"group_id" json:"group_id"`
	SentAt        time.Time `db:"sent_at" json:"sent_at"`
	Sender        string    `db:"sender" json:"sender"`
	TextContent   string    `db:"text_content" json:"text_content"`
	AttachmentURL string    `db:"attachment_url" json:"attachment_url,omitempty"` // absolute URL or bucket key
	IsImage       bool      `db:"is_image" json:"is_image"`                       // upstream hint, not authoritative
	Embedding     []float32 `db:"embedding" json:"-"`                             // pgvector column; nil = not yet processed
	Processed     bool      `db:"processed" json:"processed"`
}

// HasAttachment reports whether the message references a binary object.
func (m *Message) HasAttachment() bool {
	return m.AttachmentURL != ""
}
