package core

import "context"

// Embedder converts text into a fixed-dimension semantic vector.
// Implementations must propagate transport/inference errors; a failed call
// never yields a zero vector.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Captioner produces a short natural-language description of an image from
// its raw bytes and an instruction string.
type Captioner interface {
	Caption(ctx context.Context, image []byte, instruction string) (string, error)
}
