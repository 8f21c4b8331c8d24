package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jmcalero-dev/Vectora/internal/core"
)

// EmbedInputCap is the maximum number of characters submitted to the
// embedding model. Longer inputs are tail-cut (the prefix is kept) to respect
// the collaborator's input limit and keep per-record cost bounded.
const EmbedInputCap = 8000

type GeminiEmbedder struct {
	client    *genai.Client
	modelName string
}

func NewGeminiEmbedder(ctx context.Context, apiKey, modelName string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "text-embedding-004"
	}
	return &GeminiEmbedder{client: cl, modelName: modelName}, nil
}

func (g *GeminiEmbedder) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// EmbedText embeds a single text, capped at EmbedInputCap characters.
// Empty input is an error: the collaborator rejects it, and the caller must
// leave the record unprocessed rather than store a meaningless vector.
func (g *GeminiEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	text = capInput(text)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("embed: empty input")
	}

	em := g.client.EmbeddingModel(g.modelName)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if resp == nil || resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini embed: empty embedding in response")
	}
	return resp.Embedding.Values, nil
}

func capInput(s string) string {
	r := []rune(s)
	if len(r) <= EmbedInputCap {
		return s
	}
	return string(r[:EmbedInputCap])
}

var _ core.Embedder = (*GeminiEmbedder)(nil)
