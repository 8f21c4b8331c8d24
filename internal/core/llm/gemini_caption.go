package llm

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jmcalero-dev/Vectora/internal/core"
)

type GeminiCaptioner struct {
	client    *genai.Client
	modelName string
}

func NewGeminiCaptioner(ctx context.Context, apiKey, modelName string) (*GeminiCaptioner, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiCaptioner{client: cl, modelName: modelName}, nil
}

func (g *GeminiCaptioner) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Caption sends the image bytes with the instruction to the vision model and
// returns the caption text. An empty response is an error so that callers
// degrade to "no extracted content" instead of storing a blank caption.
func (g *GeminiCaptioner) Caption(ctx context.Context, image []byte, instruction string) (string, error) {
	m := g.client.GenerativeModel(g.modelName)

	resp, err := m.GenerateContent(ctx, genai.ImageData(imageFormat(image), image), genai.Text(instruction))
	if err != nil {
		return "", fmt.Errorf("gemini caption: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini caption: no candidates in response")
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	caption := strings.TrimSpace(b.String())
	if caption == "" {
		return "", fmt.Errorf("gemini caption: empty caption")
	}
	return caption, nil
}

// imageFormat sniffs the image subtype ("jpeg", "png", ...) expected by the
// genai image part. Unknown content falls back to jpeg, which is what the
// video frame path always produces.
func imageFormat(data []byte) string {
	ct := http.DetectContentType(data)
	if sub, ok := strings.CutPrefix(ct, "image/"); ok {
		return sub
	}
	return "jpeg"
}

var _ core.Captioner = (*GeminiCaptioner)(nil)
