package extract

import (
	"context"

	"github.com/jmcalero-dev/Vectora/internal/core"
	"github.com/jmcalero-dev/Vectora/internal/logging"
)

// captionInstruction is the fixed prompt sent with every standalone image.
const captionInstruction = "Describe this image concisely in at most 100 words. " +
	"Mention any visible text, equipment identifiers, or visible problems (damage, leaks, unsafe conditions)."

// ImageExtractor captions an image through the vision collaborator.
type ImageExtractor struct {
	captioner core.Captioner
	logger    *logging.Logger
}

func NewImageExtractor(captioner core.Captioner, logger *logging.Logger) *ImageExtractor {
	return &ImageExtractor{captioner: captioner, logger: logger}
}

func (e *ImageExtractor) Extract(ctx context.Context, data []byte) Fragment {
	caption, err := e.captioner.Caption(ctx, data, captionInstruction)
	if err != nil {
		e.logger.Warnw("image caption failed", "error", err)
		return None()
	}
	return TextFragment("[image] " + caption)
}
