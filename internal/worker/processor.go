package worker

import (
	"context"
	"fmt"

	"github.com/jmcalero-dev/Vectora/internal/core/attachment"
	"github.com/jmcalero-dev/Vectora/internal/core/extract"
	"github.com/jmcalero-dev/Vectora/internal/models"
)

// processOne runs the full pipeline for a single record. Extraction problems
// (unknown kind, download failure, malformed binary) degrade to "original
// text only" and never fail the record; embedding and persistence errors do,
// leaving the record pending for the next cycle.
func (w *Worker) processOne(ctx context.Context, msg *models.Message) error {
	frag := extract.None()

	if msg.HasAttachment() {
		kind := attachment.Detect(msg.AttachmentURL, "")
		if kind == attachment.KindUnknown && msg.IsImage {
			// The upstream ingester flags camera uploads that land without a
			// recognizable extension.
			kind = attachment.KindImage
		}

		if kind != attachment.KindUnknown {
			data, err := w.fetcher.Fetch(ctx, msg.AttachmentURL)
			if err != nil {
				w.logger.Warnw("attachment download failed, keeping original text",
					"message_id", msg.ID, "kind", kind, "error", err)
			} else {
				frag = w.extractors.Extract(ctx, kind, data)
			}
		}
	}

	text := assemble(msg.TextContent, frag)

	vector, err := w.embedder.EmbedText(ctx, text)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}

	if err := w.store.SaveEmbedding(ctx, msg.ID, vector); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

// assemble merges the original message text with the extracted fragment.
// No truncation happens here: the embedder applies its own input cap as a
// tail cut, so the original text is never dropped in favor of extracted
// content.
func assemble(original string, frag extract.Fragment) string {
	if !frag.OK || frag.Text == "" {
		return original
	}
	if original == "" {
		return frag.Text
	}
	return original + "\n\n" + frag.Text
}
