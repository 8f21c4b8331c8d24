package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcalero-dev/Vectora/internal/logging"
)

func buildDeck(t *testing.T, slides ...[]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, paragraphs := range slides {
		w, err := zw.Create(fmt.Sprintf("ppt/slides/slide%d.xml", i+1))
		require.NoError(t, err)

		var b strings.Builder
		b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree>`)
		for _, p := range paragraphs {
			b.WriteString(`<p:sp><p:txBody><a:p><a:r><a:t>`)
			b.WriteString(p)
			b.WriteString(`</a:t></a:r></a:p></p:txBody></p:sp>`)
		}
		b.WriteString(`</p:spTree></p:cSld></p:sld>`)
		_, err = w.Write([]byte(b.String()))
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestPowerPointExtractSlideOrder(t *testing.T) {
	data := buildDeck(t,
		[]string{"Kickoff agenda", "Safety moment"},
		[]string{"Milestones Q3"},
	)

	e := NewPowerPointExtractor(logging.NewNop())
	frag := e.Extract(context.Background(), data)
	require.True(t, frag.OK)

	assert.Contains(t, frag.Text, "--- Slide 1 ---")
	assert.Contains(t, frag.Text, "Kickoff agenda")
	assert.Contains(t, frag.Text, "Safety moment")
	assert.Contains(t, frag.Text, "--- Slide 2 ---")
	assert.Contains(t, frag.Text, "Milestones Q3")

	// Slide 1 content precedes slide 2.
	assert.Less(t, strings.Index(frag.Text, "Kickoff agenda"), strings.Index(frag.Text, "Milestones Q3"))
}

func TestPowerPointExtractEmptyShapesSkipped(t *testing.T) {
	data := buildDeck(t, []string{"", "  ", "Actual content"})

	e := NewPowerPointExtractor(logging.NewNop())
	frag := e.Extract(context.Background(), data)
	require.True(t, frag.OK)

	lines := strings.Split(strings.TrimRight(frag.Text, "\n"), "\n")
	assert.Equal(t, []string{"--- Slide 1 ---", "Actual content"}, lines)
}

func TestPowerPointExtractMalformed(t *testing.T) {
	e := NewPowerPointExtractor(logging.NewNop())

	frag := e.Extract(context.Background(), []byte("not a zip archive"))
	assert.False(t, frag.OK)
}

func TestPowerPointExtractZipWithoutSlides(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("docProps/core.xml")
	require.NoError(t, err)
	_, _ = w.Write([]byte("<x/>"))
	require.NoError(t, zw.Close())

	e := NewPowerPointExtractor(logging.NewNop())
	frag := e.Extract(context.Background(), buf.Bytes())
	assert.False(t, frag.OK)
}
