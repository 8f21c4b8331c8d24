package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jmcalero-dev/Vectora/internal/logging"
)

// PowerPointExtractor walks the pptx package directly: slides in order, a
// header marker per slide, then the text of every text-bearing shape. The
// generic converters flatten the deck into one blob and lose slide
// boundaries, so the XML is read here instead.
type PowerPointExtractor struct {
	logger *logging.Logger
}

func NewPowerPointExtractor(logger *logging.Logger) *PowerPointExtractor {
	return &PowerPointExtractor{logger: logger}
}

var slidePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func (e *PowerPointExtractor) Extract(ctx context.Context, data []byte) Fragment {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Warnw("pptx open failed", "error", err)
		return None()
	}

	type slideFile struct {
		num  int
		file *zip.File
	}
	var slides []slideFile
	for _, f := range zr.File {
		m := slidePattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		slides = append(slides, slideFile{num: n, file: f})
	}
	if len(slides) == 0 {
		e.logger.Warnw("pptx has no slides")
		return None()
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var b strings.Builder
	for _, s := range slides {
		rc, err := s.file.Open()
		if err != nil {
			e.logger.Warnw("pptx slide open failed", "slide", s.num, "error", err)
			continue
		}
		lines, err := slideText(rc)
		rc.Close()
		if err != nil {
			e.logger.Warnw("pptx slide parse failed", "slide", s.num, "error", err)
			continue
		}

		b.WriteString(fmt.Sprintf("--- Slide %d ---\n", s.num))
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if strings.TrimSpace(b.String()) == "" {
		return None()
	}
	return TextFragment(b.String())
}

// slideText streams one slide's XML and returns one line per paragraph of
// every text-bearing shape. Runs (<a:t>) within a paragraph (<a:p>) are
// concatenated; empty paragraphs are skipped.
func slideText(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		lines     []string
		paragraph strings.Builder
		inText    bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if s := strings.TrimSpace(paragraph.String()); s != "" {
					lines = append(lines, s)
				}
				paragraph.Reset()
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}
	return lines, nil
}
