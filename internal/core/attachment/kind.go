package attachment

import "strings"

// Kind is the closed classification of an attachment payload. It drives
// extractor selection; KindUnknown means "skip extraction, keep original
// text only" and is a value, never an error.
type Kind string

const (
	KindImage      Kind = "image"
	KindVideo      Kind = "video"
	KindPDF        Kind = "pdf"
	KindWord       Kind = "word"
	KindExcel      Kind = "excel"
	KindPowerPoint Kind = "powerpoint"
	KindUnknown    Kind = "unknown"
)

var mimeKinds = map[string]Kind{
	"image/jpeg":    KindImage,
	"image/png":     KindImage,
	"image/webp":    KindImage,
	"image/gif":     KindImage,
	"video/mp4":       KindVideo,
	"video/quicktime": KindVideo,
	"application/pdf": KindPDF,
	"application/msword": KindWord,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": KindWord,
	"application/vnd.ms-excel": KindExcel,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": KindExcel,
	"application/vnd.ms-powerpoint":                                             KindPowerPoint,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": KindPowerPoint,
}

// extKinds is checked in order. Matching is substring-based rather than
// suffix-based because storage platforms append query tokens and signatures
// after the extension (e.g. ".../report.pdf?token=...").
var extKinds = []struct {
	exts []string
	kind Kind
}{
	{[]string{".mp4", ".mov", ".avi", ".mkv", ".webm"}, KindVideo},
	{[]string{".jpg", ".jpeg", ".png", ".webp", ".gif"}, KindImage},
	{[]string{".pdf"}, KindPDF},
	{[]string{".xlsx", ".xls"}, KindExcel},
	{[]string{".docx", ".doc"}, KindWord},
	{[]string{".pptx", ".ppt"}, KindPowerPoint},
}

// Detect resolves the canonical kind for an attachment reference. A declared
// MIME type wins when it is known; otherwise the URL is pattern-matched
// against known extensions. Unrecognized inputs resolve to KindUnknown.
func Detect(url, mimeType string) Kind {
	if mimeType != "" {
		// Strip parameters such as "; charset=utf-8".
		mt := strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
		if k, ok := mimeKinds[mt]; ok {
			return k
		}
	}

	u := strings.ToLower(url)
	for _, e := range extKinds {
		for _, ext := range e.exts {
			if strings.Contains(u, ext) {
				return e.kind
			}
		}
	}
	return KindUnknown
}
