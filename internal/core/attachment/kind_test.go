package attachment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectByMime(t *testing.T) {
	tests := []struct {
		name string
		url  string
		mime string
		want Kind
	}{
		{"jpeg mime", "https://cdn.example.com/blob/abc", "image/jpeg", KindImage},
		{"mime with params", "https://cdn.example.com/blob/abc", "application/pdf; charset=binary", KindPDF},
		{"docx mime", "x", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", KindWord},
		{"xlsx mime", "x", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", KindExcel},
		{"pptx mime", "x", "application/vnd.openxmlformats-officedocument.presentationml.presentation", KindPowerPoint},
		{"quicktime mime", "x", "video/quicktime", KindVideo},
		{"unknown mime falls through to url", "https://cdn.example.com/v/clip.mp4", "application/octet-stream", KindVideo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.url, tt.mime))
		})
	}
}

func TestDetectByURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Kind
	}{
		{"plain jpg", "https://bucket.example.com/media/photo.jpg", KindImage},
		{"upper case", "https://bucket.example.com/media/PHOTO.JPEG", KindImage},
		{"query string suffix", "https://storage.example.com/obj/report.pdf?token=eyJhbGci", KindPDF},
		{"signed url tokens", "https://storage.example.com/obj/plan.xlsx?X-Amz-Signature=abc123", KindExcel},
		{"platform token after extension", "https://cdn.example.com/media/clip.mp4-1693305600000", KindVideo},
		{"mov video", "https://cdn.example.com/media/walkthrough.MOV", KindVideo},
		{"word doc", "https://cdn.example.com/docs/minutes.docx", KindWord},
		{"legacy doc", "https://cdn.example.com/docs/minutes.doc", KindWord},
		{"powerpoint", "https://cdn.example.com/docs/kickoff.pptx", KindPowerPoint},
		{"no extension", "https://cdn.example.com/blob/ab9f2c", KindUnknown},
		{"unsupported extension", "https://cdn.example.com/blob/archive.zip", KindUnknown},
		{"empty", "", KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.url, ""))
		})
	}
}

func TestDetectNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		Detect("::::not a url::::", ";;;")
	})
}
