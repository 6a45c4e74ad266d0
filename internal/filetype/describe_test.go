package filetype

import (
	"testing"

	"fileview/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	t.Run("csv is previewable", func(t *testing.T) {
		d := Describe(model.RawFile{URI: "file:///tmp/budget.csv", Name: "budget.csv", Size: 42})

		assert.Equal(t, model.TypeCSV, d.Type)
		assert.True(t, d.CanPreviewInApp)
		assert.Equal(t, "text/csv", d.MimeType)
		assert.Equal(t, "CSV File", d.TypeName)
		assert.Equal(t, uint64(42), d.Size)
		assert.Nil(t, d.OpenedAt)
	})

	t.Run("picker mime type wins", func(t *testing.T) {
		d := Describe(model.RawFile{Name: "budget.csv", MimeType: "application/csv"})
		assert.Equal(t, "application/csv", d.MimeType)
	})

	t.Run("mime type used when extension unknown", func(t *testing.T) {
		d := Describe(model.RawFile{Name: "download", MimeType: "application/pdf"})
		assert.Equal(t, model.TypePDF, d.Type)
		assert.False(t, d.CanPreviewInApp)
	})

	t.Run("unknown falls back to octet-stream", func(t *testing.T) {
		d := Describe(model.RawFile{Name: "blob"})
		assert.Equal(t, model.TypeUnknown, d.Type)
		assert.Equal(t, "application/octet-stream", d.MimeType)
		assert.Equal(t, "📎", d.Icon)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("fills missing fields", func(t *testing.T) {
		d := Normalize(model.FileDescriptor{URI: "content://x/1", Name: "slides.pptx"})

		assert.Equal(t, model.TypePowerPoint, d.Type)
		assert.Equal(t, "PowerPoint Presentation", d.TypeName)
		assert.Equal(t, "application/vnd.ms-powerpoint", d.MimeType)
	})

	t.Run("keeps provided fields", func(t *testing.T) {
		in := model.FileDescriptor{
			URI: "file:///a.txt", Name: "a.txt", MimeType: "text/plain", Type: model.TypeText,
			Icon: "x", Color: "#000000", TypeName: "Custom", CanPreviewInApp: true,
		}
		assert.Equal(t, in, Normalize(in))
	})
}
