// Package filetype classifies files by extension and MIME type.
//
// The registry is a fixed, ordered table built once at init. Lookups are pure
// and total: anything that does not match a registered profile resolves to the
// UNKNOWN profile, which is also the single place where presentation defaults
// (icon, color, display name, MIME type) are defined.
package filetype

import (
	"strings"

	"fileview/internal/model"
)

// profiles is scanned in order; extensions are unique across entries.
var profiles = []model.FileTypeProfile{
	{
		Key:        model.TypeExcel,
		Extensions: []string{".xlsx", ".xls", ".xlsm", ".xlsb"},
		MimeTypes: []string{
			"application/vnd.ms-excel",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/vnd.ms-excel.sheet.macroEnabled.12",
			"application/vnd.ms-excel.sheet.binary.macroEnabled.12",
		},
		Icon:        "📊",
		Color:       "#1D6F42",
		DisplayName: "Excel Spreadsheet",
	},
	{
		Key:        model.TypeWord,
		Extensions: []string{".docx", ".doc", ".docm"},
		MimeTypes: []string{
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/vnd.ms-word.document.macroEnabled.12",
		},
		Icon:        "📄",
		Color:       "#2B579A",
		DisplayName: "Word Document",
	},
	{
		Key:        model.TypePowerPoint,
		Extensions: []string{".pptx", ".ppt", ".pptm"},
		MimeTypes: []string{
			"application/vnd.ms-powerpoint",
			"application/vnd.openxmlformats-officedocument.presentationml.presentation",
			"application/vnd.ms-powerpoint.presentation.macroEnabled.12",
		},
		Icon:        "📽️",
		Color:       "#D24726",
		DisplayName: "PowerPoint Presentation",
	},
	{
		Key:         model.TypePDF,
		Extensions:  []string{".pdf"},
		MimeTypes:   []string{"application/pdf"},
		Icon:        "📕",
		Color:       "#F40F02",
		DisplayName: "PDF Document",
	},
	{
		Key:             model.TypeText,
		Extensions:      []string{".txt", ".text"},
		MimeTypes:       []string{"text/plain"},
		Icon:            "📝",
		Color:           "#666666",
		DisplayName:     "Text File",
		CanPreviewInApp: true,
	},
	{
		Key:             model.TypeHTML,
		Extensions:      []string{".html", ".htm"},
		MimeTypes:       []string{"text/html"},
		Icon:            "🌐",
		Color:           "#E34F26",
		DisplayName:     "HTML File",
		CanPreviewInApp: true,
	},
	{
		Key:             model.TypeCSS,
		Extensions:      []string{".css"},
		MimeTypes:       []string{"text/css"},
		Icon:            "🎨",
		Color:           "#1572B6",
		DisplayName:     "CSS File",
		CanPreviewInApp: true,
	},
	{
		Key:             model.TypeCSV,
		Extensions:      []string{".csv"},
		MimeTypes:       []string{"text/csv", "application/csv"},
		Icon:            "📋",
		Color:           "#34A853",
		DisplayName:     "CSV File",
		CanPreviewInApp: true,
	},
	{
		Key:             model.TypeJSON,
		Extensions:      []string{".json"},
		MimeTypes:       []string{"application/json"},
		Icon:            "🔧",
		Color:           "#FFA500",
		DisplayName:     "JSON File",
		CanPreviewInApp: true,
	},
}

var unknown = model.FileTypeProfile{
	Key:             model.TypeUnknown,
	Extensions:      []string{},
	MimeTypes:       []string{"application/octet-stream"},
	Icon:            "📎",
	Color:           "#999999",
	DisplayName:     "Unknown File",
	CanPreviewInApp: false,
}

// Unknown returns the fallback profile.
func Unknown() model.FileTypeProfile {
	return clone(unknown)
}

// Profiles returns the registered profiles in lookup order, UNKNOWN excluded.
func Profiles() []model.FileTypeProfile {
	out := make([]model.FileTypeProfile, len(profiles))
	for i, p := range profiles {
		out[i] = clone(p)
	}
	return out
}

// Extension returns the lower-cased suffix starting at the last dot, or ""
// when the name has no dot.
func Extension(fileName string) string {
	i := strings.LastIndex(fileName, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(fileName[i:])
}

// Classify returns the profile matching the extension of fileName.
func Classify(fileName string) model.FileTypeProfile {
	ext := Extension(fileName)
	if ext == "" {
		return Unknown()
	}
	for _, p := range profiles {
		for _, e := range p.Extensions {
			if e == ext {
				return clone(p)
			}
		}
	}
	return Unknown()
}

// IsSupported reports whether fileName resolves to a known profile.
func IsSupported(fileName string) bool {
	return Classify(fileName).Key != model.TypeUnknown
}

// ByMIME returns the first profile listing mimeType. Parameters such as
// "; charset=utf-8" are ignored.
func ByMIME(mimeType string) model.FileTypeProfile {
	m := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(m, ";"); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	if m == "" {
		return Unknown()
	}
	for _, p := range profiles {
		for _, candidate := range p.MimeTypes {
			if strings.ToLower(candidate) == m {
				return clone(p)
			}
		}
	}
	return Unknown()
}

// ByKey returns the profile registered under key.
func ByKey(key model.TypeTag) model.FileTypeProfile {
	for _, p := range profiles {
		if p.Key == key {
			return clone(p)
		}
	}
	return Unknown()
}

// clone keeps callers from mutating the shared table through slice fields.
func clone(p model.FileTypeProfile) model.FileTypeProfile {
	p.Extensions = append([]string(nil), p.Extensions...)
	p.MimeTypes = append([]string(nil), p.MimeTypes...)
	return p
}
