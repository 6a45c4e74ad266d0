package fileerr

import "strings"

// SuggestAppFor maps a MIME type to the kind of application a user should
// install to open it.
func SuggestAppFor(mimeType string) string {
	if mimeType == "" {
		return "a file viewer app"
	}
	m := strings.ToLower(mimeType)
	switch {
	case strings.Contains(m, "pdf"):
		return "Adobe Acrobat or a PDF reader"
	case strings.Contains(m, "word"):
		return "Microsoft Word or Google Docs"
	case strings.Contains(m, "excel"), strings.Contains(m, "spreadsheet"):
		return "Microsoft Excel or Google Sheets"
	case strings.Contains(m, "powerpoint"), strings.Contains(m, "presentation"):
		return "Microsoft PowerPoint or Google Slides"
	}
	return "a compatible file viewer app"
}
