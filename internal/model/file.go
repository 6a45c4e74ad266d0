package model

import (
	"context"
	"time"
)

// TypeTag identifies a file family known to the type registry.
type TypeTag string

const (
	TypeExcel      TypeTag = "EXCEL"
	TypeWord       TypeTag = "WORD"
	TypePowerPoint TypeTag = "POWERPOINT"
	TypePDF        TypeTag = "PDF"
	TypeText       TypeTag = "TEXT"
	TypeHTML       TypeTag = "HTML"
	TypeCSS        TypeTag = "CSS"
	TypeCSV        TypeTag = "CSV"
	TypeJSON       TypeTag = "JSON"
	TypeUnknown    TypeTag = "UNKNOWN"
)

// MaxRecent is the maximum number of entries kept in the recent files list.
const MaxRecent = 20

// FileTypeProfile describes how a family of files is presented and handled.
// Profiles are built once by the filetype registry and never mutated.
type FileTypeProfile struct {
	Key             TypeTag  `json:"key"`
	Extensions      []string `json:"extensions"`
	MimeTypes       []string `json:"mimeTypes"`
	Icon            string   `json:"icon"`
	Color           string   `json:"color"`
	DisplayName     string   `json:"displayName"`
	CanPreviewInApp bool     `json:"canPreviewInApp"`
}

// FileDescriptor represents a picked or remembered file.
// This is a pure value object; "updating" one means replacing it in its list.
// OpenedAt is only set by the recent files store.
type FileDescriptor struct {
	URI             string     `json:"uri"`
	Name            string     `json:"name"`
	Size            uint64     `json:"size"`
	MimeType        string     `json:"mimeType"`
	Type            TypeTag    `json:"type"`
	Icon            string     `json:"icon"`
	Color           string     `json:"color"`
	TypeName        string     `json:"typeName"`
	CanPreviewInApp bool       `json:"canPreviewInApp"`
	OpenedAt        *time.Time `json:"openedAt,omitempty"`
}

// RawFile is the unclassified result of a pick.
type RawFile struct {
	URI      string `json:"uri"`
	Name     string `json:"name"`
	Size     uint64 `json:"size"`
	MimeType string `json:"mimeType"`
}

// Picker lets the user choose a file. A nil RawFile with a nil error means
// the user cancelled.
type Picker interface {
	Pick(ctx context.Context) (*RawFile, error)
}
