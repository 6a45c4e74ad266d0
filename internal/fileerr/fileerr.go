// Package fileerr defines the closed set of failures produced while
// resolving and opening files.
//
// Every error carries an error code from github.com/jmgilman/go/errors so
// callers can branch on the kind of failure without inspecting messages.
// Collaborators (viewers, sharers, filesystems) tag their own failures with
// the same codes; the opener switches on those tags to decide on fallbacks.
package fileerr

import (
	"fmt"

	"github.com/jmgilman/go/errors"
)

const (
	// CodeFileNotFound means the source no longer exists.
	CodeFileNotFound errors.ErrorCode = "FILE_NOT_FOUND"
	// CodeNoWritableDirectory means no staging location is available.
	CodeNoWritableDirectory errors.ErrorCode = "NO_WRITABLE_DIRECTORY"
	// CodeMaterialization means copying into the staging area failed.
	CodeMaterialization errors.ErrorCode = "MATERIALIZATION_FAILED"
	// CodeNoCompatibleApp means no installed application handles the file.
	CodeNoCompatibleApp errors.ErrorCode = "NO_COMPATIBLE_APP"
	// CodeSharingUnavailable means the share fallback is unavailable too.
	CodeSharingUnavailable errors.ErrorCode = "SHARING_UNAVAILABLE"
	// CodeUnsupportedURI means no provider can read the URI scheme.
	CodeUnsupportedURI errors.ErrorCode = "UNSUPPORTED_URI"
	// CodeOpenFailed is an unclassified failure of the open attempt.
	CodeOpenFailed errors.ErrorCode = "OPEN_FAILED"

	// CodeViewerUnavailable is raised by viewers whose backing module or
	// binary is missing. It triggers the share fallback.
	CodeViewerUnavailable errors.ErrorCode = "VIEWER_UNAVAILABLE"
)

const suggestedAppKey = "suggested_app"

// FileNotFound reports a source URI that does not exist.
func FileNotFound(uri string, cause error) error {
	msg := "File not found or no longer accessible"
	if cause == nil {
		return errors.WithContext(errors.New(CodeFileNotFound, msg), "uri", uri)
	}
	return errors.WrapWithContext(cause, CodeFileNotFound, msg, map[string]interface{}{"uri": uri})
}

// NoWritableDirectory reports that neither cache nor document directory exists.
func NoWritableDirectory() error {
	return errors.New(CodeNoWritableDirectory, "No writable directory is available to open this file")
}

// Materialization wraps a failed copy or staging step.
func Materialization(uri string, cause error) error {
	return errors.WrapWithContext(cause, CodeMaterialization,
		"could not copy file to a local staging area", map[string]interface{}{"uri": uri})
}

// UnsupportedURI reports a URI no provider can handle.
func UnsupportedURI(uri, reason string) error {
	return errors.WithContext(errors.New(CodeUnsupportedURI, reason), "uri", uri)
}

// NoCompatibleApp reports that no app can open the file and records a hint
// about which kind of app to install.
func NoCompatibleApp(name, mimeType string, cause error) error {
	if name == "" {
		name = "this file"
	}
	hint := SuggestAppFor(mimeType)
	msg := fmt.Sprintf("No app found to open %s. Please install a compatible app (e.g., %s).", name, hint)
	ctx := map[string]interface{}{suggestedAppKey: hint, "mime_type": mimeType}
	if cause == nil {
		return errors.WithContextMap(errors.New(CodeNoCompatibleApp, msg), ctx)
	}
	return errors.WrapWithContext(cause, CodeNoCompatibleApp, msg, ctx)
}

// SharingUnavailable reports that the share/open-URL fallback failed as well.
func SharingUnavailable(cause error) error {
	msg := "Sharing is not available on this device"
	if cause == nil {
		return errors.New(CodeSharingUnavailable, msg)
	}
	return errors.Wrap(cause, CodeSharingUnavailable, msg)
}

// OpenFailed wraps an unclassified failure, keeping the underlying message.
func OpenFailed(cause error) error {
	return errors.Wrap(cause, CodeOpenFailed, cause.Error())
}

// ViewerUnavailable is used by viewers to signal that they cannot run at all.
func ViewerUnavailable(cause error) error {
	msg := "File viewer not available"
	if cause == nil {
		return errors.New(CodeViewerUnavailable, msg)
	}
	return errors.Wrap(cause, CodeViewerUnavailable, msg)
}

// Code returns the error code of the outermost tagged error in the chain,
// or errors.CodeUnknown.
func Code(err error) errors.ErrorCode {
	return errors.GetCode(err)
}

// Message returns the human readable message of a tagged error, or the
// plain error text.
func Message(err error) string {
	var pe errors.PlatformError
	if errors.As(err, &pe) {
		return pe.Message()
	}
	return err.Error()
}

// SuggestedApp returns the install hint attached to a NO_COMPATIBLE_APP error.
func SuggestedApp(err error) string {
	var pe errors.PlatformError
	if !errors.As(err, &pe) {
		return ""
	}
	hint, _ := pe.Context()[suggestedAppKey].(string)
	return hint
}

func IsFileNotFound(err error) bool { return Code(err) == CodeFileNotFound }
func IsNoWritableDirectory(err error) bool { return Code(err) == CodeNoWritableDirectory }
func IsMaterialization(err error) bool { return Code(err) == CodeMaterialization }
func IsNoCompatibleApp(err error) bool { return Code(err) == CodeNoCompatibleApp }
func IsSharingUnavailable(err error) bool { return Code(err) == CodeSharingUnavailable }
func IsUnsupportedURI(err error) bool { return Code(err) == CodeUnsupportedURI }
func IsOpenFailed(err error) bool { return Code(err) == CodeOpenFailed }
