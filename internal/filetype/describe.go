package filetype

import "fileview/internal/model"

// Describe turns a picker result into a FileDescriptor carrying the
// presentation fields of its profile. The extension decides the profile; the
// MIME type is only consulted when the name has no registered extension.
func Describe(raw model.RawFile) model.FileDescriptor {
	profile := Classify(raw.Name)
	if profile.Key == model.TypeUnknown && raw.MimeType != "" {
		profile = ByMIME(raw.MimeType)
	}

	mimeType := raw.MimeType
	if mimeType == "" && len(profile.MimeTypes) > 0 {
		mimeType = profile.MimeTypes[0]
	}

	return model.FileDescriptor{
		URI:             raw.URI,
		Name:            raw.Name,
		Size:            raw.Size,
		MimeType:        mimeType,
		Type:            profile.Key,
		Icon:            profile.Icon,
		Color:           profile.Color,
		TypeName:        profile.DisplayName,
		CanPreviewInApp: profile.CanPreviewInApp,
	}
}

// Normalize fills presentation fields a stored or client-provided descriptor
// may be missing. Fields that are already set are kept.
func Normalize(d model.FileDescriptor) model.FileDescriptor {
	if d.Type != "" && d.Icon != "" && d.Color != "" && d.TypeName != "" && d.MimeType != "" {
		return d
	}
	described := Describe(model.RawFile{URI: d.URI, Name: d.Name, Size: d.Size, MimeType: d.MimeType})
	if d.Type == "" {
		d.Type = described.Type
		d.CanPreviewInApp = described.CanPreviewInApp
	}
	if d.Icon == "" {
		d.Icon = described.Icon
	}
	if d.Color == "" {
		d.Color = described.Color
	}
	if d.TypeName == "" {
		d.TypeName = described.TypeName
	}
	if d.MimeType == "" {
		d.MimeType = described.MimeType
	}
	return d
}
