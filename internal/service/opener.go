package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fileview/internal/fileerr"
	"fileview/internal/model"
	"fileview/internal/storage"
)

const tracerName = "fileview/internal/service"

// ViewerOptions are passed to the external viewer.
type ViewerOptions struct {
	// SuppressChooser asks the platform not to show an "open with" dialog.
	SuppressChooser bool
	// DisplayName is a human readable title for the viewer window.
	DisplayName string
}

// ShareOptions are passed to the share fallback.
type ShareOptions struct {
	MimeType string
}

// Viewer hands a local file to an external application.
// Failures should be tagged with fileerr.CodeViewerUnavailable when the
// viewer itself cannot run, or fileerr.CodeNoCompatibleApp when nothing
// handles the file type.
type Viewer interface {
	Open(ctx context.Context, localURI string, opts ViewerOptions) error
}

// Sharer is the last resort when no viewer is available.
type Sharer interface {
	IsAvailable(ctx context.Context) bool
	Share(ctx context.Context, uri string, opts ShareOptions) error
	OpenURL(ctx context.Context, uri string) error
}

// OpenerConfig holds the opening policy.
type OpenerConfig struct {
	SuppressChooser bool
}

// DefaultOpenerConfig returns the default policy: no chooser dialog.
func DefaultOpenerConfig() OpenerConfig {
	return OpenerConfig{SuppressChooser: true}
}

// FileOpener opens a file descriptor in an external application.
type FileOpener interface {
	// Open verifies, materializes when needed and opens the file. It touches
	// no persistent state and copies at most once.
	Open(ctx context.Context, d model.FileDescriptor) error
}

type fileOpener struct {
	fs       storage.Filesystem
	resolver URIResolver
	viewer   Viewer
	sharer   Sharer
	cfg      OpenerConfig
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
}

// OpenerOption customizes a FileOpener.
type OpenerOption func(*fileOpener)

// WithOpenerConfig overrides the default policy.
func WithOpenerConfig(cfg OpenerConfig) OpenerOption {
	return func(o *fileOpener) { o.cfg = cfg }
}

// WithOpenerMetrics records outcomes in m.
func WithOpenerMetrics(m *Metrics) OpenerOption {
	return func(o *fileOpener) { o.metrics = m }
}

// WithOpenerLogger sets the logger.
func WithOpenerLogger(l *slog.Logger) OpenerOption {
	return func(o *fileOpener) { o.logger = l }
}

// NewFileOpener constructs a FileOpener. viewer and sharer may be nil, in
// which case the corresponding step is treated as unavailable.
func NewFileOpener(fs storage.Filesystem, resolver URIResolver, viewer Viewer, sharer Sharer, opts ...OpenerOption) FileOpener {
	o := &fileOpener{
		fs:       fs,
		resolver: resolver,
		viewer:   viewer,
		sharer:   sharer,
		cfg:      DefaultOpenerConfig(),
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *fileOpener) Open(ctx context.Context, d model.FileDescriptor) (err error) {
	ctx, span := o.tracer.Start(ctx, "FileOpener.Open", trace.WithAttributes(
		attribute.String("file.uri", d.URI),
		attribute.String("file.mime_type", d.MimeType),
	))
	outcome := OutcomeFailed
	defer func() {
		span.SetAttributes(attribute.String("open.outcome", outcome))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, fileerr.Message(err))
		}
		span.End()
		o.metrics.observeOpen(outcome)
	}()

	log := o.logger.With("uri", d.URI, "name", d.Name)

	if d.URI == "" {
		return fileerr.UnsupportedURI(d.URI, "missing file URI")
	}

	local := storage.IsLocalURI(d.URI)
	exists, statErr := o.fs.Exists(ctx, d.URI)
	switch {
	case local && statErr != nil:
		outcome = OutcomeNotFound
		return fileerr.FileNotFound(d.URI, statErr)
	case local && !exists:
		outcome = OutcomeNotFound
		return fileerr.FileNotFound(d.URI, nil)
	case !local && statErr != nil:
		log.Warn("file_check_failed", "error", statErr.Error())
	case !local && !exists:
		log.Warn("file_check_missing")
	}

	localURI := d.URI
	if !local {
		span.AddEvent("materialize")
		localURI, err = o.resolver.EnsureLocalURI(ctx, d.URI, d.Name)
		if err != nil {
			outcome = OutcomeStageError
			return err
		}
		log.Info("file_materialized", "local_uri", localURI)
	}

	outcome, err = o.launch(ctx, d, localURI)
	if err != nil {
		log.Error("file_open_failed", "outcome", outcome, "error", err.Error())
		return err
	}
	log.Info("file_opened", "outcome", outcome)
	return nil
}

// launch runs the viewer and, when the viewer cannot run, the share fallback.
func (o *fileOpener) launch(ctx context.Context, d model.FileDescriptor, localURI string) (string, error) {
	if o.viewer != nil {
		err := o.viewer.Open(ctx, localURI, ViewerOptions{
			SuppressChooser: o.cfg.SuppressChooser,
			DisplayName:     d.Name,
		})
		switch {
		case err == nil:
			return OutcomeOpened, nil
		case fileerr.Code(err) == fileerr.CodeViewerUnavailable:
			o.logger.Warn("viewer_unavailable", "uri", localURI, "error", err.Error())
		case fileerr.IsNoCompatibleApp(err):
			return OutcomeNoApp, fileerr.NoCompatibleApp(d.Name, d.MimeType, err)
		default:
			return OutcomeFailed, fileerr.OpenFailed(err)
		}
	}

	return o.fallback(ctx, d, localURI)
}

func (o *fileOpener) fallback(ctx context.Context, d model.FileDescriptor, localURI string) (string, error) {
	if o.sharer == nil {
		return OutcomeNoSharing, fileerr.SharingUnavailable(nil)
	}
	if o.sharer.IsAvailable(ctx) {
		if err := o.sharer.Share(ctx, localURI, ShareOptions{MimeType: d.MimeType}); err != nil {
			return OutcomeFailed, fileerr.OpenFailed(err)
		}
		return OutcomeShared, nil
	}
	if err := o.sharer.OpenURL(ctx, localURI); err != nil {
		return OutcomeNoSharing, fileerr.SharingUnavailable(err)
	}
	return OutcomeOpenedURL, nil
}
