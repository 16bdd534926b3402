package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"cloud.google.com/go/compute/metadata"
	"cloud.google.com/go/logging"
	"github.com/google/uuid"

	"github.com/openbook/chatseed/config"
	"github.com/openbook/chatseed/log"
)

const logID = "chatseed"

// Handler forwards every record to Cloud Logging and then to next.
type Handler struct {
	next   slog.Handler
	cloud  *logging.Logger
	attrs  []slog.Attr
	client *logging.Client
}

// New creates a Cloud Logging backed handler. When projectID is empty it is
// read from the GCE metadata server.
func New(ctx context.Context, projectID string, next slog.Handler) (*Handler, error) {
	if projectID == "" {
		var err error
		projectID, err = metadata.ProjectIDWithContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get project ID: %w", err)
		}
	}
	client, err := logging.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create logging client: %w", err)
	}
	return &Handler{
		next:   next,
		cloud:  client.Logger(logID),
		client: client,
	}, nil
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	payload := map[string]any{"message": r.Message}
	for _, attr := range h.attrs {
		payload[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(attr slog.Attr) bool {
		payload[attr.Key] = attr.Value.Any()
		return true
	})
	h.cloud.Log(logging.Entry{
		Timestamp: r.Time,
		Severity:  Severity(r.Level),
		Payload:   payload,
	})
	return h.next.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)
	return &Handler{
		next:   h.next.WithAttrs(attrs),
		cloud:  h.cloud,
		attrs:  newAttrs,
		client: h.client,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{next: h.next.WithGroup(name), cloud: h.cloud, attrs: h.attrs, client: h.client}
}

// Close flushes buffered entries and releases the client.
func (h *Handler) Close() error {
	if err := h.cloud.Flush(); err != nil {
		return err
	}
	return h.client.Close()
}

func Severity(level slog.Level) logging.Severity {
	switch {
	case level >= slog.LevelError:
		return logging.Error
	case level >= slog.LevelWarn:
		return logging.Warning
	case level >= slog.LevelInfo:
		return logging.Info
	default:
		return logging.Debug
	}
}

// Setup attaches a run id and a logger to ctx. With cloud logging enabled
// records are also shipped to Cloud Logging; the returned func flushes them.
func Setup(ctx context.Context, cfg *config.Config, out io.Writer) (context.Context, func()) {
	runID := uuid.NewString()
	var handler slog.Handler = log.NewCloudLoggingHandler(out, cfg.LogLevel)
	closeFn := func() {}

	if cfg.CloudLogging {
		cloudHandler, err := New(ctx, cfg.ProjectID, handler)
		if err != nil {
			slog.New(handler).Warn("cloud logging disabled", slog.String(log.ErrorMsgLogField, err.Error()))
		} else {
			handler = cloudHandler
			closeFn = func() { _ = cloudHandler.Close() }
		}
	}

	l := slog.New(handler).With(slog.String(log.RunIDLogField, runID))
	ctx = log.WithRunID(ctx, runID)
	return log.WithLogger(ctx, l), closeFn
}
