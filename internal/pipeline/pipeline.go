package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"snipelabel/internal/archive"
	"snipelabel/internal/config"
	"snipelabel/internal/doctemplate"
	"snipelabel/internal/labelimage"
	"snipelabel/internal/logging"
	"snipelabel/internal/services"
	"snipelabel/internal/snipeit"
)

// Result summarizes one completed label run.
type Result struct {
	OutputPath  string
	TargetURL   string
	Tags        []string
	MissingTags []string
	FieldCount  int
}

// Pipeline sequences unpack, scan, fetch, QR generation, render, and repack
// for one LabelRequest at a time.
type Pipeline struct {
	cfg      *config.Config
	client   *snipeit.Client
	logger   *slog.Logger
	qrTarget labelimage.TargetMode
}

// New constructs a pipeline with initialized dependencies.
func New(cfg *config.Config, client *snipeit.Client, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil || client == nil {
		return nil, errors.New("pipeline requires config and client")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	mode, err := labelimage.ParseTargetMode(cfg.Labels.QRTarget)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "qr target", err.Error(), nil)
	}
	return &Pipeline{cfg: cfg, client: client, logger: logger, qrTarget: mode}, nil
}

// Run generates one label. The temporary working directory is removed on
// every exit path, and a failure before repack leaves the destination file
// untouched.
func (p *Pipeline) Run(ctx context.Context, req LabelRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithItem(ctx, fmt.Sprintf("%s/%s", req.ItemType, req.ItemID))
	logger := logging.WithContext(ctx, p.logger)
	stage := func(name string) *slog.Logger {
		return logging.WithContext(services.WithStage(ctx, name), p.logger)
	}

	workDir := filepath.Join(os.TempDir(), "snipelabel-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o700); err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warn("failed to remove working directory", "path", workDir, "error", err)
		}
	}()

	manifest, err := archive.Unpack(req.TemplatePath, workDir)
	if err != nil {
		return nil, err
	}
	stage("unpack").Debug("unpacked template", "entries", manifest.Len(), "template", req.TemplatePath)

	// Template validation runs before the remote fetch so a broken template
	// never costs a network round trip.
	placeholder, err := doctemplate.LocatePlaceholder(workDir)
	if err != nil {
		return nil, err
	}
	tags, err := doctemplate.ScanTags(workDir)
	if err != nil {
		return nil, err
	}
	stage("scan").Info("scanned template", "tags", len(tags), "placeholder", fmt.Sprintf("%dx%d", placeholder.Width, placeholder.Height))

	record, err := p.client.Fetch(services.WithStage(ctx, "fetch"), req.ItemType, req.ItemID)
	if err != nil {
		return nil, err
	}
	flat := snipeit.Flatten(record, snipeit.FlattenOptions{IndexedLists: p.cfg.Labels.IndexedLists})
	stage("fetch").Debug("flattened record", "fields", len(flat))

	values := make(map[string]string, len(tags))
	for _, tag := range tags {
		if value, ok := flat[tag]; ok {
			values[tag] = value
		}
	}

	targetURL := labelimage.TargetURL(p.client.BaseURL(), req.ItemType, req.ItemID, p.qrTarget)
	qr, err := labelimage.Generate(targetURL, placeholder.Width, placeholder.Height)
	if err != nil {
		return nil, err
	}
	if err := labelimage.Replace(placeholder.Path, qr); err != nil {
		return nil, err
	}
	stage("qr").Debug("replaced placeholder image", "target", targetURL)

	missing, err := doctemplate.Render(workDir, values)
	if err != nil {
		return nil, err
	}
	for _, tag := range missing {
		stage("render").Warn("template tag missing from record", "tag", tag)
	}

	if err := archive.Repack(workDir, manifest, req.OutputPath); err != nil {
		return nil, err
	}
	stage("repack").Info("label written", "output", req.OutputPath, "missing_tags", len(missing))

	return &Result{
		OutputPath:  req.OutputPath,
		TargetURL:   targetURL,
		Tags:        tags,
		MissingTags: missing,
		FieldCount:  len(flat),
	}, nil
}

// Fields fetches and flattens one item without touching any archive, for
// operators exploring which tags a template could reference.
func (p *Pipeline) Fields(ctx context.Context, itemType snipeit.ItemType, itemID string) (snipeit.FlatRecord, error) {
	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithItem(ctx, fmt.Sprintf("%s/%s", itemType, itemID))

	record, err := p.client.Fetch(ctx, itemType, itemID)
	if err != nil {
		return nil, err
	}
	return snipeit.Flatten(record, snipeit.FlattenOptions{IndexedLists: p.cfg.Labels.IndexedLists}), nil
}
