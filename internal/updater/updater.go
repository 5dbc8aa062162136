package updater

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"qrcmigrate/internal/config"
	"qrcmigrate/internal/fileutil"
	"qrcmigrate/internal/logging"
	"qrcmigrate/internal/resource"
)

// Options tunes a single Update call.
type Options struct {
	// Prefix overrides the configured group prefix when non-empty.
	Prefix string
	// DryRun writes the edited document to Output instead of the descriptor.
	DryRun bool
	Output io.Writer
}

// Result reports what Update did.
type Result struct {
	Path       string
	Prefix     string
	Inserted   bool
	GroupIndex int
	Files      int
	Written    bool
}

// Updater inserts file entries into migration descriptors.
type Updater struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New builds an Updater. A nil cfg uses defaults and a nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) *Updater {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	return &Updater{cfg: cfg, logger: logging.NewComponentLogger(logger, "updater")}
}

// Update adds filename to the first root-level group of the descriptor at
// path whose prefix matches, then writes the document back. A descriptor
// without a matching group is rewritten unchanged.
func (u *Updater) Update(ctx context.Context, path, filename string, opts Options) (Result, error) {
	prefix := u.cfg.Descriptor.Prefix
	if opts.Prefix != "" {
		prefix = opts.Prefix
	}
	result := Result{Path: path, Prefix: prefix, GroupIndex: -1}
	logger := u.logger.With(logging.String(logging.FieldPath, path), logging.String(logging.FieldPrefix, prefix))

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if u.cfg.Write.Lock && !opts.DryRun {
		unlock, err := fileutil.Lock(ctx, path)
		if err != nil {
			return result, err
		}
		defer func() {
			if err := unlock(); err != nil {
				logger.Warn("release descriptor lock failed", logging.Error(err))
			}
		}()
	}

	if err := fileutil.CheckAccess(path, !opts.DryRun); err != nil {
		return result, err
	}

	desc, err := resource.Load(path)
	if err != nil {
		return result, fmt.Errorf("load migration descriptor: %w", err)
	}

	entry := resource.Entry{
		Tag:           u.cfg.Descriptor.FileTag,
		Name:          filename,
		EntryIndent:   u.cfg.Descriptor.EntryIndent,
		ClosingIndent: u.cfg.Descriptor.ClosingIndent,
	}
	if index, ok := desc.AddFile(prefix, entry); ok {
		result.Inserted = true
		result.GroupIndex = index
		result.Files = len(desc.Groups(entry.Tag)[index].Files)
		logger.Info("file entry added",
			logging.String("file", filename),
			logging.Int("group_index", index),
			logging.Int("files", result.Files),
		)
	} else {
		logger.Warn("no group matches prefix; descriptor left unchanged",
			logging.String(logging.FieldEventType, "group_not_found"),
			logging.String("root", desc.RootTag()),
		)
	}

	data, err := desc.Bytes()
	if err != nil {
		return result, fmt.Errorf("serialize migration descriptor: %w", err)
	}

	if opts.DryRun {
		if opts.Output != nil {
			if _, err := opts.Output.Write(data); err != nil {
				return result, fmt.Errorf("write dry-run output: %w", err)
			}
		}
		logger.Debug("dry run; descriptor not written")
		return result, nil
	}

	if err := fileutil.WriteFile(path, data, u.cfg.Write.Atomic); err != nil {
		return result, fmt.Errorf("write migration descriptor: %w", err)
	}
	result.Written = true
	logger.Debug("descriptor written", logging.Bool("atomic", u.cfg.Write.Atomic), logging.Int("bytes", len(data)))
	return result, nil
}
