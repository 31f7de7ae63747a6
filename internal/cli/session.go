package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/fiberna/internal/catalog"
	"github.com/roach88/fiberna/internal/config"
	"github.com/roach88/fiberna/internal/engine"
	"github.com/roach88/fiberna/internal/ir"
	"github.com/roach88/fiberna/internal/store"
)

// session holds what a command needs: config, catalog and, when opened, the store.
type session struct {
	opts    *RootOptions
	out     *OutputFormatter
	logger  *slog.Logger
	cfg     *config.Config
	catalog *catalog.Catalog
	store   *store.Store
	engine  *engine.Engine
}

// newFormatter builds the formatter for cmd's writers.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// newLogger returns a text logger on w at Info, or Debug when verbose.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// newSession loads config and catalog. It does not touch the store.
// Errors have already been reported through the returned formatter.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	s := &session{
		opts:   opts,
		out:    newFormatter(opts, cmd),
		logger: newLogger(opts.Verbose, cmd.ErrOrStderr()),
	}

	dir := opts.WorkDir
	if dir == "" {
		dir = "."
	}
	cfg, err := config.Load(opts.ConfigPath, dir)
	if err != nil {
		return nil, s.configError(err)
	}
	err = cfg.Apply(config.Overrides{
		StorePath:   opts.StorePath,
		Backend:     opts.Backend,
		CatalogPath: opts.CatalogPath,
	})
	if err != nil {
		return nil, s.configError(err)
	}
	s.cfg = cfg
	if cfg.File != "" {
		s.logger.Debug("config loaded", "file", cfg.File)
	}

	cat, err := catalog.LoadOrDefault(cfg.Catalog.Path)
	if err != nil {
		var vErr *catalog.ValidationError
		if errors.As(err, &vErr) {
			return nil, s.out.Fail(err)
		}
		_ = s.out.Error(ErrCodeGeneric, err.Error(), nil)
		return nil, &ExitError{Code: ExitCommandError, ErrCode: ErrCodeGeneric, Message: "failed to load catalog", Err: err}
	}
	s.catalog = cat
	s.logger.Debug("catalog ready", "path", cfg.Catalog.Path, "materials", cat.Len())

	return s, nil
}

func (s *session) configError(err error) error {
	_ = s.out.Error(ErrCodeConfig, err.Error(), nil)
	return &ExitError{Code: ExitCommandError, ErrCode: ErrCodeConfig, Message: "invalid configuration", Err: err}
}

// openStore opens the configured store and builds the engine.
// A corrupt row is reported as a warning and the records before it are kept.
func (s *session) openStore(ctx context.Context) error {
	backend, err := store.ParseBackend(s.cfg.Store.Backend)
	if err != nil {
		return s.configError(err)
	}

	st, err := store.OpenPath(ctx, backend, s.cfg.Store.Path)
	if st == nil {
		return s.out.Fail(err)
	}
	if err != nil {
		var corrupt *ir.CorruptStoreError
		if errors.As(err, &corrupt) {
			s.out.Warn("%v (continuing with %d records)", corrupt, st.Len())
			s.logger.Warn("store partially loaded", "store", corrupt.Location, "line", corrupt.Line, "records", st.Len())
		}
	}

	s.store = st
	s.engine = engine.New(st, engine.WithCatalog(s.catalog), engine.WithLogger(s.logger))
	s.logger.Debug("store ready", "store", st.Location(), "backend", backend, "records", st.Len())
	return nil
}

// Close releases the store, if open.
func (s *session) Close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing store", "error", err)
	}
}

// commandContext returns cmd's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
