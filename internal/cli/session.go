package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/petar-djukic/equipments/internal/blob"
	"github.com/petar-djukic/equipments/internal/imagestore"
	"github.com/petar-djukic/equipments/internal/logging"
	"github.com/petar-djukic/equipments/internal/metrics"
	"github.com/petar-djukic/equipments/internal/store"
)

// session is an opened store with its collaborators. Every command that
// touches data opens one and closes it before returning.
type session struct {
	settings settings
	logger   *slog.Logger
	store    *store.Store
	images   *imagestore.Store
	metrics  *metrics.Collector
	closers  []func() error
}

// openSession loads settings, builds the logger, opens the blob backend and
// loads the store.
func (a *app) openSession() (*session, error) {
	cfg, err := a.loadSettings()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.logLevel, cfg.logFormat, cfg.logFile)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	sess := &session{settings: cfg, logger: logger}
	sess.closers = append(sess.closers, func() error { closeLog(); return nil })

	logger.Debug("opening store",
		"backend", cfg.backend,
		"data_dir", cfg.dataDir,
		"image_dir", cfg.imageDir,
		"strict_images", cfg.strictImages,
	)

	blobs, err := blob.Open(cfg.storeConfig())
	if err != nil {
		_ = sess.close()
		return nil, fmt.Errorf("open %s backend: %w", cfg.backend, err)
	}
	sess.closers = append(sess.closers, blobs.Close)

	images, err := imagestore.New(cfg.imageDir)
	if err != nil {
		_ = sess.close()
		return nil, err
	}
	sess.images = images

	opts := []store.Option{store.WithLogger(logger)}
	if cfg.strictImages {
		opts = append(opts, store.WithImageChecker(images))
	}
	s, err := store.New(blobs, opts...)
	if err != nil {
		_ = sess.close()
		return nil, err
	}
	sess.store = s
	for _, w := range s.LoadWarnings() {
		fmt.Fprintf(a.stderr, "warning: %v\n", w)
	}

	collector, err := metrics.New(s)
	if err != nil {
		_ = sess.close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	sess.metrics = collector
	sess.closers = append(sess.closers, func() error { collector.Close(); return nil })

	return sess, nil
}

// close writes the metrics textfile when configured and releases resources in
// reverse order of acquisition.
func (s *session) close() error {
	var errs []error
	if s.metrics != nil && s.settings.metricsFile != "" {
		if err := s.metrics.WriteTextfile(s.settings.metricsFile); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// withSession opens a session, runs fn and closes the session. An error from
// fn takes precedence over a close error.
func (a *app) withSession(fn func(*session) error) (err error) {
	sess, err := a.openSession()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(sess)
}
