// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package store ties a birthday.Manager to the data file it was loaded from,
// so every front end opens and saves entries the same way.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"birthday-manager/internal/birthday"
	"birthday-manager/internal/config"
	"birthday-manager/internal/logger"
)

// Store is a loaded manager plus the settings it was opened with.
type Store struct {
	*birthday.Manager

	Path   string
	Config config.Config
}

// Open builds a manager from cfg and loads its data file. A non-empty
// pathOverride replaces the configured data file. A date layout that would
// write unreadable lines is refused before anything is loaded.
func Open(cfg config.Config, pathOverride string, opts ...birthday.Option) (*Store, error) {
	cfg = cfg.WithDefaults()
	if err := birthday.ValidateDateLayout(cfg.DateLayout); err != nil {
		return nil, fmt.Errorf("invalid date_layout in config: %w", err)
	}

	path := pathOverride
	if path == "" {
		var err error
		path, err = cfg.DataPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve data file: %w", err)
		}
	} else {
		resolved, err := config.ResolvePath(path)
		if err != nil {
			return nil, err
		}
		path = resolved
	}

	opts = append([]birthday.Option{birthday.WithDateLayout(cfg.DateLayout)}, opts...)
	s := &Store{
		Manager: birthday.NewManager(opts...),
		Path:    path,
		Config:  cfg,
	}
	if err := s.LoadFrom(path); err != nil {
		return nil, err
	}
	logger.Debug("Store opened", "path", path, "entries", s.Len())
	return s, nil
}

// Save writes the entries back to the file the store was opened from,
// creating its directory if needed.
func (s *Store) Save() error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return s.SaveTo(s.Path)
}

// ParseDate validates a user-entered date, trying the configured input
// layout before the general fallbacks.
func (s *Store) ParseDate(value string) (time.Time, error) {
	return birthday.ParseDate(value, s.Config.InputLayout)
}
