// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/speedy"
)

type registration struct {
	priority int
	factory  Factory
}

var (
	registryMu sync.RWMutex
	backends   = make(map[string]registration)
)

// Register adds a backend factory under name, replacing any previous one.
// Backend packages call it from init. Default tries higher priorities first.
func Register(name string, priority int, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = registration{priority: priority, factory: factory}
}

// Unregister removes a backend. Tests use it to isolate the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, highest priority first.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(backends[b].priority, backends[a].priority); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names
}

// IsRegistered reports whether name has a factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Open creates the named backend.
func Open(name string, cfg Config) (speedy.Backend, error) {
	registryMu.RLock()
	reg, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q is not registered", speedy.ErrBackendNotAvailable, name)
	}
	return reg.factory(cfg)
}

// Default creates the highest priority backend that can run on this host.
// Backends that fail are skipped; if all fail the errors are joined.
func Default(cfg Config) (speedy.Backend, error) {
	names := Available()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no backends registered", speedy.ErrBackendNotAvailable)
	}

	var errs []error
	for _, name := range names {
		b, err := Open(name, cfg)
		if err == nil {
			return b, nil
		}
		speedy.Logger().Debug("speedy: backend unavailable", "backend", name, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	return nil, errors.Join(errs...)
}
