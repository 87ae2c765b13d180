// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"image"
	"slices"
	"testing"

	"github.com/gogpu/speedy"
)

// stubBackend satisfies speedy.Backend and remembers its config.
type stubBackend struct {
	name string
	cfg  Config
}

func (b *stubBackend) Name() string { return b.name }
func (b *stubBackend) CreateTexture(speedy.TextureDescriptor, []byte) (speedy.TextureID, error) {
	return 1, nil
}
func (b *stubBackend) UpdateTexture(speedy.TextureID, image.Rectangle, []byte) error { return nil }
func (b *stubBackend) DestroyTexture(speedy.TextureID) {}
func (b *stubBackend) SetViewport(speedy.UVec2, float64) error { return nil }
func (b *stubBackend) BeginFrame() error { return nil }
func (b *stubBackend) SetProjection(speedy.Mat4) {}
func (b *stubBackend) Clear(speedy.Color) {}
func (b *stubBackend) Draw(*speedy.Batch) error { return nil }
func (b *stubBackend) Present() error { return nil }
func (b *stubBackend) Capture() (*speedy.RawBitmapData, error) { return nil, nil }
func (b *stubBackend) Close() error { return nil }

func stubFactory(name string) Factory {
	return func(cfg Config) (speedy.Backend, error) {
		return &stubBackend{name: name, cfg: cfg}, nil
	}
}

var errNoDevice = errors.New("no device")

func failingFactory(Config) (speedy.Backend, error) {
	return nil, errNoDevice
}

// isolate clears the registry for the duration of a test.
func isolate(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := backends
	backends = make(map[string]registration)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		backends = saved
		registryMu.Unlock()
	})
}

func TestRegistryAvailableOrder(t *testing.T) {
	isolate(t)
	Register("b-low", 0, stubFactory("b-low"))
	Register("a-low", 0, stubFactory("a-low"))
	Register("high", 10, stubFactory("high"))

	want := []string{"high", "a-low", "b-low"}
	if got := Available(); !slices.Equal(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}
	if !IsRegistered("high") {
		t.Error("IsRegistered(high) = false, want true")
	}

	Unregister("high")
	if IsRegistered("high") {
		t.Error("IsRegistered(high) = true after Unregister")
	}
}

func TestRegistryOpen(t *testing.T) {
	isolate(t)
	Register("stub", 0, stubFactory("stub"))

	cfg := Config{Size: speedy.UVec2{X: 32, Y: 16}, Scale: 2}
	b, err := Open("stub", cfg)
	if err != nil {
		t.Fatalf("Open(stub) error = %v", err)
	}
	if got := b.(*stubBackend).cfg; got != cfg {
		t.Errorf("factory config = %+v, want %+v", got, cfg)
	}

	if _, err := Open("missing", cfg); !errors.Is(err, speedy.ErrBackendNotAvailable) {
		t.Errorf("Open(missing) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestRegistryDefault(t *testing.T) {
	tests := []struct {
		name     string
		register func()
		want     string
		wantErr  error
	}{
		{
			name:     "empty",
			register: func() {},
			wantErr:  speedy.ErrBackendNotAvailable,
		},
		{
			name: "highest priority wins",
			register: func() {
				Register(BackendSoftware, 0, stubFactory(BackendSoftware))
				Register(BackendWGPU, 10, stubFactory(BackendWGPU))
			},
			want: BackendWGPU,
		},
		{
			name: "failed backend is skipped",
			register: func() {
				Register(BackendSoftware, 0, stubFactory(BackendSoftware))
				Register(BackendWGPU, 10, failingFactory)
			},
			want: BackendSoftware,
		},
		{
			name: "all fail",
			register: func() {
				Register(BackendWGPU, 10, failingFactory)
			},
			wantErr: errNoDevice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			tt.register()

			b, err := Default(Config{})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Default() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Default() error = %v", err)
			}
			if b.Name() != tt.want {
				t.Errorf("Default().Name() = %q, want %q", b.Name(), tt.want)
			}
		})
	}
}

func TestConfigScale(t *testing.T) {
	if got := (Config{}).ScaleFactor(); got != 1 {
		t.Errorf("Config{}.ScaleFactor() = %v, want 1", got)
	}
	if got := (Config{Scale: 1.5}).ScaleFactor(); got != 1.5 {
		t.Errorf("Config{Scale: 1.5}.ScaleFactor() = %v, want 1.5", got)
	}
}
