// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"slices"
	"testing"
)

func softwareFactory(opts Options) (Provider, error) {
	p, err := NewSoftwareProvider(opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// countingFactory records which backend built the provider.
func countingFactory(name string, picked *[]string) Factory {
	return func(opts Options) (Provider, error) {
		*picked = append(*picked, name)
		return softwareFactory(opts)
	}
}

func names(bs []Backend) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Name
	}
	return out
}

func TestRegistryBackendsOrder(t *testing.T) {
	var r Registry
	r.Register("low", 10, softwareFactory, nil)
	r.Register("high", 100, softwareFactory, nil)
	r.Register("mid-b", 50, softwareFactory, nil)
	r.Register("mid-a", 50, softwareFactory, nil)

	got := names(r.Backends())
	want := []string{"high", "mid-a", "mid-b", "low"}
	if !slices.Equal(got, want) {
		t.Errorf("Backends() = %v, want %v", got, want)
	}
}

func TestRegistryReplaceAndUnregister(t *testing.T) {
	var r Registry
	r.Register("x", 10, softwareFactory, nil)
	r.Register("x", 70, softwareFactory, nil)

	bs := r.Backends()
	if len(bs) != 1 || bs[0].Priority != 70 {
		t.Fatalf("Backends() = %+v, want one backend with priority 70", bs)
	}

	r.Unregister("x")
	if len(r.Backends()) != 0 {
		t.Error("backend still listed after Unregister")
	}
}

func TestRegistryNewProviderPicksHighestAvailable(t *testing.T) {
	var (
		r      Registry
		picked []string
	)
	r.Register("low", 10, countingFactory("low", &picked), nil)
	r.Register("mid", 50, countingFactory("mid", &picked), nil)
	r.Register("off", 100, countingFactory("off", &picked), func() bool { return false })

	p, err := r.NewProvider(Options{Width: 100, Height: 80})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })

	if !slices.Equal(picked, []string{"mid"}) {
		t.Errorf("factories called %v, want [mid]", picked)
	}
	if w, h := p.Screen().Width(), p.Screen().Height(); w != 100 || h != 80 {
		t.Errorf("screen = %dx%d, want 100x80", w, h)
	}
}

func TestRegistryNewProviderFallsBack(t *testing.T) {
	var r Registry
	boom := errors.New("no device")
	r.Register("broken", 100, func(Options) (Provider, error) { return nil, boom }, nil)
	r.Register("software", 10, softwareFactory, nil)

	p, err := r.NewProvider(Options{Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	_ = p.Close()
}

func TestRegistryNewProviderErrors(t *testing.T) {
	boom := errors.New("no device")

	tests := []struct {
		name  string
		setup func(r *Registry)
		width int
		want  error
	}{
		{"empty", func(*Registry) {}, 10, ErrNoBackendAvailable},
		{"all unavailable", func(r *Registry) {
			r.Register("off", 10, softwareFactory, func() bool { return false })
		}, 10, ErrNoBackendAvailable},
		{"factory error", func(r *Registry) {
			r.Register("broken", 10, func(Options) (Provider, error) { return nil, boom }, nil)
		}, 10, boom},
		{"invalid size", func(r *Registry) {
			r.Register("software", 10, softwareFactory, nil)
		}, 0, ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Registry
			tt.setup(&r)

			if _, err := r.NewProvider(Options{Width: tt.width, Height: 10}); !errors.Is(err, tt.want) {
				t.Errorf("NewProvider error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegistryNewProviderByName(t *testing.T) {
	var r Registry
	r.Register("software", 10, softwareFactory, nil)
	r.Register("off", 90, softwareFactory, func() bool { return false })

	p, err := r.NewProviderByName("software", Options{Width: 50, Height: 40})
	if err != nil {
		t.Fatalf("NewProviderByName: %v", err)
	}
	_ = p.Close()

	_, err = r.NewProviderByName("vulkan", Options{Width: 50, Height: 40})
	var notFound *BackendNotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "vulkan" {
		t.Errorf("unknown backend error = %v, want BackendNotFoundError{vulkan}", err)
	}
	if err.Error() != "surface: backend not found: vulkan" {
		t.Errorf("message = %q", err.Error())
	}

	_, err = r.NewProviderByName("off", Options{Width: 50, Height: 40})
	var unavailable *BackendUnavailableError
	if !errors.As(err, &unavailable) || unavailable.Name != "off" {
		t.Errorf("unavailable backend error = %v, want BackendUnavailableError{off}", err)
	}
}

func TestDefaultRegistryHasSoftware(t *testing.T) {
	if !slices.Contains(names(Backends()), "software") {
		t.Fatal("software backend is not registered")
	}

	p, err := NewProviderByName("software", Options{Width: 64, Height: 32})
	if err != nil {
		t.Fatalf("NewProviderByName(software): %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })

	if _, ok := p.(*SoftwareProvider); !ok {
		t.Errorf("provider is %T, want *SoftwareProvider", p)
	}
}
