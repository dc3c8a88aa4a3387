package ports

import "go.trai.ch/taskspec/internal/core/domain"

// ManifestLoader defines the interface for loading task manifests.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest at the given path.
	Load(path string) (*domain.Manifest, error)
}
