package ports

import "github.com/RomkoSI/ice/internal/core/domain"

// ConfigLoader defines the interface for loading the project and user configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration of the project rooted at root, layered over
	// the user configuration. A project without a configuration file is valid.
	Load(root string) (*domain.Config, error)

	// LoadLibraries reads the library declarations of the project rooted at
	// root and of the user. Missing declaration files are not an error.
	LoadLibraries(root string) (*domain.LibraryDeclarations, error)
}
