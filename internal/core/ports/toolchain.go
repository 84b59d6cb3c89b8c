package ports

import "context"

// ScanRequest describes one dependency scan of a source file.
type ScanRequest struct {
	// Compiler is the compiler executable.
	Compiler string
	// File is the source file to scan.
	File string
	// Dir is the working directory of the scan.
	Dir string
	// Options are the compiler options in effect.
	Options []string
	// IncludePaths are passed as -I flags.
	IncludePaths []string
}

// Toolchain runs the external compiler tools the engine consults.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// ScanDependencies runs the compiler in dependency scan mode and returns
	// its combined output. Diagnostics are part of the output, not an error;
	// an error means the compiler could not be run at all.
	ScanDependencies(ctx context.Context, req ScanRequest) (string, error)

	// QueryFlags runs a configuration helper such as wx-config and returns the
	// flags it prints.
	QueryFlags(ctx context.Context, tool string, args ...string) ([]string, error)

	// UndefinedSymbols returns the symbols referenced but not defined by objects.
	UndefinedSymbols(ctx context.Context, objects ...string) ([]string, error)
}
