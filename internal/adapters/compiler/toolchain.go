package compiler

import (
	"context"
	"slices"
	"strings"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/core/ports"
	"github.com/klauspost/cpuid/v2"
	"go.trai.ch/zerr"
)

var _ ports.Toolchain = (*Toolchain)(nil)

// Toolchain implements ports.Toolchain on top of a ports.ToolRunner.
type Toolchain struct {
	runner   ports.ToolRunner
	sse2     bool
	platform domain.Platform
}

// Option configures a Toolchain.
type Option func(*Toolchain)

// WithSSE2 overrides the host CPU detection for -msse2.
func WithSSE2(enabled bool) Option {
	return func(t *Toolchain) { t.sse2 = enabled }
}

// WithPlatform overrides the host platform.
func WithPlatform(p domain.Platform) Option {
	return func(t *Toolchain) { t.platform = p }
}

// NewToolchain creates a Toolchain that runs tools through runner.
func NewToolchain(runner ports.ToolRunner, opts ...Option) *Toolchain {
	t := &Toolchain{
		runner:   runner,
		sse2:     cpuid.CPU.Supports(cpuid.SSE2),
		platform: domain.HostPlatform(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ScanDependencies runs the compiler in dependency scan mode.
func (t *Toolchain) ScanDependencies(ctx context.Context, req ports.ScanRequest) (string, error) {
	args := ScanArgs(req.Compiler, req.File, req.Options, req.IncludePaths, t.sse2)
	res, err := t.runner.Run(ctx, req.Dir, req.Compiler, args...)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrScanFailed, err.Error()), "file", req.File)
	}
	return res.Output, nil
}

// QueryFlags runs a flag helper such as "wx-config --cxxflags" and splits its output.
func (t *Toolchain) QueryFlags(ctx context.Context, tool string, args ...string) ([]string, error) {
	res, err := t.runner.Run(ctx, "", tool, args...)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrToolFailed, err.Error()), "tool", tool)
	}
	if res.ExitCode != 0 {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrToolFailed, strings.TrimSpace(res.Output)), "tool", tool), "exit_code", res.ExitCode)
	}
	return strings.Fields(res.Output), nil
}

// UndefinedSymbols lists the symbols objects reference without defining, using "nm -u".
// The result is sorted and free of duplicates.
func (t *Toolchain) UndefinedSymbols(ctx context.Context, objects ...string) ([]string, error) {
	if len(objects) == 0 {
		return nil, nil
	}

	res, err := t.runner.Run(ctx, "", "nm", append([]string{"-u"}, objects...)...)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrToolFailed, err.Error()), "tool", "nm")
	}
	if res.ExitCode != 0 {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrToolFailed, strings.TrimSpace(res.Output)), "tool", "nm"), "exit_code", res.ExitCode)
	}
	return ParseUndefinedSymbols(res.Output, t.platform), nil
}

// ParseUndefinedSymbols reads "nm -u" output. File headers ("a.o:") and blank
// lines are skipped. Mach-O symbols lose their leading underscore on darwin.
func ParseUndefinedSymbols(out string, platform domain.Platform) []string {
	var symbols []string
	for line := range strings.Lines(out) {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasSuffix(fields[len(fields)-1], ":") {
			continue
		}
		sym := fields[len(fields)-1]
		if platform == domain.PlatformDarwin {
			sym = strings.TrimPrefix(sym, "_")
		}
		symbols = append(symbols, sym)
	}
	slices.Sort(symbols)
	return slices.Compact(symbols)
}
