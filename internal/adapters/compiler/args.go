package compiler

import (
	"path/filepath"
	"slices"
	"strings"
)

// ScanArgs returns the arguments of a dependency scan of file:
//
//	-M [-msse2] -MG -w <options> [-x c] -I<include>... <file>
//
// -M is incompatible with -arch, so architecture pairs are dropped. C and
// Objective-C sources lose C++ -std= options.
func ScanArgs(compiler, file string, options, includes []string, sse2 bool) []string {
	args := []string{"-M"}
	if sse2 {
		args = append(args, "-msse2")
	}
	args = append(args, "-MG", "-w")

	opts := removeArch(options)
	if isCOrObjC(file) {
		opts = slices.DeleteFunc(opts, func(o string) bool { return strings.HasPrefix(o, "-std=") })
	}
	args = append(args, opts...)

	if isClang(compiler) && strings.EqualFold(filepath.Ext(file), ".c") {
		args = append(args, "-x", "c")
	}

	for _, inc := range includes {
		args = append(args, "-I"+inc)
	}
	return append(args, file)
}

// removeArch returns a copy of options without "-arch X" pairs.
func removeArch(options []string) []string {
	out := make([]string, 0, len(options))
	for i := 0; i < len(options); i++ {
		if options[i] == "-arch" {
			i++
			continue
		}
		out = append(out, options[i])
	}
	return out
}

func isCOrObjC(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".c", ".m", ".mm":
		return true
	default:
		return false
	}
}

func isClang(compiler string) bool {
	return strings.Contains(filepath.Base(compiler), "clang")
}
