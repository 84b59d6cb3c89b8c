// Package compiler drives the C/C++ compiler and its helper tools and parses their output.
package compiler

import (
	"path/filepath"
	"strings"

	"github.com/RomkoSI/ice/internal/core/domain"
	"go.trai.ch/zerr"
)

// Outcome classifies the output of a dependency scan.
type Outcome int

const (
	// OutcomeDependencies means the scan produced a dependency rule.
	OutcomeDependencies Outcome = iota
	// OutcomeRecoverable means headers were missing and a retry may succeed.
	OutcomeRecoverable
)

const (
	warningPrefix  = "cc1plus: warning:"
	includedPrefix = "In file included from"
	noSuchFile     = ": No such file or directory"
	fileNotFound   = "' file not found"
)

// Result is the parsed output of a dependency scan.
type Result struct {
	Outcome Outcome
	// Dependencies are the prerequisites of the rule, in output order.
	// The first one is the scanned source itself.
	Dependencies []string
	// Missing holds the base names of headers the compiler could not open.
	Missing []string
	// Diagnostic is the compiler output of a recoverable scan.
	Diagnostic string
}

// ParseDependencyOutput interprets the output of "<compiler> -M -MG".
//
// Output mentioning " error:" or "invalid argument" is a hard compiler error,
// except for diagnostics about missing files. Output starting with
// "In file included from" is recoverable. Anything else must be a make rule
// "target: dep dep \" whose prerequisites are returned.
func ParseDependencyOutput(raw string) (Result, error) {
	if strings.HasPrefix(raw, warningPrefix) {
		_, raw, _ = strings.Cut(raw, "\n")
	}

	if isHardError(raw) {
		return Result{}, zerr.Wrap(domain.ErrCompilerError, strings.TrimRight(raw, "\n"))
	}

	if strings.HasPrefix(raw, includedPrefix) {
		return Result{
			Outcome:    OutcomeRecoverable,
			Missing:    missingFiles(raw),
			Diagnostic: strings.TrimRight(raw, "\n"),
		}, nil
	}

	deps, ok := parseRule(raw)
	if !ok {
		return Result{}, zerr.With(zerr.Wrap(domain.ErrMalformedScanOutput, "dependency scan did not print a make rule"), "output", strings.TrimSpace(raw))
	}
	return Result{Outcome: OutcomeDependencies, Dependencies: deps}, nil
}

func isHardError(raw string) bool {
	for line := range strings.Lines(raw) {
		line = strings.TrimRight(line, "\r\n")
		if isMissingFileLine(line) {
			continue
		}
		if strings.Contains(line, " error:") || strings.Contains(line, "invalid argument") {
			return true
		}
	}
	return false
}

func isMissingFileLine(line string) bool {
	return strings.HasSuffix(line, noSuchFile) || strings.HasSuffix(line, fileNotFound)
}

// missingFiles extracts the headers named by "...: <file>: No such file or
// directory" and clang's "...: '<file>' file not found" lines.
func missingFiles(raw string) []string {
	var missing []string
	for line := range strings.Lines(raw) {
		line = strings.TrimRight(line, "\r\n")
		var name string
		switch {
		case strings.HasSuffix(line, noSuchFile):
			name = strings.TrimSuffix(line, noSuchFile)
			if j := strings.LastIndex(name, ": "); j >= 0 {
				name = name[j+2:]
			}
		case strings.HasSuffix(line, fileNotFound):
			name = strings.TrimSuffix(line, fileNotFound)
			if j := strings.LastIndex(name, "'"); j >= 0 {
				name = name[j+1:]
			}
		default:
			continue
		}
		missing = append(missing, filepath.Base(strings.TrimSpace(name)))
	}
	return missing
}

// parseRule returns the prerequisites of the make rule in raw.
// Lines starting with "# " are line markers printed by some compilers.
func parseRule(raw string) ([]string, bool) {
	var b strings.Builder
	for line := range strings.Lines(raw) {
		if strings.HasPrefix(line, "# ") {
			continue
		}
		b.WriteString(line)
	}
	s := b.String()

	// The target ends at the first ':' followed by whitespace, which keeps
	// drive letters such as C:\ inside the target.
	i := ruleSeparator(s)
	if i < 0 {
		return nil, false
	}

	var deps []string
	for rest := s[i+1:]; len(rest) > 0; {
		var token string
		token, rest = nextToken(rest)
		token = strings.TrimSpace(token)
		if token == "" || strings.HasSuffix(token, ":") {
			continue
		}
		deps = append(deps, token)
	}
	return deps, true
}

func ruleSeparator(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ':' {
			continue
		}
		if i+1 == len(s) || s[i+1] == ' ' || s[i+1] == '\t' || s[i+1] == '\n' || s[i+1] == '\r' {
			return i
		}
	}
	return -1
}

// nextToken returns the next whitespace separated token of s.
// A backslash before a newline is a continuation and separates tokens;
// a backslash before a space escapes it.
func nextToken(s string) (string, string) {
	var sb strings.Builder
skipSpaces:
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '\n' {
			i++
			continue
		}
		if s[i] == '\\' && i+2 < len(s) && s[i+1] == '\r' && s[i+2] == '\n' {
			i += 2
			continue
		}
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			s = s[i:]
			break skipSpaces
		}
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case ' ':
				sb.WriteByte(' ')
			case '\r', '\n':
				return sb.String(), s[i+1:]
			default:
				sb.WriteByte('\\')
				sb.WriteByte(s[i])
			}
			continue
		}
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			return sb.String(), s[i+1:]
		}
		sb.WriteByte(s[i])
	}
	return sb.String(), ""
}
