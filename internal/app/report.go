package app

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/RomkoSI/ice/internal/ui/style"
	"github.com/charmbracelet/lipgloss"
)

// printer accumulates styled report lines for a single writer.
type printer struct {
	sb      strings.Builder
	heading lipgloss.Style
	dim     lipgloss.Style
	stale   lipgloss.Style
	fresh   lipgloss.Style
	warn    lipgloss.Style
}

// newPrinter detects the color profile of w itself, so NO_COLOR and
// redirected output both render plain text.
func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		heading: style.Heading(r),
		dim:     style.Dim(r),
		stale:   style.Tinted(r, style.Yellow),
		fresh:   style.Tinted(r, style.Green),
		warn:    style.Tinted(r, style.Red),
	}
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *printer) section(title string) {
	p.line("%s", p.heading.Render(title))
}

func (p *printer) paths(root, title string, paths []string) {
	if len(paths) == 0 {
		return
	}
	p.section(title)
	for _, path := range paths {
		p.line("  %s", relTo(root, path))
	}
}

func (p *printer) flush(w io.Writer) error {
	_, err := io.WriteString(w, p.sb.String())
	return err
}

// RenderReport writes a human-readable build report to w.
func RenderReport(w io.Writer, report *domain.BuildReport) error {
	p := newPrinter(w)
	root := report.Root
	name := report.Project
	if name == "" {
		name = filepath.Base(root)
	}

	p.line("%s %s %s",
		p.heading.Render(name),
		p.dim.Render("("+report.Target.String()+")"),
		p.dim.Render(shortID(report.InvocationID)),
	)

	p.section("Rebuild")
	if len(report.Rebuild) == 0 {
		p.line("  %s %s", p.fresh.Render(style.Check), plural(len(report.Sources), "source")+" up to date")
	}
	for _, r := range report.Rebuild {
		p.line("  %s %s  %s", p.stale.Render(style.Dot), relTo(root, r.Source), p.dim.Render(reason(root, r)))
	}
	if n := len(report.Rebuild); n > 0 {
		p.line("  %s", p.dim.Render(fmt.Sprintf("%d of %s", n, plural(len(report.Sources), "source"))))
	}

	p.section("Link order")
	if len(report.LinkOrder) == 0 {
		p.line("  %s", p.dim.Render("none"))
	} else {
		p.line("  %s", strings.Join(report.LinkOrder, p.dim.Render(" "+style.Arrow+" ")))
	}

	if len(report.Projects) > 1 {
		p.section("Projects")
		for i, project := range report.Projects {
			p.line("  %d. %s", i+1, relTo(root, project))
		}
	}

	p.paths(root, "Include paths", report.Settings.IncludePaths)
	p.paths(root, "Library paths", report.Settings.LibraryPaths)

	if len(report.Unresolved) > 0 {
		p.section("Unresolved headers")
		for _, header := range report.Unresolved {
			p.line("  %s %s", p.warn.Render(style.Warning), header)
		}
	}

	return p.flush(w)
}

// RenderExplanation writes the verdict and dependency closure of one source to w.
func RenderExplanation(w io.Writer, root string, e *domain.Explanation) error {
	p := newPrinter(w)
	r := e.Reason

	p.line("%s %s %s", p.heading.Render(relTo(root, r.Source)), p.dim.Render(style.Arrow), relTo(root, r.Object))
	if r.Rebuild() {
		p.line("  %s %s", p.stale.Render(style.Dot), reason(root, r))
	} else {
		p.line("  %s %s", p.fresh.Render(style.Check), r.Cause.String())
	}

	p.section("Dependencies")
	for _, dep := range e.Dependencies {
		if filepath.IsAbs(dep) {
			p.line("  %s", relTo(root, dep))
			continue
		}
		p.line("  %s %s", p.warn.Render(style.Warning), dep)
	}

	return p.flush(w)
}

// RenderLibraries writes one row per library to w.
func RenderLibraries(w io.Writer, target domain.BuildTarget, libs []*domain.Library) error {
	p := newPrinter(w)

	binaries := make([]string, len(libs))
	nameWidth, binWidth := len("NAME"), len("BINARY")
	for i, lib := range libs {
		binaries[i] = binary(lib, target)
		nameWidth = max(nameWidth, len(lib.Name()))
		binWidth = max(binWidth, len(binaries[i]))
	}
	name := lipgloss.NewStyle().Width(nameWidth + 2)
	kind := lipgloss.NewStyle().Width(len("framework") + 2)
	bin := lipgloss.NewStyle().Width(binWidth + 2)

	p.line("%s", p.heading.Render(name.Render("NAME")+kind.Render("LINKAGE")+bin.Render("BINARY")+"TRIGGERS"))
	for i, lib := range libs {
		p.line("%s%s%s%s",
			name.Render(lib.Name()),
			kind.Render(lib.Linkage().String()),
			bin.Render(binaries[i]),
			p.dim.Render(triggers(lib)),
		)
	}

	return p.flush(w)
}

func binary(lib *domain.Library, target domain.BuildTarget) string {
	name := lib.Binary(target)
	if lib.Linkage() == domain.LinkageFramework {
		name = lib.Framework(target)
	}
	if name == "" {
		return "-"
	}
	return name
}

func triggers(lib *domain.Library) string {
	parts := lib.Headers()
	for _, sym := range lib.Symbols() {
		parts = append(parts, sym+"()")
	}
	return strings.Join(parts, " ")
}

func reason(root string, r domain.RebuildReason) string {
	if r.Culprit == "" || r.Cause == domain.CauseSourceNewer {
		return r.Cause.String()
	}
	return r.Cause.String() + ": " + relTo(root, r.Culprit)
}

// relTo shortens path to be relative to root when it lies inside root.
func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
