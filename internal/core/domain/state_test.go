package domain_test

import (
	"sync"
	"testing"

	"github.com/RomkoSI/ice/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestState_Layering(t *testing.T) {
	base := domain.TargetSettings{
		IncludePaths:    []string{"/usr/include"},
		CompilerOptions: []string{"-g", "-O0"},
	}
	s := domain.NewState(base, domain.TargetSettings{})

	s.AddIncludePath("/usr/include")
	s.AddIncludePath("/sib/include")
	s.AddIncludePath("/sib/include")
	s.AddCompilerOptions("-g")
	s.AddCompilerOptions("-I/wx", "-D__WXGTK__")
	s.AddCompilerOptions("-I/wx", "-D__WXGTK__")

	assert.Equal(t, []string{"/usr/include", "/sib/include"}, s.IncludePaths())
	assert.Equal(t, []string{"-g", "-O0", "-I/wx", "-D__WXGTK__"}, s.CompilerOptions())

	extra := s.Extra()
	assert.Equal(t, []string{"/sib/include"}, extra.IncludePaths)
	assert.Equal(t, []string{"-I/wx", "-D__WXGTK__"}, extra.CompilerOptions)
}

func TestState_ReplayExtra(t *testing.T) {
	base := domain.TargetSettings{LinkerOptions: []string{"-lm"}}
	extra := domain.TargetSettings{
		LibraryPaths:  []string{"/sib/build/lib"},
		LinkerOptions: []string{"-lwx"},
		UsesProjects:  []string{"/sib"},
		UsesLibraries: []string{"sib"},
	}

	s := domain.NewState(base, extra)
	assert.Equal(t, []string{"-lm", "-lwx"}, s.LinkerOptions())
	assert.Equal(t, []string{"/sib/build/lib"}, s.LibraryPaths())
	assert.Equal(t, []string{"sib"}, s.UsesLibraries())
	assert.Equal(t, extra, s.Extra())

	// Replaying twice never duplicates.
	again := domain.NewState(base, s.Extra())
	assert.Equal(t, s.Settings(), again.Settings())
}

func TestState_AddUsesProject(t *testing.T) {
	s := domain.NewState(domain.TargetSettings{UsesProjects: []string{"/a"}}, domain.TargetSettings{})

	assert.False(t, s.AddUsesProject("/a"))
	assert.True(t, s.AddUsesProject("/b"))
	assert.False(t, s.AddUsesProject("/b"))
	assert.Equal(t, []string{"/a", "/b"}, s.UsesProjects())
}

func TestState_Concurrent(t *testing.T) {
	s := domain.NewState(domain.TargetSettings{}, domain.TargetSettings{})
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.AddIncludePath("/shared/include")
			s.AddUsesLibrary("shared")
		}()
		go func() {
			defer wg.Done()
			_ = s.Settings()
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"/shared/include"}, s.IncludePaths())
	assert.Equal(t, []string{"shared"}, s.UsesLibraries())
}

func TestConfig_Paths(t *testing.T) {
	cfg := &domain.Config{
		Root:     "/work/app",
		ObjDir:   "build/obj",
		BuildDir: "/abs/build",
		Targets: map[domain.BuildTarget]domain.TargetOptions{
			domain.TargetDebug: {CompilerOptions: []string{"-g"}},
		},
	}

	assert.Equal(t, "/work/app/build/obj/debug", cfg.ObjPath(domain.TargetDebug))
	assert.Equal(t, "/abs/build/lib", cfg.LibraryOutputPath())
	assert.Equal(t, []string{"-g"}, cfg.Settings(domain.TargetDebug).CompilerOptions)
	assert.Empty(t, cfg.Settings(domain.TargetRelease).CompilerOptions)
}
