package config

// ConfigFile represents the structure of ice.yaml and of the user's .icompile.
type ConfigFile struct {
	Name         string               `yaml:"name"`
	Compiler     string               `yaml:"compiler"`
	SourceDirs   []string             `yaml:"source_dirs"`
	Exclude      []string             `yaml:"exclude"`
	ObjDir       string               `yaml:"obj_dir"`
	BuildDir     string               `yaml:"build_dir"`
	IncludePaths []string             `yaml:"include_paths"`
	LibraryPaths []string             `yaml:"library_paths"`
	Libraries    []string             `yaml:"libraries"`
	Targets      map[string]TargetDTO `yaml:"targets"`
}

// TargetDTO represents the options of one build target.
type TargetDTO struct {
	CompilerOptions []string `yaml:"compiler_options"`
	LinkerOptions   []string `yaml:"linker_options"`
}

// LibraryFile represents the structure of a libraries.hcl declaration file.
type LibraryFile struct {
	Libraries []*LibraryBlock   `hcl:"library,block"`
	LinkOrder []*LinkOrderBlock `hcl:"link_order,block"`
}

// LibraryBlock declares one library:
//
//	library "sqlite3" {
//	  linkage = "dynamic"
//	  release = "sqlite3"
//	  debug   = "sqlite3"
//	  headers = ["sqlite3.h"]
//	}
type LibraryBlock struct {
	Name             string   `hcl:"name,label"`
	Linkage          string   `hcl:"linkage"`
	Release          string   `hcl:"release,optional"`
	Debug            string   `hcl:"debug,optional"`
	ReleaseFramework string   `hcl:"release_framework,optional"`
	DebugFramework   string   `hcl:"debug_framework,optional"`
	Headers          []string `hcl:"headers,optional"`
	Symbols          []string `hcl:"symbols,optional"`
	DependsOn        []string `hcl:"depends_on,optional"`
	Deploy           bool     `hcl:"deploy,optional"`
}

// LinkOrderBlock declares that dependent needs dependency linked before it.
type LinkOrderBlock struct {
	Dependent  string `hcl:"dependent"`
	Dependency string `hcl:"dependency"`
}
