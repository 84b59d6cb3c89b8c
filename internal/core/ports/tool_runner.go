package ports

import "context"

// ToolResult is the outcome of an external tool run.
type ToolResult struct {
	// Output is the combined stdout and stderr.
	Output   string
	ExitCode int
}

// ToolRunner runs external programs.
//
//go:generate go run go.uber.org/mock/mockgen -source=tool_runner.go -destination=mocks/mock_tool_runner.go -package=mocks
type ToolRunner interface {
	// Run executes name with args in dir and waits for it to exit.
	// A non-zero exit status is reported in ToolResult, not as an error.
	Run(ctx context.Context, dir, name string, args ...string) (ToolResult, error)
}
