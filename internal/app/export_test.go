package app

// Relevant exposes relevant for tests.
var Relevant = relevant

// WithHome replaces the home directory lookup used to locate user configuration.
func (a *App) WithHome(home func() (string, error)) *App {
	a.home = home
	return a
}
