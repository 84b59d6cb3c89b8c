// export_test.go exports private functions for white-box testing.
package logger

// Exported aliases of the error chain helpers.
var (
	CollectErrorEntriesExported = collectErrorEntries
	FormatErrorEntriesExported  = formatErrorEntries
)
