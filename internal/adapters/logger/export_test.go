// export_test.go exports private functions for white-box testing.
package logger

// Exported error formatting for tests.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
