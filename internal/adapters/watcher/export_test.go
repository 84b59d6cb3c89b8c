package watcher

// ConvertEventExported exposes convertEvent for testing.
var ConvertEventExported = convertEvent
