package db

const (
	// sqlTimeLayout matches SQLite's datetime() text form.
	sqlTimeLayout = "2006-01-02 15:04:05"

	// Session event types.
	EventSessionStarted = "session_started"
	EventDatasetReload  = "dataset_reloaded"
	EventReportExported = "report_exported"
)
