package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (invalid config, missing dataset)
	ExitDataError   = 3 // Data error (malformed dataset line)
	ExitNotFound    = 4 // Requested person or record not found
)
