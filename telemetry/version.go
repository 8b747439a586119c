package telemetry

// Version identifies the client build in exported trace resources.
// Set during build time via -ldflags.
var Version = "development"
