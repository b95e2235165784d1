package types

// AppName is used for CLI naming and cache directory resolution.
const AppName = "tigerline"

// Version is the application version, overridable at build time via ldflags.
var Version = "0.1.0"
