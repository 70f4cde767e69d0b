package config

// Progress defaults
const (
	DefaultDuration   = "normal"
	DefaultFPS        = 50
	DefaultTransition = "circ:out"
	DefaultLink       = "cancel"
	DefaultFit        = true
	DefaultWidth      = 200
)

// Images defaults
const (
	DefaultImageCacheSize = 128
)

// Log defaults
const (
	DefaultLogLevel      = "info"
	DefaultLogMaxSize    = 5
	DefaultLogMaxBackups = 5
	DefaultLogMaxAge     = 14
)
