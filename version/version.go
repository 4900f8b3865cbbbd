package version

// set by -ldflags at build time
var (
	GitRevision    = "unknown"
	FMBenchVersion = "v0.1.0"
)
