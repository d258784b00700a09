package internal

// Version is the vocadrill release, overridden at build time with -ldflags.
var Version = "0.1.0"
