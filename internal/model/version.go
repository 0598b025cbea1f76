package model

// Version is the launcher version, overridden at build time via
// -ldflags "-X tcs/internal/model.Version=v1.2.3".
var Version = "v0.1.0"
