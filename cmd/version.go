package cmd

// Version is set at build time with -ldflags "-X".
var Version = "0.0.0"
