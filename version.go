package tok

// Set at link time with -ldflags "-X github.com/rohankumardubey/jtok.Version=...".
var (
	Version   = "0.3.0-dev"
	BuildDate = "unknown"
)
