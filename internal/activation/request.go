package activation

// Request is the finished command-line record for one activation.
type Request struct {
	// URI is the raw, percent-encoded activation argument from the OS.
	URI string
	// Install asks for handler registration instead of an activation.
	// Execute ignores it; the command routes install requests elsewhere.
	Install bool
	// Protocol overrides the scheme parsed from URI when choosing a script.
	Protocol string
	// SettingsPath is an explicit settings document. It must exist.
	SettingsPath string
	// LogPath overrides the resolved log file. It must exist.
	LogPath string
}
