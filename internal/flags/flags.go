// File: internal/flags/flags.go
package flags

// Centralized definitions for CLI flags used across the application

const (
	// Profile flags select one named connection profile from the config file
	Profile      = "profile"
	ProfileShort = "p"

	// Profiles (plural) flags are used when an operation can target multiple profiles (e.g., buckets)
	// Note: 'p' is reused for both singular and plural profile flags depending on the subcommand context
	Profiles      = "profiles"
	ProfilesShort = "p"

	// Bucket flags override the bucket configured on the profile
	Bucket      = "bucket"
	BucketShort = "b"

	// Prefix and Delimiter flags shape object listings
	Prefix    = "prefix"
	Delimiter = "delimiter"
	MaxKeys   = "max-keys"

	// Path flags set the folder an object is written under
	Path = "path"

	ContentType = "content-type"

	// Output flags choose between table, json and yaml rendering
	Output      = "output"
	OutputShort = "o"

	// Dest flags name the local file a download is written to
	Dest = "dest"

	// Addr flags set the listen address of the HTTP gateway
	Addr = "addr"

	// Force flags are used to bypass interactive confirmation prompts for destructive operations
	Force      = "force"
	ForceShort = "f"

	// Config flags point at an alternative config file
	Config      = "config"
	ConfigShort = "c"

	// Debug flags are used to enable verbose logging
	Debug      = "debug"
	DebugShort = "d"
)
