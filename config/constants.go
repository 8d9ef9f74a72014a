package config

import "github.com/brettbedarf/memfs/internal/util"

// CLI verbosity values accepted by [ConfigOverride.LogLvl]. Values outside
// the range are clamped.
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.WarnLevel

	// DefaultOverwriteOnCreate keeps mkdir/touch replacing an existing node of the same name
	DefaultOverwriteOnCreate = true

	// DefaultColor enables styled shell output
	DefaultColor = true

	DefaultFsName = "memfs"
	DefaultName   = "memfs"

	// DefaultAttrTimeout is the attribute cache timeout in seconds
	DefaultAttrTimeout = 1.0

	// DefaultEntryTimeout is the directory entry cache timeout in seconds
	DefaultEntryTimeout = 1.0

	// DefaultDirectIO bypasses the kernel page cache so reads always see current content
	DefaultDirectIO = true
)

// verboseLvls maps CLI verbosity (index+1) to internal log levels
var verboseLvls = [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}

// LogLvlFromVerbose converts a CLI verbosity between 1 (error) and 5 (trace)
// to a log level, clamping out of range values.
func LogLvlFromVerbose(verbose int) util.LogLevel {
	verbose = max(ErrorVerbose, min(verbose, TraceVerbose))
	return verboseLvls[verbose-1]
}
