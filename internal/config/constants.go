package config

const SourceFileExt = ".amlg"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".amlg", ".amalgam"}

// ConfigFileName is looked up in the user's home directory.
const ConfigFileName = ".amalgamrc"

// Defaults for the interactive session.
const (
	DefaultPrompt       = "> "
	DefaultPromptCont   = "... "
	DefaultHistoryFile  = ".amalgam_history"
	DefaultHistoryLimit = 1000
)
