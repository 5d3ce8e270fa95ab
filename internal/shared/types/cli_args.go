package types

import "time"

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	EnvFile    string
	Profile    string
	Region     string
	Storage    string
	Bucket     string
	Dir        string
	Threshold  *float64
	Days       *int
	WriteHTML  bool
	WritePDF   bool
	Timeout    time.Duration
	EventFile  string
	Quiet      bool
}
