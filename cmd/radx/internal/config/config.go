// Package config holds the CLI-wide flags shared by every radx
// subcommand: logging, output formatting, and the directory commands
// write derived files into.
package config

// Format selects how tabular command output is rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// GlobalConfig is embedded into the root CLI struct so every subcommand's
// Run method receives it regardless of which command kong dispatched to.
type GlobalConfig struct {
	Debug     bool   `name:"debug" short:"d" help:"Enable debug mode (adds caller info to logs)"`
	LogLevel  string `name:"log-level" default:"info" enum:"trace,debug,info,warn,error,fatal" help:"Log level"`
	Pretty    bool   `name:"pretty" default:"true" negatable:"" help:"Pretty-print logs instead of JSON"`
	Format    Format `name:"format" default:"table" enum:"table,json" help:"Output format for tabular commands"`
	OutputDir string `name:"output-dir" default:"./output" type:"path" help:"Directory extracted artifacts are written to"`
}
