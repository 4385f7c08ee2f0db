// Package cmd implements the chartkit CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (render, inspect, serve).
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	chart "github.com/go-drift/chart"
)

// BuildTime is set at build time.
var BuildTime = "unknown"

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

var (
	success = color.New(color.FgGreen)
	heading = color.New(color.FgCyan, color.Bold)
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "chartkit",
	Short: "chartkit - render animated charts to PNG frames",
	Long: `chartkit renders the line charts described by a chart.yaml file.

Charts are driven by the same frame scheduler used by hosts embedding the
engine. render steps it with a manual clock so every frame is deterministic;
serve runs it in real time.

Use "chartkit <command> --help" for more information about a command.`,
	Usage: "chartkit <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments, without the program name.
func Execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	var filteredArgs []string
	for _, arg := range args {
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "chartkit version %s (built %s)\n", chart.Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			chart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		default:
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	heading.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --verbose            Log scheduler activity to stderr")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  chartkit render --config chart.yaml --out frames")
	fmt.Fprintln(stdout, "  chartkit inspect --config chart.yaml")
	fmt.Fprintln(stdout, "  chartkit serve --config chart.yaml --addr :8080")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}

// flagValue returns the value of the flag at args[*i], accepting both
// "--name value" and "--name=value". A single leading dash is also accepted.
// It advances *i past a separate value.
func flagValue(args []string, i *int) (name, value string, err error) {
	arg := strings.TrimLeft(args[*i], "-")
	if name, value, ok := strings.Cut(arg, "="); ok {
		return name, value, nil
	}
	if *i+1 >= len(args) {
		return arg, "", fmt.Errorf("--%s requires a value", arg)
	}
	*i++
	return arg, args[*i], nil
}

func intFlag(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("--%s must be a non-negative integer, got %q", name, value)
	}
	return n, nil
}
