package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leodido/structcli"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zenik/zenik/internal/dispatch"
	"github.com/zenik/zenik/internal/feature"
	"github.com/zenik/zenik/internal/platform"
)

// version is set via -ldflags at build time
var version = "dev"

// Exit codes.
const (
	exitOK           = 0
	exitFailure      = 1
	exitConfig       = 2
	exitNotAvailable = 3
	exitCancelled    = 130
)

// exitError carries an exit code for an outcome that was already reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	platform.InitColor()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	root := rootCmd(in, out)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	code := exitCode(err)
	var ee *exitError
	if err != nil && !errors.As(err, &ee) {
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return code
}

func exitCode(err error) int {
	var ee *exitError
	var ce *feature.ConfigError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ee):
		return ee.code
	case errors.As(err, &ce):
		return exitConfig
	default:
		return exitFailure
	}
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	ConfigPath string
	Plain      bool
	LogLevel   string
}

func rootCmd(in io.Reader, out io.Writer) *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "zenik",
		Short: "Terminal multi-tool that adapts its menu to the host platform",
		Long: `zenik probes the host once at startup and shows only the modules that can
run here. Desktop hosts get every module; constrained hosts such as iSH on
iOS get the portable subset.

Run without arguments for the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			s, err := openSession(g, in, out)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.runMenu(c.Context(), g.Plain || s.envVars.Plain() || !isInteractive(in, out))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.ConfigPath, "config", "", "settings file (default: config.json in the user config dir)")
	flags.BoolVar(&g.Plain, "plain", false, "force the numbered line-mode menu")
	flags.StringVar(&g.LogLevel, "log-level", "", "activity log level (debug, info, warn, error)")

	root.AddCommand(envCmd(g, in, out))
	root.AddCommand(listCmd(g, in, out))
	root.AddCommand(runCmd(g, in, out))
	root.AddCommand(versionCmd(out))
	return root
}

// isInteractive reports whether both ends are terminals.
func isInteractive(in io.Reader, out io.Writer) bool {
	fi, ok := in.(*os.File)
	if !ok {
		return false
	}
	fo, ok := out.(*os.File)
	if !ok {
		return false
	}
	return platform.IsTerminal(fi) && platform.IsTerminal(fo)
}

// EnvOptions defines flags for the env subcommand.
type EnvOptions struct {
	JSON bool `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
	YAML bool `flag:"yaml" flagshort:"y" flagdescr:"Output in YAML format"`
}

func (o *EnvOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func envCmd(g *globalOptions, in io.Reader, out io.Writer) *cobra.Command {
	opts := &EnvOptions{}

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show the detected platform and capabilities",
		Args:  cobra.NoArgs,
		PreRunE: func(c *cobra.Command, args []string) error {
			if err := structcli.Unmarshal(c, opts); err != nil {
				return err
			}
			if opts.JSON && opts.YAML {
				return errors.New("--json and --yaml are mutually exclusive")
			}
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			s, err := openSession(g, in, out)
			if err != nil {
				return err
			}
			defer s.Close()

			report := s.disp.Enabled().Environment().Report()
			switch {
			case opts.JSON:
				return printJSON(out, report)
			case opts.YAML:
				return printYAML(out, report)
			}

			platform.PrintKV(out, "Platform", report.Platform)
			platform.PrintKV(out, "Constrained", fmt.Sprint(report.Constrained))
			platform.PrintKV(out, "OS", report.OS+"/"+report.Arch)
			if report.Kernel != "" {
				platform.PrintKV(out, "Kernel", report.Kernel)
			}
			caps := strings.Join(report.Capabilities, ", ")
			if caps == "" {
				caps = "(none)"
			}
			platform.PrintKV(out, "Capabilities", caps)
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// ListOptions defines flags for the list subcommand.
type ListOptions struct {
	All bool `flag:"all" flagshort:"a" flagdescr:"Include modules that cannot run on this host"`
}

func (o *ListOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func listCmd(g *globalOptions, in io.Reader, out io.Writer) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the modules available on this host",
		Args:  cobra.NoArgs,
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			s, err := openSession(g, in, out)
			if err != nil {
				return err
			}
			defer s.Close()

			set := s.disp.Enabled()
			if !opts.All {
				printModules(out, set, set.Ordered())
				return nil
			}
			printModules(out, set, s.reg.All())
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// printModules writes mods grouped by category. Modules outside set are
// marked unavailable.
func printModules(w io.Writer, set feature.EnabledSet, mods []feature.Module) {
	for _, c := range feature.Categories {
		var inCat []feature.Module
		for _, m := range mods {
			if m.Category == c {
				inCat = append(inCat, m)
			}
		}
		if len(inCat) == 0 {
			continue
		}
		platform.PrintSection(w, c.Title())
		for _, m := range inCat {
			mark := ""
			if !set.Contains(m.ID) {
				mark = " " + platform.Dim("(unavailable)")
			}
			fmt.Fprintf(w, "  %-12s %-20s %s%s\n", m.ID, m.Name, platform.Dim(m.Description), mark)
		}
	}
}

func runCmd(g *globalOptions, in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "run <module>",
		Short: "Run a single module and exit",
		Long: `Run one module through the same availability checks as the menu.

Exit codes: 0 success, 1 failure, 3 not available on this host, 130 cancelled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := openSession(g, in, out)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.disp.Select(strings.ToLower(args[0]))
			dispatch.Report(out, res, err)
			s.disp.Exit()

			switch {
			case errors.Is(err, dispatch.ErrNotAvailable):
				return &exitError{code: exitNotAvailable}
			case err != nil:
				return err
			case res.Status == feature.StatusCancelled:
				return &exitError{code: exitCancelled}
			case res.Status == feature.StatusFailure:
				return &exitError{code: exitFailure}
			}
			return nil
		},
	}
}

func versionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprintf(out, "zenik %s\n", version)
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
