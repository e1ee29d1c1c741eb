// Package cli implements the hclust command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/hclust/config"
)

// Build info, set via -ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer
}

// NewRootCommand returns the hclust command tree writing to stdout and
// stderr. Each call uses a fresh viper instance.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: config.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "hclust",
		Short: "Agglomerative hierarchical clustering of ARFF datasets",
		Long: `hclust loads an ARFF dataset, optionally filters it, builds a
hierarchical clustering with the chosen link type and reports the clusters,
their dendrograms and, when a class attribute is set, a classes-to-clusters
evaluation.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.ReadFile(a.v, a.cfgFile)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./hclust.yaml or ~/.config/hclust/hclust.yaml)")
	pf.StringP("profile", "p", "", "built-in profile: adult or zoo")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-file", "", "write JSON logs to this file with rotation")
	a.bind(pf.Lookup("profile"), config.KeyProfile)
	a.bind(pf.Lookup("log-level"), config.KeyLogLevel)
	a.bind(pf.Lookup("log-file"), config.KeyLogFile)

	root.AddCommand(
		a.runCommand(),
		a.inspectCommand(),
		a.configCommand(),
		a.versionCommand(),
	)

	return root
}

// bind makes flag f the highest-precedence source of key. Unchanged flags
// leave the key to config file, environment and defaults.
func (a *app) bind(f *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("cli: bind %s: %v", key, err))
	}
}

// Run executes the command line args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	return 0
}

// Execute runs the command line of the current process.
func Execute() int {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}
