package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/casworks/giacbridge"
	"github.com/casworks/giacbridge/cas"
	"github.com/casworks/giacbridge/helpdb"
	"github.com/casworks/giacbridge/script"
)

var (
	flagVerbose   bool
	flagPrecision int
	flagComplex   bool
	flagHelpDB    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "giacalc",
	Short:         "Calculator over the embedded computer-algebra kernel",
	Long:          "giacalc evaluates algebraic expressions through the bridge: exact rational arithmetic, symbolic simplification, factorization and differentiation.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			if logger, err := zap.NewDevelopment(); err == nil {
				giacbridge.SetLogger(logger)
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// bare invocation on a terminal drops into the REPL
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return runRepl(newContext())
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log kernel diagnostics")

	evalCmd.Flags().IntVar(&flagPrecision, "precision", 0, "significant digits for approximate results")
	evalCmd.Flags().BoolVar(&flagComplex, "complex", false, "enable complex mode")
	replCmd.Flags().IntVar(&flagPrecision, "precision", 0, "significant digits for approximate results")
	replCmd.Flags().BoolVar(&flagComplex, "complex", false, "enable complex mode")
	commandsCmd.Flags().StringVar(&flagHelpDB, "db", "", "help database path (.db/.sqlite or aide text file)")

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(commandsCmd)
	rootCmd.AddCommand(versionCmd)
}

func newContext() *cas.Context {
	ctx := cas.NewContext()
	if flagPrecision > 0 {
		ctx.SetPrecision(flagPrecision)
	}
	ctx.SetComplexMode(flagComplex)
	return ctx
}

var evalCmd = &cobra.Command{
	Use:   "eval EXPR",
	Short: "Evaluate one expression and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newContext()
		ctx.SetWarningHandler(func(msg string) {
			fmt.Fprintln(os.Stderr, "warning: "+msg)
		})
		out, err := ctx.Eval(args[0])
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(newContext())
	},
}

var scriptCmd = &cobra.Command{
	Use:   "script FILE",
	Short: "Run a Risor script with the cas host functions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading script: %w", err)
		}
		result, err := script.Run(context.Background(), newContext(), string(src))
		if err != nil {
			return err
		}
		if result != nil {
			fmt.Println(result)
		}
		return nil
	},
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List documented kernel commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagHelpDB != "" {
			if err := helpdb.InitHelp(flagHelpDB); err != nil {
				return err
			}
			for _, name := range giacbridge.ListCommands() {
				entry, _ := helpdb.Lookup(name)
				fmt.Printf("%-16s %s\n", name, entry.Brief)
			}
			return nil
		}
		// without a help database, fall back to the symbol table
		for _, name := range cas.ListBuiltins() {
			fmt.Println(name)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print bridge and kernel versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("giacalc bridge %s (kernel %s)\n", giacbridge.BridgeVersion(), giacbridge.KernelVersion())
	},
}
