package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/madnguvu/loom"
)

var (
	flagVerbose bool

	flagNoTypeHints  bool
	flagNoDocstrings bool
	flagNoComments   bool
	flagNoFormat     bool
	flagNoOptimize   bool
	flagOutput       string

	flagMermaid bool
)

func main() {
	root := &cobra.Command{
		Use:           "loom",
		Short:         "Compile visual node graphs into source code",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	generateCmd := &cobra.Command{
		Use:   "generate <graph.yaml>",
		Short: "Generate code from a graph document",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}
	generateCmd.Flags().BoolVar(&flagNoTypeHints, "no-type-hints", false, "skip type hint synthesis")
	generateCmd.Flags().BoolVar(&flagNoDocstrings, "no-docstrings", false, "skip docstring synthesis")
	generateCmd.Flags().BoolVar(&flagNoComments, "no-comments", false, "skip comment preservation")
	generateCmd.Flags().BoolVar(&flagNoFormat, "no-format", false, "skip formatting")
	generateCmd.Flags().BoolVar(&flagNoOptimize, "no-optimize", false, "skip import hoisting and blank-line collapsing")
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write generated code to a file instead of stdout")

	validateCmd := &cobra.Command{
		Use:   "validate <graph.yaml>",
		Short: "Validate a graph document",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	metricsCmd := &cobra.Command{
		Use:   "metrics <source-file>",
		Short: "Report line metrics for a source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runMetrics,
	}

	graphCmd := &cobra.Command{
		Use:   "graph <graph.yaml>",
		Short: "Print a graph document",
		Args:  cobra.ExactArgs(1),
		RunE:  runGraph,
	}
	graphCmd.Flags().BoolVar(&flagMermaid, "mermaid", false, "output a Mermaid diagram")

	root.AddCommand(generateCmd, validateCmd, metricsCmd, graphCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !flagVerbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

func loadGraph(path string) (*loom.Graph, error) {
	doc, err := loom.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	g, err := loadGraph(args[0])
	if err != nil {
		return err
	}
	if errs := g.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, "validation:", e)
		}
		return fmt.Errorf("graph has %d validation error(s)", len(errs))
	}

	opts := loom.DefaultOptions()
	opts.Logger = logger
	opts.AddTypeHints = !flagNoTypeHints
	opts.AddDocstrings = !flagNoDocstrings
	opts.PreserveComments = !flagNoComments
	opts.FormatCode = !flagNoFormat
	opts.OptimizeCode = !flagNoOptimize

	result := loom.GenerateFromGraph(g, opts)
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	if !result.IsValid {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, "invalid output:", e)
		}
	}

	if flagOutput != "" {
		return os.WriteFile(flagOutput, []byte(result.Code+"\n"), 0o644)
	}
	fmt.Println(result.Code)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(args[0])
	if err != nil {
		return err
	}

	errs := g.Validate()
	if len(errs) == 0 {
		fmt.Printf("%s: %d node(s), %d connection(s), graph is valid\n",
			args[0], g.Len(), len(g.Connections()))
		return nil
	}
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
	return fmt.Errorf("graph has %d validation error(s)", len(errs))
}

func runMetrics(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	m := loom.GetCodeMetrics(string(data))
	fmt.Printf("total lines:      %d\n", m.TotalLines)
	fmt.Printf("non-empty lines:  %d\n", m.NonEmptyLines)
	fmt.Printf("comment lines:    %d\n", m.CommentLines)
	fmt.Printf("max line length:  %d\n", m.MaxLineLength)
	fmt.Printf("avg line length:  %.1f\n", m.AvgLineLength)
	return nil
}

func runGraph(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(args[0])
	if err != nil {
		return err
	}
	if flagMermaid {
		return loom.PrintMermaid(os.Stdout, g)
	}
	return loom.PrintGraph(os.Stdout, g)
}
