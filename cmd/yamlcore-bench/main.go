// Command yamlcore-bench is the companion benchmark binary spec.md §6
// describes: it has no role in the engine itself, it just parses and
// re-serializes a file some number of times and reports throughput.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yamlcore-go/yamlcore"
)

var (
	iterations int

	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

func main() {
	root := &cobra.Command{
		Use:   "yamlcore-bench <file>",
		Short: "Measure yamlcore deserialize/serialize throughput on a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().IntVarP(&iterations, "iterations", "n", 50, "number of parse/emit round trips to run")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	start := time.Now()
	var docs []*yamlcore.Node
	for i := 0; i < iterations; i++ {
		docs, err = yamlcore.DeserializeDocs(raw)
		if err != nil {
			return fmt.Errorf("deserialize: %w", err)
		}
	}
	parseElapsed := time.Since(start)

	start = time.Now()
	var out string
	for i := 0; i < iterations; i++ {
		out, err = yamlcore.SerializeDocsString(docs)
		if err != nil {
			return fmt.Errorf("serialize: %w", err)
		}
	}
	emitElapsed := time.Since(start)

	mb := float64(len(raw)) / (1024 * 1024)
	printStat("input size", fmt.Sprintf("%.3f MiB", mb))
	printStat("iterations", fmt.Sprintf("%d", iterations))
	printStat("parse throughput", fmt.Sprintf("%.2f MiB/s", mb*float64(iterations)/parseElapsed.Seconds()))
	printStat("emit throughput", fmt.Sprintf("%.2f MiB/s", mb*float64(iterations)/emitElapsed.Seconds()))
	printStat("output size", fmt.Sprintf("%.3f MiB", float64(len(out))/(1024*1024)))
	return nil
}

func printStat(label, value string) {
	fmt.Printf("%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}
