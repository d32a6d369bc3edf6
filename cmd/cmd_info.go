// cmd_info.go - ops und info Commands
// Hauptfunktionen: newOpsCmd, newInfoCmd
package cmd

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/ollama/aggregates/aggregate"
	"github.com/ollama/aggregates/envconfig"
	"github.com/ollama/aggregates/executor"
	"github.com/ollama/aggregates/version"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.SetAutoWrapText(false)
	return table
}

// OpsHandler - Listet alle Opcodes mit ihrer Aritaet auf
func OpsHandler(cmd *cobra.Command, _ []string) error {
	var data [][]string
	for _, op := range aggregate.Opcodes() {
		arity, _ := aggregate.Lookup(op)

		arrays := make([]string, len(arity.Arrays))
		for i, rank := range arity.Arrays {
			switch rank {
			case 0:
				arrays[i] = arity.ArrayNames[i]
			default:
				arrays[i] = fmt.Sprintf("%s[%dd]", arity.ArrayNames[i], rank)
			}
		}

		data = append(data, []string{
			strconv.Itoa(int(op)),
			arity.Name,
			strings.Join(arrays, ", "),
			strconv.Itoa(arity.Scalars),
			strconv.Itoa(arity.Indices),
			strconv.Itoa(arity.Windows),
		})
	}

	table := newTable(cmd.OutOrStdout(), []string{"OPCODE", "NAME", "ARRAYS", "SCALARS", "INDICES", "WINDOWS"})
	table.AppendBulk(data)
	table.Render()
	return nil
}

// cpuFeatures gibt die fuer die BLAS-Kernels relevanten CPU-Features zurueck
func cpuFeatures() []string {
	var features []string
	switch runtime.GOARCH {
	case "amd64", "386":
		for _, f := range []struct {
			name string
			ok   bool
		}{
			{"sse4.1", cpu.X86.HasSSE41},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
		} {
			if f.ok {
				features = append(features, f.name)
			}
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			features = append(features, "asimd")
		}
		if cpu.ARM64.HasFPHP {
			features = append(features, "fphp")
		}
	}
	return features
}

// InfoHandler - Zeigt Version, Executoren und CPU-Features
func InfoHandler(cmd *cobra.Command, _ []string) error {
	features := cpuFeatures()
	if len(features) == 0 {
		features = []string{"-"}
	}

	table := newTable(cmd.OutOrStdout(), []string{"KEY", "VALUE"})
	table.AppendBulk([][]string{
		{"version", version.Version},
		{"executors", strings.Join(executor.Names(), ", ")},
		{"default executor", envconfig.Executor()},
		{"workers", strconv.Itoa(envconfig.NumParallel())},
		{"batch limit", strconv.FormatUint(uint64(envconfig.BatchLimit()), 10)},
		{"platform", runtime.GOOS + "/" + runtime.GOARCH},
		{"cpu features", strings.Join(features, " ")},
	})
	table.Render()
	return nil
}

// newOpsCmd - Erstellt den ops Command
func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List aggregate opcodes and their operands",
		Args:  cobra.ExactArgs(0),
		RunE:  OpsHandler,
	}
}

// newInfoCmd - Erstellt den info Command
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show executors and CPU features",
		Args:  cobra.ExactArgs(0),
		RunE:  InfoHandler,
	}
}
