// cmd_run.go - axpy und skipgram Commands
// Hauptfunktionen: newAxpyCmd, newSkipGramCmd, runWorkload
//
// Beide Commands erzeugen eine zufaellige Arbeitslast aus einem Seed, fuehren
// sie mit dem gewaehlten Executor in Batches aus und geben eine Zeittabelle
// aus. Mit --verify wird dieselbe Arbeitslast sequentiell wiederholt und
// elementweise verglichen.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ollama/aggregates/aggregate"
	"github.com/ollama/aggregates/envconfig"
	"github.com/ollama/aggregates/executor"
	"github.com/ollama/aggregates/kernels"
	"github.com/ollama/aggregates/ml"
)

// workload ist eine erzeugte Arbeitslast mit ihren veraenderlichen Arrays
type workload struct {
	aggs   []aggregate.Aggregate
	arrays []*ml.Dense
	names  []string
}

type buildFunc func(seed uint64) (*workload, error)

// addRunFlags - Gemeinsame Flags fuer axpy und skipgram
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("executor", envconfig.Executor(), "Executor to run the batches with")
	cmd.Flags().Int("workers", envconfig.NumParallel(), "Aggregates running at once")
	cmd.Flags().Int("batch-limit", int(envconfig.BatchLimit()), "Aggregates per batch")
	cmd.Flags().Int("count", 1024, "Number of aggregates")
	cmd.Flags().Uint64("seed", envconfig.Seed(), "Seed of the generated workload")
	cmd.Flags().Bool("verify", envconfig.VerifyBatches(), "Compare the result with sequential execution")
	cmd.Flags().Bool("dump", false, "Print the first array after execution")
}

func randomFill(r *rand.Rand, d *ml.Dense, scale float32) *ml.Dense {
	data := d.Floats()
	for i := range data {
		data[i] = (r.Float32() - 0.5) * scale
	}
	return d
}

// newAxpyCmd - Erstellt den axpy Command
func newAxpyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "axpy",
		Short: "Run a batch of random axpy aggregates",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, _ := cmd.Flags().GetInt("length")
			vectors, _ := cmd.Flags().GetInt("vectors")
			count, _ := cmd.Flags().GetInt("count")
			if n <= 0 || vectors <= 0 || count < 0 {
				return fmt.Errorf("length and vectors must be positive, count must not be negative")
			}

			return runWorkload(cmd, func(seed uint64) (*workload, error) {
				r := rand.New(rand.NewPCG(seed, seed))

				w := &workload{}
				for i := range vectors {
					w.arrays = append(w.arrays, randomFill(r, ml.Zeros(n), 2))
					w.names = append(w.names, "v"+strconv.Itoa(i))
				}

				for range count {
					x := w.arrays[r.IntN(vectors)]
					y := w.arrays[r.IntN(vectors)]
					a, err := aggregate.NewAxpy(x, y, float64((r.Float32()-0.5)/10))
					if err != nil {
						return nil, err
					}
					w.aggs = append(w.aggs, a)
				}
				return w, nil
			})
		},
	}

	addRunFlags(cmd)
	cmd.Flags().Int("length", 1024, "Length of every vector")
	cmd.Flags().Int("vectors", 16, "Number of distinct vectors")
	return cmd
}

// newSkipGramCmd - Erstellt den skipgram Command
func newSkipGramCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skipgram",
		Short: "Run a batch of random skip-gram updates",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			vocab, _ := cmd.Flags().GetInt("vocab")
			dim, _ := cmd.Flags().GetInt("dim")
			window, _ := cmd.Flags().GetInt("window")
			negative, _ := cmd.Flags().GetInt("negative")
			lr, _ := cmd.Flags().GetFloat64("learning-rate")
			count, _ := cmd.Flags().GetInt("count")
			if vocab <= 0 || dim <= 0 || window < 0 || negative < 0 || negative > vocab || count < 0 {
				return fmt.Errorf("invalid workload: vocab=%d dim=%d window=%d negative=%d count=%d", vocab, dim, window, negative, count)
			}

			table, err := ml.FromFloats(kernels.NewExpTable(int(envconfig.ExpTableSize())))
			if err != nil {
				return err
			}

			return runWorkload(cmd, func(seed uint64) (*workload, error) {
				r := rand.New(rand.NewPCG(seed, seed))

				syn0 := randomFill(r, ml.Zeros(vocab, dim), 1/float32(dim))
				syn1 := ml.Zeros(vocab, dim)
				syn1Neg := ml.Zeros(vocab, dim)

				w := &workload{
					arrays: []*ml.Dense{syn0, syn1, syn1Neg},
					names:  []string{"syn0", "syn1", "syn1Neg"},
				}

				for range count {
					context := make([]int, window)
					codes := make([]int, window)
					for i := range window {
						context[i] = r.IntN(vocab)
						codes[i] = r.IntN(2)
					}

					s, err := aggregate.NewSkipGram(aggregate.SkipGramArgs{
						Syn0:         syn0,
						Syn1:         syn1,
						Syn1Neg:      syn1Neg,
						ExpTable:     table,
						Target:       r.IntN(vocab),
						Context:      context,
						Codes:        codes,
						NegStart:     r.IntN(vocab - negative + 1),
						NegCount:     negative,
						Dim:          dim,
						LearningRate: lr,
					})
					if err != nil {
						return nil, err
					}
					w.aggs = append(w.aggs, s)
				}
				return w, nil
			})
		},
	}

	addRunFlags(cmd)
	cmd.Flags().Int("vocab", 1000, "Rows of syn0, syn1 and syn1Neg")
	cmd.Flags().Int("dim", 100, "Vector width")
	cmd.Flags().Int("window", 5, "Context rows per update")
	cmd.Flags().Int("negative", 5, "Negative samples per update")
	cmd.Flags().Float64("learning-rate", 0.025, "Learning rate")
	return cmd
}

// runWorkload - Fuehrt eine Arbeitslast aus und gibt das Ergebnis als Tabelle aus
func runWorkload(cmd *cobra.Command, build buildFunc) error {
	name, _ := cmd.Flags().GetString("executor")
	workers, _ := cmd.Flags().GetInt("workers")
	limit, _ := cmd.Flags().GetInt("batch-limit")
	seed, _ := cmd.Flags().GetUint64("seed")
	verify, _ := cmd.Flags().GetBool("verify")
	dump, _ := cmd.Flags().GetBool("dump")

	e, err := executor.New(name, executor.Options{
		Workers:    workers,
		MaxBatches: int(envconfig.MaxBatches()),
	})
	if err != nil {
		return err
	}

	w, err := build(seed)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := executor.ExecAll(cmd.Context(), e, w.aggs, limit); err != nil {
		return err
	}
	elapsed := time.Since(start)

	verified := "-"
	if verify {
		want, err := build(seed)
		if err != nil {
			return err
		}

		if err := executor.ExecAll(cmd.Context(), &executor.Sequential{}, want.aggs, limit); err != nil {
			return err
		}

		for i, a := range w.arrays {
			if !a.Equal(want.arrays[i], 0) {
				return fmt.Errorf("%s: batched result differs from sequential execution", w.names[i])
			}
		}
		verified = "ok"
	}

	slog.Debug("workload done", "executor", e.Name(), "aggregates", len(w.aggs), "duration", elapsed)

	batches := 1
	if limit > 0 {
		batches = max((len(w.aggs)+limit-1)/limit, 1)
	}

	out := cmd.OutOrStdout()
	table := newTable(out, []string{"EXECUTOR", "WORKERS", "AGGREGATES", "BATCHES", "DURATION", "PER AGGREGATE", "VERIFIED"})
	table.Append([]string{
		e.Name(),
		strconv.Itoa(max(workers, 1)),
		strconv.Itoa(len(w.aggs)),
		strconv.Itoa(batches),
		elapsed.Round(time.Microsecond).String(),
		perAggregate(elapsed, len(w.aggs)),
		verified,
	})
	table.Render()

	if dump && len(w.arrays) > 0 {
		printDump(out, w.names[0], w.arrays[0])
	}

	return nil
}

func perAggregate(d time.Duration, n int) string {
	if n == 0 {
		return "-"
	}
	return (d / time.Duration(n)).String()
}

func printDump(w io.Writer, name string, a *ml.Dense) {
	fmt.Fprintf(w, "\n%s =\n%s\n", name, ml.Dump(a, ml.DumpWithPrecision(6), ml.DumpWithEdgeItems(3)))
}
