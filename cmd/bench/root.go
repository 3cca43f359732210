package bench

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/hexforge/fieldstate/cmd/util"
	"github.com/hexforge/fieldstate/lib/codec"
	"github.com/hexforge/fieldstate/lib/state"
	statetesting "github.com/hexforge/fieldstate/lib/state/testing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// BenchCmd measures codec throughput on a built-in sample state type
	BenchCmd = &cobra.Command{
		Use:     "bench",
		Short:   "Benchmark the fieldstate codec",
		Long:    "Benchmark full and incremental serialization, deserialization and diff application on a built-in sample state type covering every value kind.",
		RunE:    run,
		PreRunE: processBenchConfig,
	}

	benchMutations = 3
	benchSkip      = make([]string, 0)
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// add flags
	key := "skip"
	BenchCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. full,diff)"))
	key = "mutations"
	BenchCmd.Flags().Int(key, 3, util.WrapString("How many properties to dirty per iteration for the diff benchmarks"))
	key = "csv"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processBenchConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	benchMutations = viper.GetInt("mutations")
	if s := viper.GetString("skip"); s != "" {
		benchSkip = strings.Split(s, ",")
	}

	return nil
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Benchmark tool for the fieldstate codec")
	fmt.Println()
	fmt.Printf("Protocol version: %d.%d\n", codec.MajorVersion, codec.MinorVersion)
	fmt.Printf("Mutations per diff: %d\n", benchMutations)
	fmt.Println()

	fmt.Println("starting benchmarks...")

	// Create results map
	results := make(map[string]testing.BenchmarkResult)

	fullResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("full") {
			return
		}

		player := statetesting.SeededPlayer()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if _, err := codec.Serialize(player, true); err != nil {
				log.Printf("(full) - error serializing: %v\n", err)
			}
		}
	})

	results["full"] = fullResult
	printResult("full", fullResult)

	diffResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("diff") {
			return
		}

		player := statetesting.SeededPlayer()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			mutate(player, i)
			if _, err := codec.Serialize(player, false); err != nil {
				log.Printf("(diff) - error serializing: %v\n", err)
			}
			player.ClearDirty()
		}
	})

	results["diff"] = diffResult
	printResult("diff", diffResult)

	deserializeResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("deserialize") {
			return
		}

		data, err := codec.Serialize(statetesting.SeededPlayer(), true)
		if err != nil {
			log.Printf("(deserialize) - error preparing snapshot: %v\n", err)
			return
		}
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if _, err := codec.Deserialize[statetesting.PlayerState](data); err != nil {
				log.Printf("(deserialize) - error deserializing: %v\n", err)
			}
		}
	})

	results["deserialize"] = deserializeResult
	printResult("deserialize", deserializeResult)

	applyResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("apply") {
			return
		}

		source := statetesting.SeededPlayer()
		mutate(source, 1)
		diff, err := codec.Serialize(source, false)
		if err != nil {
			log.Printf("(apply) - error preparing diff: %v\n", err)
			return
		}
		target := statetesting.SeededPlayer()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if err := codec.Apply(diff, target); err != nil {
				log.Printf("(apply) - error applying diff: %v\n", err)
			}
		}
	})

	results["apply"] = applyResult
	printResult("apply", applyResult)

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range benchSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// mutate dirties up to benchMutations properties with iteration-dependent
// values, so diff serialization has something to emit.
func mutate(p *statetesting.PlayerState, i int) {
	muts := []func(){
		func() { p.SetHealth(int32(i)) },
		func() { p.SetScore(uint32(i)) },
		func() { p.SetName(fmt.Sprintf("player-%d", i)) },
		func() { p.Pos().SetX(int32(i)) },
		func() { _ = p.Slots().Set(i%p.Slots().Len(), state.Uint32(uint32(i))) },
	}
	for m := 0; m < benchMutations && m < len(muts); m++ {
		muts[m]()
	}
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"ProtocolVersion", "Mutations",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if result.NsPerOp() == 0 {
			skipped = "true"
			nsPerOp = 0
			opsPerSec = 0
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			fmt.Sprintf("%d.%d", codec.MajorVersion, codec.MinorVersion),
			strconv.Itoa(benchMutations),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
