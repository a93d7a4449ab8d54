package probe

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/ValentinKolb/owire/cmd/util"
	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:      "perf",
		Short:    "Measure request/response throughput against a broker",
		PreRunE:  setupClient,
		RunE:     runPerf,
		PostRunE: closeClient,
	}
	perfNumThreads = 10
)

func init() {
	// add flags
	key := "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of goroutines sending requests concurrently"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func runPerf(cmd *cobra.Command, _ []string) error {
	perfNumThreads = viper.GetInt("threads")
	config := util.GetClientConfig()

	fmt.Println("Performance testing tool for OpenWire brokers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(config.String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("starting tests...")

	results := make(map[string]testing.BenchmarkResult)

	results["keep-alive"] = testing.Benchmark(func(b *testing.B) {
		b.SetParallelism(perfNumThreads)
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				if _, err := client.Request(context.Background(), &commands.KeepAliveInfo{}); err != nil {
					plog.Errorf("(keep-alive) - request failed: %v", err)
				}
			}
		})
	})
	printResult("keep-alive", results["keep-alive"])

	// the same destination in every request, served from the object cache
	dest := &commands.ActiveMQQueue{ActiveMQDestination: commands.ActiveMQDestination{PhysicalName: "owctl.perf"}}
	consumer := &commands.ConsumerID{ConnectionID: "ID:owctl-perf", SessionID: 1, Value: 1}
	results["message-pull"] = testing.Benchmark(func(b *testing.B) {
		b.SetParallelism(perfNumThreads)
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				pull := &commands.MessagePull{ConsumerID: consumer, Destination: dest}
				if _, err := client.Request(context.Background(), pull); err != nil {
					plog.Errorf("(message-pull) - request failed: %v", err)
				}
			}
		})
	})
	printResult("message-pull", results["message-pull"])

	printStats(cmd.OutOrStdout())

	if csvPath := viper.GetString("csv"); csvPath != "" {
		if err := writeResultsToCSV(csvPath, results, config); err != nil {
			return err
		}
		fmt.Printf("results written to %s\n", csvPath)
	}
	return nil
}

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
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult, config *common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec",
		"Address", "WireVersion", "Tight", "Cache", "Threads",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	for test, result := range results {
		nsPerOp := math.Max(float64(result.NsPerOp()), 1)
		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", 1.0/(nsPerOp/1e9)),
			config.Transport.Address(),
			strconv.Itoa(config.WireFormat.Version),
			strconv.FormatBool(config.WireFormat.TightEncoding),
			strconv.FormatBool(config.WireFormat.CacheEnabled),
			strconv.Itoa(perfNumThreads),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
