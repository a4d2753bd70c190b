package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pact-foundation/pact-core-go/internal/ffi"
)

var (
	mismatchesPactFile string
	mismatchesAddr     string
	mismatchesDuration time.Duration
	mismatchesFormat   string
)

var mismatchesCmd = &cobra.Command{
	Use:   "mismatches",
	Short: "Run a pact's mock server for a fixed window and report any mismatches",
	Long: `Start a mock server for a pact file, wait for --duration (or until
interrupted, whichever comes first), then print any recorded mismatches
and exit non-zero if there were any. Intended for scripted/CI use where a
system under test is driven against the mock server by another process
during that window.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		pactFile := mismatchesPactFile
		if pactFile == "" {
			pactFile = cfg.PactFile
		}
		if pactFile == "" {
			return fmt.Errorf("pactcore: --pact is required (or set pactFile in config)")
		}

		data, err := os.ReadFile(pactFile)
		if err != nil {
			return fmt.Errorf("pactcore: reading pact file: %w", err)
		}

		addr := mismatchesAddr
		if addr == "" {
			addr = cfg.Addr
		}

		port, handle, err := ffi.CreateMockServer(data, addr, nil)
		if err != nil {
			return fmt.Errorf("pactcore: starting mock server: %w", err)
		}
		fmt.Printf("mock server listening on http://127.0.0.1:%d (pact: %s)\n", port, pactFile)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		select {
		case <-time.After(mismatchesDuration):
		case <-sigCh:
		}

		matched, err := ffi.MockServerMatched(handle)
		if err != nil {
			return fmt.Errorf("pactcore: checking verdict: %w", err)
		}
		raw, rawErr := ffi.MockServerMismatches(handle)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = ffi.CleanupMockServer(ctx, handle)

		if matched {
			fmt.Println("no mismatches")
			return nil
		}

		if rawErr != nil {
			return fmt.Errorf("pactcore: reading mismatches: %w", rawErr)
		}

		var rows []map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &rows); err != nil {
			return fmt.Errorf("pactcore: decoding mismatches: %w", err)
		}

		var out []byte
		if mismatchesFormat == "yaml" {
			out, err = yaml.Marshal(rows)
		} else {
			out, err = json.MarshalIndent(rows, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("pactcore: encoding mismatches: %w", err)
		}
		fmt.Println(string(out))
		return fmt.Errorf("pactcore: %d mismatch(es)", len(rows))
	},
}

func init() {
	mismatchesCmd.Flags().StringVar(&mismatchesPactFile, "pact", "", "path to the pact file to serve")
	mismatchesCmd.Flags().StringVar(&mismatchesAddr, "addr", "", "address to bind the mock server to (default: next free port)")
	mismatchesCmd.Flags().DurationVar(&mismatchesDuration, "duration", 30*time.Second, "how long to wait before reporting")
	mismatchesCmd.Flags().StringVar(&mismatchesFormat, "format", "json", "output format: json or yaml")
	rootCmd.AddCommand(mismatchesCmd)
}
