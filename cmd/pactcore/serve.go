package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pact-foundation/pact-core-go/internal/ffi"
	"github.com/pact-foundation/pact-core-go/internal/mockserver"
	pacttls "github.com/pact-foundation/pact-core-go/pkg/tls"
)

// shutdownTimeout bounds how long cleanup waits for in-flight requests to
// drain before the mock server's listener is forced closed.
const shutdownTimeout = 10 * time.Second

var (
	servePactFile string
	serveAddr     string
	serveTLS      bool
	serveTLSDir   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a mock server for a pact file and block until interrupted",
	Long: `Start an in-process mock server bound to every interaction in the given
pact file. Requests are matched against the pact's interactions the same
way a consumer test's mock server would. Press Ctrl-C to stop; on exit,
pactcore reports whether every interaction was exercised with no
mismatches.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		pactFile := servePactFile
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

		addr := serveAddr
		if addr == "" {
			addr = cfg.Addr
		}

		var tlsCfg *mockserver.TLSConfig
		if serveTLS || cfg.TLS {
			tlsCfg = &mockserver.TLSConfig{}
			if serveTLSDir != "" {
				cert, err := pacttls.EnsureCertificate(pacttls.DefaultCertificateConfig(),
					filepath.Join(serveTLSDir, "cert.pem"), filepath.Join(serveTLSDir, "key.pem"))
				if err != nil {
					return fmt.Errorf("pactcore: preparing TLS certificate: %w", err)
				}
				tlsCfg.CertPEM, tlsCfg.KeyPEM = cert.CertPEM, cert.KeyPEM
				info := pacttls.GetCertificateInfo(cert.Certificate)
				logger.Info("reusing persisted mock server certificate", "dir", serveTLSDir,
					"subject", info.Subject, "not_after", info.NotAfter)
			}
		}

		port, handle, err := ffi.CreateMockServer(data, addr, tlsCfg)
		if err != nil {
			return fmt.Errorf("pactcore: starting mock server: %w", err)
		}

		scheme := "http"
		if tlsCfg != nil {
			scheme = "https"
		}
		logger.Info("mock server listening", "url", fmt.Sprintf("%s://127.0.0.1:%d", scheme, port), "pact", pactFile)
		fmt.Printf("mock server listening on %s://127.0.0.1:%d (pact: %s)\n", scheme, port, pactFile)
		fmt.Println("press Ctrl-C to stop")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		matched, err := ffi.MockServerMatched(handle)
		if err != nil {
			return fmt.Errorf("pactcore: checking verdict: %w", err)
		}
		mismatches, _ := ffi.MockServerMismatches(handle)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := ffi.CleanupMockServer(ctx, handle); err != nil {
			logger.Warn("error during mock server cleanup", "error", err)
		}

		if matched {
			fmt.Println("all interactions matched")
			return nil
		}

		fmt.Println("mismatches:")
		fmt.Println(mismatches)
		return fmt.Errorf("pactcore: not every interaction matched")
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePactFile, "pact", "", "path to the pact file to serve")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "address to bind the mock server to (default: next free port)")
	serveCmd.Flags().BoolVar(&serveTLS, "tls", false, "serve over HTTPS with a generated self-signed certificate")
	serveCmd.Flags().StringVar(&serveTLSDir, "tls-cert-dir", "", "persist/reuse the self-signed TLS certificate in this directory instead of generating a new one each run")
	rootCmd.AddCommand(serveCmd)
}
