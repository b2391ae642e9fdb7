package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erc7824/nitrolite/relayer/pkg/log"
	"github.com/erc7824/nitrolite/relayer/pkg/relayer"
	"github.com/erc7824/nitrolite/relayer/pkg/sign"
	"github.com/erc7824/nitrolite/relayer/pkg/typeddata"
)

// Components of a known-good signature, logged at startup to check the codec.
const (
	sampleR = "0x57fffebf28f8ec6a40afa4a22ec4b681d3836ff240a6383e6d22a4c30ebb93ce"
	sampleS = "0x337957898669ca77859d560caff24a5c8f84b54ed0a1fbb102dddb5f59d74097"
	sampleV = 28
)

func main() {
	bootLogger := log.NewZapLogger(log.Config{}).WithName("root")

	conf, err := LoadConfig(bootLogger)
	if err != nil {
		bootLogger.Fatal("failed to load configuration", "error", err)
	}
	logger := log.NewZapLogger(conf.Log).WithName("root")

	var metricsServer *http.Server
	opts := []relayer.Option{relayer.WithLogger(logger.WithName("relayer"))}
	if conf.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		opts = append(opts, relayer.WithMetrics(relayer.NewMetrics(registry)))

		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: conf.MetricsAddr, Handler: metricsMux}
	}

	provider, err := relayer.Connect(conf.RPCURL)
	if err != nil {
		logger.Fatal("failed to initialise provider", "error", err)
	}
	defer provider.Close()

	r, err := relayer.New(conf.PrivateKey, provider, opts...)
	if err != nil {
		logger.Fatal("failed to initialise signer", "error", err)
	}
	logger.Info("relayer signer initialized", "address", r.Address().Hex(), "rpc", provider.URL())

	if len(os.Args) > 1 {
		// If a CLI command is provided, run it and exit
		ctx := log.SetContextLogger(context.Background(), logger.WithName("cli"))
		if err := runCli(ctx, r, os.Args[1], os.Args[2:]); err != nil {
			logger.Fatal("command failed", "name", os.Args[1], "error", err)
		}
		return
	}

	sig, err := sign.BuildSignature(sampleR, sampleS, sampleV)
	if err != nil {
		logger.Fatal("failed to build sample signature", "error", err)
	}
	logger.Info("sample signature", "signature", sig.String())

	if metricsServer == nil {
		return
	}

	go func() {
		logger.Info("Prometheus metrics available", "listenAddr", conf.MetricsAddr, "endpoint", "/metrics")
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failure", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down metrics server", "error", err)
	}
	logger.Info("shutdown complete")
}

func runCli(ctx context.Context, r *relayer.Relayer, name string, args []string) error {
	switch name {
	case "address":
		fmt.Println(r.Address().Hex())
		return nil
	case "chain-id":
		chainID, err := r.ChainID(ctx)
		if err != nil {
			return err
		}
		fmt.Println(chainID)
		return nil
	case "sign":
		if len(args) != 1 {
			return fmt.Errorf("usage: sign <hash-struct>")
		}
		sig, err := r.SignMessage(sign.MakeRecoveryMessage(args[0]))
		if err != nil {
			return err
		}
		fmt.Println(sig)
		return nil
	case "verify":
		if len(args) != 2 {
			return fmt.Errorf("usage: verify <signature> <hash-struct>")
		}
		sig, err := sign.ParseSignature(args[0])
		if err != nil {
			return err
		}
		if err := r.Verify(sig, sign.MakeRecoveryMessage(args[1])); err != nil {
			return err
		}
		fmt.Println("valid")
		return nil
	case "sign-typed-data":
		if len(args) != 1 {
			return fmt.Errorf("usage: sign-typed-data <file.json>")
		}
		td, err := typeddata.LoadFile(args[0])
		if err != nil {
			return err
		}
		msg, err := typeddata.Message(td)
		if err != nil {
			return err
		}
		sig, err := r.SignMessage(msg)
		if err != nil {
			return err
		}
		fmt.Println(sig)
		return nil
	default:
		return fmt.Errorf("unknown CLI command %q", name)
	}
}
