package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cn-pmlabs/gosai/driver/vs"
	"github.com/cn-pmlabs/gosai/lib/config"
	"github.com/cn-pmlabs/gosai/lib/log"
	"github.com/cn-pmlabs/gosai/lib/metrics"
	odbc "github.com/cn-pmlabs/gosai/lib/ovsdb_client"
	"github.com/cn-pmlabs/gosai/lib/warmboot"
	"github.com/cn-pmlabs/gosai/syncd"
)

var (
	version    string = "0.0.0"
	help       bool   = false
	configFile string
)

func usage() {
	fmt.Fprintf(os.Stderr, `syncd %s
Usage: syncd [-h] [-a asicdbAddr] [-f configFile]

Options:
`, version)
	flag.PrintDefaults()
}

func init() {
	flag.StringVar(&odbc.AsicdbAddr, "a", "", "asic database address, overrides the config file")
	flag.StringVar(&configFile, "f", "", "syncd configure file")
	flag.BoolVar(&help, "h", false, "display this help message")
	flag.Usage = usage
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}
	if odbc.AsicdbAddr != "" {
		cfg.Asicdb.Addr = odbc.AsicdbAddr
	}
	return cfg, nil
}

func main() {
	flag.Parse()
	if help {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "syncd: %v\n", err)
		os.Exit(1)
	}
	if err := log.Init(cfg.Log.File, cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "syncd: %v\n", err)
		os.Exit(1)
	}

	m := metrics.New()
	driverCfg := vs.Config{
		Name: cfg.Driver.Name,
		Capacity: vs.Capacity{
			FEC:          cfg.Driver.Capacity.FEC,
			NextHop:      cfg.Driver.Capacity.NextHop,
			NextHopGroup: cfg.Driver.Capacity.NextHopGroup,
		},
		Metrics: m,
	}
	if cfg.Driver.WarmbootFile != "" {
		store, err := warmboot.Open(cfg.Driver.WarmbootFile)
		if err != nil {
			log.Error("%s open warmboot file %s: %v\n", log.ModuleSyncd, cfg.Driver.WarmbootFile, err)
			os.Exit(1)
		}
		defer store.Close()
		driverCfg.Journal = store
	}

	// SAI driver init
	vs.Init(driverCfg)

	if cfg.Metrics.ListenAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		srv := &http.Server{Addr: cfg.Metrics.ListenAddress, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("%s metrics server: %v\n", log.ModuleSyncd, err)
			}
		}()
		defer srv.Close()
	}

	// Start ASIC DB connection and update notifier
	s := syncd.New(syncd.Options{
		Addr:        cfg.Asicdb.Addr,
		RestartWarm: cfg.Driver.RestartWarm,
		Metrics:     m,
	})
	s.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	log.Info("%s exit on %v\n", log.ModuleSyncd, <-sig)
	s.Stop()
}
