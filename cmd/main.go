package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/SyntropyNet/syntropy-ping/internal/cli"
	"github.com/SyntropyNet/syntropy-ping/internal/config"
	"github.com/SyntropyNet/syntropy-ping/internal/exporter"
	"github.com/SyntropyNet/syntropy-ping/internal/logger"
	"github.com/SyntropyNet/syntropy-ping/pkg/probe"
	"github.com/SyntropyNet/syntropy-ping/pkg/resolver"
	"golang.org/x/sys/unix"
)

const fullAppName = "Syntropy Ping. "

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	execName := os.Args[0]

	showVersionAndExit := flag.Bool("version", false, "Show version and exit")

	flag.Parse()
	if *showVersionAndExit {
		fmt.Printf("%s (%s):\t%s\n\n", fullAppName, execName, config.GetFullVersion())
		return
	}

	config.Init()
	defer config.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wait for SIGINT or SIGTERM to stop probing
	terminate := make(chan os.Signal, 1)
	signal.Notify(terminate, os.Interrupt, unix.SIGTERM)
	go func() {
		<-terminate
		logger.Info().Println(fullAppName, "terminating")
		cancel()
	}()

	// ICMP identifier is process ID truncated to 16 bits
	app := cli.New(execName, uint16(os.Getpid()&0xffff))
	if port := config.ExporterPort(); port != 0 {
		app.NewClient = func(dest resolver.Destination) probe.ProbeClient {
			collector := exporter.NewCollector(dest.DisplayName(), dest.Addr.String())
			metrics, err := exporter.New(port, collector)
			if err != nil {
				logger.Error().Println(fullAppName, "could not create exporter", err)
				return &exporter.DummyCollector{}
			}
			if err := metrics.Run(ctx); err != nil {
				logger.Error().Println(fullAppName, "could not start exporter", err)
			}
			return collector
		}
	}

	logger.Info().Println(fullAppName, execName, config.GetFullVersion(), "started.")
	exitCode = app.Run(ctx, flag.Args())
}
