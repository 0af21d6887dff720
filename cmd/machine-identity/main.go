package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gosplash"
	"github.com/qdm12/log"
	"github.com/qdm12/machine-identity/internal/config"
	"github.com/qdm12/machine-identity/internal/models"
	"github.com/qdm12/machine-identity/internal/resolver"
	"github.com/qdm12/machine-identity/internal/server"
	"github.com/qdm12/machine-identity/pkg/format"
	"github.com/qdm12/machine-identity/pkg/machine"
	"github.com/qdm12/machine-identity/pkg/netif"
)

//nolint:gochecknoglobals
var (
	version = "unknown"
	commit  = "unknown"
	date    = "an unknown date"
)

func main() {
	buildInfo := models.BuildInformation{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	logger := log.New()

	reader := reader.New(reader.Settings{
		HandleDeprecatedKey: func(source, oldKey, newKey string) {
			logger.Warnf("%q key %s is deprecated, please use %q instead",
				source, oldKey, newKey)
		},
	})

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	ctx, cancel := context.WithCancel(ctx)

	errorCh := make(chan error)
	go func() {
		errorCh <- _main(ctx, reader, os.Args, logger, buildInfo)
	}()

	select {
	case <-ctx.Done():
		stop()
		logger.Warn("Caught OS signal, shutting down")
	case err := <-errorCh:
		stop()
		close(errorCh)
		if err == nil { // expected exit such as version or no server
			os.Exit(0)
		}
		logger.Error(err.Error())
		cancel()
	}

	const shutdownGracePeriod = 5 * time.Second
	timer := time.NewTimer(shutdownGracePeriod)
	select {
	case err := <-errorCh:
		if !timer.Stop() {
			<-timer.C
		}
		if err != nil {
			logger.Error(err.Error())
		}
		logger.Info("Shutdown successful")
	case <-timer.C:
		logger.Warn("Shutdown timed out")
	}

	os.Exit(1)
}

func _main(ctx context.Context, reader *reader.Reader, args []string,
	logger log.LoggerInterface, buildInfo models.BuildInformation) (err error) {
	if len(args) > 1 {
		switch args[1] {
		case "version", "-version", "--version":
			fmt.Println(buildInfo.VersionString())
			return nil
		}
	}

	printSplash(buildInfo)

	config, err := readConfig(reader, logger)
	if err != nil {
		return err
	}

	resolver, err := resolver.New(config.Resolver)
	if err != nil {
		return fmt.Errorf("creating resolver: %w", err)
	}

	source, err := netif.ParseSource(config.Machine.InterfacesSource)
	if err != nil {
		return err
	}
	lister, err := netif.New(source)
	if err != nil {
		return fmt.Errorf("creating interface lister: %w", err)
	}

	machineLogger := logger.New(log.SetComponent("machine"))
	identity, err := machine.Init(ctx, config.Machine.ToSettings(),
		resolver, lister, format.New(), machineLogger)
	if err != nil {
		return fmt.Errorf("initializing machine identity: %w", err)
	}
	logger.Info(identity.String())

	if !*config.Server.Enabled {
		return nil
	}

	serverLogger := logger.New(log.SetComponent("http server"))
	server := server.New(config.Server.ListeningAddress, config.Server.RootURL,
		machine.Instance, serverLogger)
	serverDone := make(chan struct{})
	go server.Run(ctx, serverDone)

	<-ctx.Done()
	<-serverDone
	return nil
}

func printSplash(buildInfo models.BuildInformation) {
	splashSettings := gosplash.Settings{
		User:       "qdm12",
		Repository: "machine-identity",
		Emails:     []string{"quentin.mcgaw@gmail.com"},
		Version:    buildInfo.Version,
		Commit:     buildInfo.Commit,
		BuildDate:  buildInfo.Date,
		// Sponsor information
		PaypalUser:    "qmcgaw",
		GithubSponsor: "qdm12",
	}
	for _, line := range gosplash.MakeLines(splashSettings) {
		fmt.Println(line)
	}
}

func readConfig(reader *reader.Reader, logger log.LoggerInterface) (
	config config.Config, err error) {
	err = config.Read(reader)
	if err != nil {
		return config, fmt.Errorf("reading settings: %w", err)
	}
	config.SetDefaults()
	err = config.Validate()
	if err != nil {
		return config, fmt.Errorf("settings validation: %w", err)
	}

	logger.Patch(config.Logger.ToOptions()...)
	logger.Info(config.String())

	return config, nil
}
