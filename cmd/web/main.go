package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/de-tools/erate-atlas/pkg/server"
	"github.com/de-tools/erate-atlas/pkg/services/analysis"
	"github.com/de-tools/erate-atlas/pkg/services/config"
	"github.com/de-tools/erate-atlas/pkg/services/discovery"
	"github.com/de-tools/erate-atlas/pkg/store/usac"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for E-Rate Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a profile file overriding the defaults")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	profile, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	client := usac.NewClient(usac.Settings{
		Endpoint:     profile.Endpoint,
		QueryTimeout: profile.QueryTimeout(),
		BulkTimeout:  profile.BulkTimeout(),
	})

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            serverAddr(&logger),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Resolver: discovery.NewResolver(client),
			History:  analysis.NewHistoryAnalyzer(client, profile.Years(), profile.FetchLimit),
			State:    analysis.NewStateAnalyzer(client, profile.BulkFetchLimit),
			Profile:  &profile,
		},
	})

	return webAPI.Start()
}

func serverAddr(logger *zerolog.Logger) string {
	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	return net.JoinHostPort(host, port)
}
