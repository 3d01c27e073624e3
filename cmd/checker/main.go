package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"portfolio_analyzer/internal/domain/entity"
	"portfolio_analyzer/internal/infrastructure/httpclient"
	"portfolio_analyzer/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		serverURL = flag.String("server", envOr("CHECKER_SERVER", "http://localhost:8080"), "analyzer API base URL")
		address   = flag.String("address", "", "wallet address to analyze (0x + 40 hex digits)")
		session   = flag.String("session", "", "run the analysis as a search in this session")
		asJSON    = flag.Bool("json", false, "print the raw report as JSON")
		timeout   = flag.Duration("timeout", 60*time.Second, "request timeout")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	walletAddress := utils.NormalizeAddress(*address)
	if !utils.ValidateAddress(walletAddress) {
		log.WithField("address", *address).Error("Invalid wallet address: expected 0x followed by 40 hex digits")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := httpclient.NewPortfolioClient(*serverURL, *timeout, log)
	report, err := fetch(ctx, client, *session, walletAddress, log)
	if err != nil {
		log.WithError(err).WithField("address", walletAddress).Error("Failed to analyze wallet")
		os.Exit(1)
	}

	if *asJSON {
		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
		if err != nil {
			log.WithError(err).Fatal("Failed to encode report")
		}
		fmt.Println(string(out))
		return
	}
	if err := writeReport(os.Stdout, report); err != nil {
		log.WithError(err).Fatal("Failed to print report")
	}
}

func fetch(ctx context.Context, client *httpclient.PortfolioClient, session, walletAddress string, log logrus.FieldLogger) (*entity.PortfolioReport, error) {
	if session == "" {
		return client.GetPortfolio(ctx, walletAddress)
	}

	result, err := client.Search(ctx, session, walletAddress)
	if err != nil {
		return nil, err
	}
	if !result.Applied {
		log.WithField("session", session).Warn("A newer search in this session superseded this result")
	}
	return result.Report, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
