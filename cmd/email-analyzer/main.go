package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/B0LK13/email-intel-hub/internal/analyze"
	"github.com/B0LK13/email-intel-hub/internal/config"
	"github.com/B0LK13/email-intel-hub/internal/core"
	"github.com/B0LK13/email-intel-hub/internal/factory"
	"github.com/B0LK13/email-intel-hub/internal/logging"
	"github.com/B0LK13/email-intel-hub/internal/parser"
	"github.com/B0LK13/email-intel-hub/internal/utils"
)

var (
	inputFile      = flag.String("file", "", "Input email file (use stdin if not specified)")
	inputFormat    = flag.String("format", "eml", "Email format when reading from stdin (eml, msg, txt, mbox)")
	threshold      = flag.Float64("threshold", 0.7, "Confidence threshold for threat detection")
	trustedDomains = flag.String("trusted-domains", "", "Comma-separated list of trusted domains for lookalike detection")
	verbose        = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog        = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile     = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.NewFromFile(*configFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = createConfigFromFlags()
	}

	// Build the analysis pipeline
	analysisFactory := factory.NewAnalysisFactory(cfg, logger)
	detectors, err := analysisFactory.CreateDetectors()
	if err != nil {
		logger.Fatal("Failed to create detectors", zap.Error(err))
	}
	serviceCfg, err := analysisFactory.CreateServiceConfig()
	if err != nil {
		logger.Fatal("Failed to create service configuration", zap.Error(err))
	}
	cacheFactory := factory.NewCacheFactory(cfg, logger)
	cacheRepo, err := cacheFactory.CreateCacheRepository()
	if err != nil {
		logger.Fatal("Failed to create cache", zap.Error(err))
	}
	defer cacheRepo.Stop()

	service := core.NewIntelligenceService(
		detectors,
		analyze.NewTextAnalyzer(),
		cacheRepo,
		utils.NewTextProcessor(logger),
		logger,
		serviceCfg,
	)

	// Read email from file or stdin
	var raw []byte
	filename := *inputFile
	if filename != "" {
		raw, err = os.ReadFile(filename)
		if err != nil {
			logger.Fatal("Failed to read input file", zap.Error(err), zap.String("file", filename))
		}
		logger.Info("Reading email from file", zap.String("file", filename))
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			logger.Fatal("Failed to read stdin", zap.Error(err))
		}
		filename = "stdin." + strings.TrimPrefix(*inputFormat, ".")
		logger.Info("Reading email from stdin")
	}

	// Parse email
	emailParser := parser.New(logger)
	emails, err := emailParser.Parse(raw, filename)
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	ctx := context.Background()
	for i, email := range emails {
		if len(emails) > 1 {
			fmt.Printf("\n##### Message %d of %d #####\n", i+1, len(emails))
		}
		printEmailSummary(email)

		fmt.Printf("=== Analysis ===\n")
		fmt.Printf("Threat threshold: %.2f\n", serviceCfg.ThreatThreshold)

		startTime := time.Now()
		analysis, err := service.AnalyzeEmail(ctx, email)
		if err != nil {
			logger.Fatal("Failed to analyze email", zap.Error(err))
		}
		printResults(analysis, time.Since(startTime))
	}
}

func printEmailSummary(email *core.Email) {
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", email.From)
	fmt.Printf("To: %s\n", strings.Join(email.To, ", "))
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.Body))
	fmt.Printf("Attachments: %d\n", len(email.Attachments))
	if *verbose {
		preview := email.Body
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nBody preview:\n%s\n", preview)
	}
	fmt.Printf("\n")
}

func printResults(analysis *core.Analysis, duration time.Duration) {
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Risk score: %.1f\n", analysis.RiskScore)
	fmt.Printf("Risk level: %s\n", analysis.RiskLevel)
	fmt.Printf("Category: %s\n", analysis.Category)
	fmt.Printf("Confidence: %.4f\n", analysis.Confidence)
	fmt.Printf("Sentiment: %s (%.2f)\n", analysis.Sentiment.Label, analysis.Sentiment.Score)

	for threat, result := range analysis.Threats {
		if !result.Detected {
			continue
		}
		fmt.Printf("\n[%s] confidence %.2f\n", threat, result.Confidence)
		for _, indicator := range result.Indicators {
			fmt.Printf("  - %s\n", indicator)
		}
	}

	if len(analysis.Topics) > 0 {
		words := make([]string, 0, len(analysis.Topics))
		for _, topic := range analysis.Topics {
			words = append(words, fmt.Sprintf("%s(%d)", topic.Word, topic.Count))
		}
		fmt.Printf("\nTopics: %s\n", strings.Join(words, ", "))
	}
	if analysis.Error != "" {
		fmt.Printf("Warning: %s\n", analysis.Error)
	}
	fmt.Printf("Processing time: %v\n", duration)
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("analysis.threat_threshold", *threshold)
	v.Set("cache.type", "memory")

	if *trustedDomains != "" {
		domains := strings.Split(*trustedDomains, ",")
		for i, domain := range domains {
			domains[i] = strings.TrimSpace(domain)
		}
		v.Set("detectors.trusted_domains", domains)
	}

	return config.NewFromViper(v)
}
