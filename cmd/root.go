package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"judicial_scraper/application/traversal"
	"judicial_scraper/domain/entities"
	"judicial_scraper/infrastructure/browser"
	"judicial_scraper/infrastructure/storage"
	"judicial_scraper/presentation/terminal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	flagName       string
	flagDepartment string
	flagHeadless   bool
	flagOutput     string
	flagLogFile    string
)

var rootCmd = &cobra.Command{
	Use:   "judicial-scraper",
	Short: "Enumerates every selection combination of the judicial process form and saves the results.",
	Long: `judicial-scraper drives the Rama Judicial "consulta por nombre" form
through all department/city/entity/specialty/office combinations,
searching each one and persisting whatever the remote system returns.

When --name is omitted the run parameters are collected interactively.`,
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flagName, "name", "n", "", "name or business name to search for (prompted when omitted)")
	rootCmd.Flags().StringVarP(&flagDepartment, "department", "d", "", "restrict the scan to one department")
	rootCmd.Flags().BoolVar(&flagHeadless, "headless", false, "run the browser headless")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "judicial_results.json", "result file path")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "scraper.log", "log file path (empty disables the file handler)")
}

func run(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		// .env file is optional
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	logger := newLogger(flagLogFile)

	params := entities.RunParams{
		SearchName:       flagName,
		TargetDepartment: flagDepartment,
		Headless:         flagHeadless,
	}
	if params.SearchName == "" {
		var err error
		params, err = terminal.NewTerminalInterface(os.Stdin).CollectParams(params)
		if err != nil {
			return err
		}
	}

	driver, err := browser.NewFormDriver(params.Headless, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize browser: %w", err)
	}
	defer driver.Close()

	sink := storage.NewResultStore(flagOutput, logger)
	engine := traversal.NewEngine(driver, sink, params, logger)

	// SIGINT stops the run after the collected records are flushed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting judicial process scraper")
	if err := engine.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Scraping interrupted by user")
			return nil
		}
		return err
	}
	return nil
}

// newLogger builds the shared logger: full-timestamp text on stderr
// plus a rotating file handler when a path is configured.
func newLogger(logFile string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if logFile != "" {
		logger.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}))
	}

	return logger
}
