// Command sdkdemo drives the demo screens from a terminal against a
// configured attribution backend.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/campaign"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/config"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/deeplink"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/dynamiclink"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/event"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/navigation"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/notify"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/screen"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "sdkdemo",
	Short:        "Attribution SDK demo",
	Long:         `sdkdemo runs the demo app's screen actions against an attribution backend.`,
	SilenceUsage: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	RunE:  runConfigValidate,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sdkdemo version %s (sdk wire %s)\n", version, sdk.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log SDK calls")

	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd, versionCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	fmt.Printf("Configuration is valid\n")
	fmt.Printf("  Environment: %s\n", cfg.SDK.Environment)
	fmt.Printf("  Backend: %s\n", cfg.SDK.BaseURL)
	fmt.Printf("  Timeout: %s\n", cfg.SDK.Timeout)
	fmt.Printf("  Redis: %s\n", cfg.RedisURL)
	return nil
}

// app is one initialized SDK session with the screens built over it.
type app struct {
	client  *sdk.Client
	nav     *navigation.Memory
	screens *screen.Screens
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	facade := sdk.NewHTTPFacade(sdk.HTTPOptions{BaseURL: cfg.SDK.BaseURL, Timeout: cfg.SDK.Timeout}, logger)
	client := sdk.NewClient(facade, sdk.Config{
		AppKey:      cfg.SDK.Key,
		Secret:      cfg.SDK.Secret,
		Environment: sdk.Environment(cfg.SDK.Environment),
	}, logger)
	if err := client.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize sdk: %w", err)
	}

	nav := navigation.NewMemory(nil)
	screens := screen.New(screen.Deps{
		Submitter:  event.NewSubmitter(client, logger),
		Campaign:   campaign.NewRetriever(client, logger),
		Links:      dynamiclink.NewService(client, logger),
		Dispatcher: deeplink.NewDispatcher(deeplink.NewRouter(deeplink.DefaultRoutes()...), nav, logger),
		Parser:     client,
		Navigator:  nav,
		Notifier:   notify.NewLog(logger),
		Logger:     logger,
	})
	return &app{client: client, nav: nav, screens: screens}, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printOutcome shows the toast an action raised and returns the action error.
func printOutcome(out screen.Outcome, err error) error {
	if out.Notification != nil {
		fmt.Printf("[%s] %s\n", out.Notification.Severity, out.Notification.Message)
	}
	if out.Navigated != nil {
		fmt.Printf("  -> %s %v\n", out.Navigated.ScreenID, out.Navigated.QueryParams)
	}
	return err
}
