package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/event"
)

var (
	trackName     string
	trackID       string
	trackCurrency string
	trackRevenue  float64
	trackParams   []string
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Submit events",
}

var trackBuiltinCmd = &cobra.Command{
	Use:   "builtin",
	Short: "Submit a built-in event by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := trackForm()
		if err != nil {
			return err
		}
		form.EventName = trackName
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		return printOutcome(a.screens.SubmitBuiltin(cmd.Context(), form))
	},
}

var trackCustomCmd = &cobra.Command{
	Use:   "custom",
	Short: "Submit a custom event by id",
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := trackForm()
		if err != nil {
			return err
		}
		form.EventID = trackID
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		return printOutcome(a.screens.SubmitCustom(cmd.Context(), form))
	},
}

var trackCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Submit the prefilled complete event",
	RunE: func(cmd *cobra.Command, args []string) error {
		form, profile := event.CompleteDefaults()
		if trackID != "" {
			form.EventID = trackID
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		return printOutcome(a.screens.SubmitComplete(cmd.Context(), form, profile))
	},
}

var trackCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List built-in events and supported currencies",
	Run: func(cmd *cobra.Command, args []string) {
		for _, ev := range event.Catalog() {
			fmt.Printf("%-22s %s\n", ev.Name, ev.ID)
		}
		fmt.Printf("\nCurrencies: %s\n", strings.Join(event.Currencies(), " "))
	},
}

func init() {
	for _, c := range []*cobra.Command{trackBuiltinCmd, trackCustomCmd} {
		c.Flags().StringVar(&trackCurrency, "currency", "USD", "currency code")
		c.Flags().Float64Var(&trackRevenue, "revenue", 0, "revenue, must be positive")
		c.Flags().StringArrayVarP(&trackParams, "param", "p", nil, "parameter as key=value, repeatable")
	}
	trackBuiltinCmd.Flags().StringVar(&trackName, "name", "", "built-in event name, e.g. PURCHASE")
	trackCustomCmd.Flags().StringVar(&trackID, "id", "", "event id")
	trackCompleteCmd.Flags().StringVar(&trackID, "id", "", "override the default event id")

	trackCmd.AddCommand(trackBuiltinCmd, trackCustomCmd, trackCompleteCmd, trackCatalogCmd)
	rootCmd.AddCommand(trackCmd)
}

func trackForm() (event.Form, error) {
	params, err := parseParams(trackParams)
	if err != nil {
		return event.Form{}, err
	}
	return event.Form{Currency: trackCurrency, Revenue: trackRevenue, Params: params}, nil
}

// parseParams turns key=value flags into positional parameters. A value may
// itself contain '='.
func parseParams(values []string) ([]domain.Param, error) {
	params := make([]domain.Param, 0, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("parameter %q is not key=value", v)
		}
		params = append(params, domain.Param{Key: key, Value: value})
	}
	return params, nil
}
