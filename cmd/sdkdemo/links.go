package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Show the install's campaign attribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(a.screens.CampaignData(cmd.Context()))
	},
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Dynamic link commands",
}

var linkCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the demo dynamic link",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		out, err := a.screens.CreateDynamicLink(cmd.Context(), nil)
		if err := printOutcome(out.Outcome, err); err != nil {
			return err
		}
		fmt.Println(out.Link)
		return nil
	},
}

var linkResolveCmd = &cobra.Command{
	Use:   "resolve [url]",
	Short: "Resolve a dynamic link, or the demo link when none is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rawURL string
		if len(args) == 1 {
			rawURL = args[0]
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		out, err := a.screens.ResolveLink(cmd.Context(), rawURL)
		if err := printOutcome(out.Outcome, err); err != nil {
			return err
		}
		return printJSON(out.Resolved)
	},
}

var openCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "Open the app with a deep link and show where it lands",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		res, err := a.screens.OpenDeepLink(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s %v\n", res.State, res.Target.ScreenID, res.Target.QueryParams)
		if res.Err != nil {
			fmt.Printf("  %v\n", res.Err)
		}
		return nil
	},
}

func init() {
	linkCmd.AddCommand(linkCreateCmd, linkResolveCmd)
	rootCmd.AddCommand(campaignCmd, linkCmd, openCmd)
}
