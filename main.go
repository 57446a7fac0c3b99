package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"overlay-window/app"
	"overlay-window/config"
	"overlay-window/inspect"
	"overlay-window/log"
	"overlay-window/snap"
	"overlay-window/ui/layout"
)

var (
	version            = "0.3.0"
	cornerFlag         string
	keyboardHeightFlag float64
	coverStatusFlag    bool
	rootCmd            = &cobra.Command{
		Use:   "overlay-window",
		Short: "Overlay Window - A draggable, resizable picture-in-picture overlay that snaps to corners.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize()
			defer log.Close()
			log.InitDebug()
			defer log.CloseDebug()

			cfg := config.LoadConfig()
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}

			return app.Run(ctx, cfg, config.LoadState())
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved overlay position and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			state := config.LoadState()
			if err := state.Reset(); err != nil {
				return fmt.Errorf("failed to reset state: %w", err)
			}
			fmt.Println("Saved position and size have been reset")
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Printf("Log: %s\n", log.LogFileName())
			if inspect.IsEnabled() {
				fmt.Printf("Inspect: %s\n", inspect.GetInspectFile())
			}

			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				c := layout.ComputeConstraints(w, h, cfg.ExcludeFromStatusBar)
				fmt.Printf("Terminal: %dx%d (%s, %gx%g points per cell)\n",
					w, h, c.Mode, c.Scale.ColPoints, c.Scale.RowPoints)
				fmt.Printf("Container: %s\n", c.Container())
			}

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of overlay-window",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("overlay-window version %s\n", version)
		},
	}
)

// applyFlags lets command line flags override the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cornerFlag != "" {
		corner, err := snap.ParseCorner(cornerFlag)
		if err != nil {
			return fmt.Errorf("invalid corner: %w", err)
		}
		cfg.DefaultCorner = corner
	}
	if cmd.Flags().Changed("keyboard-height") {
		cfg.KeyboardFraction = keyboardHeightFlag
	}
	if coverStatusFlag {
		cfg.ExcludeFromStatusBar = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.Flags().StringVarP(&cornerFlag, "corner", "c", "",
		"Corner the overlay first appears in (top-left, top-right, bottom-left, bottom-right)")
	rootCmd.Flags().Float64Var(&keyboardHeightFlag, "keyboard-height", 0.4,
		"Fraction of the container the simulated keyboard covers")
	rootCmd.Flags().BoolVar(&coverStatusFlag, "cover-status", false,
		"Let the overlay float over the status line")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
	}
}
