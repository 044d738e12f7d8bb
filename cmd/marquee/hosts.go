package main

import (
	"context"

	"github.com/phanxgames/marquee/tui"
	"github.com/phanxgames/marquee/window"
	"github.com/spf13/cobra"
)

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "play the page in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, true)
			if err != nil {
				return err
			}
			return a.serve(cmd.Context(), opts.metricsAddr, func(ctx context.Context) error {
				return tui.Run(ctx, a.engine, a.tree, a.observe)
			})
		},
	}
}

func newWindowCmd(opts *options) *cobra.Command {
	var width, height int
	var showFPS bool
	var shots string
	cmd := &cobra.Command{
		Use:   "window",
		Short: "play the page in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			return a.serve(cmd.Context(), opts.metricsAddr, func(ctx context.Context) error {
				return window.Run(ctx, a.engine, a.tree, window.RunConfig{
					Title:         "marquee",
					Width:         width,
					Height:        height,
					ShowFPS:       showFPS,
					ScreenshotDir: shots,
					OnFrame:       a.observe,
				})
			})
		},
	}
	cmd.Flags().IntVar(&width, "width", window.DefaultWidth, "window width")
	cmd.Flags().IntVar(&height, "height", window.DefaultHeight, "window height")
	cmd.Flags().BoolVar(&showFPS, "fps", false, "show FPS and TPS")
	cmd.Flags().StringVar(&shots, "screenshots", window.DefaultScreenshotDir, "directory for screenshots taken with P")
	return cmd
}
