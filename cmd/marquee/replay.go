package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/phanxgames/marquee"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// snapshotRecord is one snapshot step's output.
type snapshotRecord struct {
	Label   string                `json:"label" yaml:"label"`
	Frame   uint64                `json:"frame" yaml:"frame"`
	Regions []marquee.RegionState `json:"regions" yaml:"regions"`
}

func newReplayCmd(opts *options) *cobra.Command {
	var asJSON bool
	var only []string
	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "replay a scripted session headless and print snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			runner, err := marquee.LoadScript(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			write := snapshotWriter(out, asJSON)
			runner.OnSnapshot = func(label string, states []marquee.RegionState) {
				rec := snapshotRecord{Label: label, Frame: a.engine.Scheduler().Frame(), Regions: filterStates(states, only)}
				if err := write(rec); err != nil {
					a.log.Error("write snapshot", zap.Error(err))
				}
			}
			return a.serve(cmd.Context(), opts.metricsAddr, func(context.Context) error {
				return replay(a, runner, nil)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per snapshot instead of YAML")
	cmd.Flags().StringSliceVar(&only, "only", nil, "limit snapshots to these region names")
	return cmd
}

func newTraceCmd(opts *options) *cobra.Command {
	var region, prop string
	var height, width int
	cmd := &cobra.Command{
		Use:   "trace <script>",
		Short: "plot one region property across a scripted session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := marquee.ParseProperty(prop)
			if err != nil {
				return err
			}
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			target := a.tree.Find(region)
			if target == nil {
				return fmt.Errorf("trace: no region named %q", region)
			}
			runner, err := marquee.LoadScript(args[0])
			if err != nil {
				return err
			}
			var samples []float64
			err = a.serve(cmd.Context(), opts.metricsAddr, func(context.Context) error {
				return replay(a, runner, func() {
					samples = append(samples, target.Property(p))
				})
			})
			if err != nil {
				return err
			}
			graph := asciigraph.Plot(samples,
				asciigraph.Height(height),
				asciigraph.Width(width),
				asciigraph.Caption(fmt.Sprintf("%s.%s over %d frames", region, p, len(samples))),
			)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), graph)
			return err
		},
	}
	cmd.Flags().StringVar(&region, "region", "progress", "region name")
	cmd.Flags().StringVar(&prop, "prop", "width", "property: alpha, offset-x, offset-y, scale, width, value")
	cmd.Flags().IntVar(&height, "height", 12, "plot height")
	cmd.Flags().IntVar(&width, "width", 80, "plot width")
	return cmd
}

// replay mounts the page, runs the script frame by frame and tears down.
func replay(a *app, runner *marquee.ScriptRunner, sample func()) error {
	s := runner.Script()
	a.engine.Scroll(marquee.Viewport{Height: s.Height, DocumentHeight: a.tree.Box.Height})
	if _, err := a.engine.Mount(a.tree); err != nil {
		return err
	}
	defer func() {
		if lc := a.engine.Current(); lc != nil {
			lc.Teardown()
		}
	}()
	return runner.Run(a.engine, a.tree, func(uint64) {
		a.observe()
		if sample != nil {
			sample()
		}
	})
}

func snapshotWriter(w io.Writer, asJSON bool) func(snapshotRecord) error {
	if asJSON {
		enc := json.NewEncoder(w)
		return func(r snapshotRecord) error { return enc.Encode(r) }
	}
	return func(r snapshotRecord) error {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
}

func filterStates(states []marquee.RegionState, only []string) []marquee.RegionState {
	if len(only) == 0 {
		return states
	}
	keep := make(map[string]bool, len(only))
	for _, n := range only {
		keep[n] = true
	}
	out := states[:0:0]
	for _, s := range states {
		if keep[s.Name] {
			out = append(out, s)
		}
	}
	return out
}
