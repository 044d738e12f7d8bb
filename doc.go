// Package marquee orchestrates the scroll-driven animations of a product
// landing page: a staged hero entrance, staggered section reveals,
// count-up metrics, scroll-scrubbed progress and parallax layers, and a
// looping typewriter over switchable code samples.
//
// The engine is host-agnostic. It animates [Region] values (plain structs
// holding alpha, offset, scale, width and text) and never draws anything
// itself. A host feeds it scroll events and frame ticks and renders the
// regions however it likes; the window and tui sub-packages are two such
// hosts.
//
// # Quick start
//
//	cfg := marquee.DefaultConfig()
//	engine, err := marquee.NewEngine(cfg, marquee.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	page := marquee.BuildLandingPage(cfg)
//	engine.Scroll(marquee.Viewport{Height: 900, DocumentHeight: page.Box.Height})
//	lc, err := engine.Mount(page)
//	if err != nil {
//		return err
//	}
//	defer lc.Teardown()
//
//	for range frames {
//		engine.ScrollTo(nextScrollY())
//		engine.Advance(time.Second / 60)
//	}
//
// # Frames
//
// All timing runs on the [Scheduler]'s virtual clock. [Engine.Advance] fires
// due timers, recomputes scroll bindings once if the viewport changed, then
// advances every tween and timeline registered before the frame began. Work
// registered during a frame starts on the next one. Nothing in the package is
// safe for concurrent use; call everything from the host's frame loop.
//
// # Lifecycle
//
// [Engine.Mount] wires every behavior onto a region tree and returns a
// [Lifecycle]. [Lifecycle.Teardown] cancels every tween, removes every scroll
// binding, stops every timer and restores the properties the mount touched.
// Mounting twice tears the first lifecycle down, so a remount never doubles
// animations. In debug mode ([WithDebug]) teardown also checks that nothing
// survived it.
//
// # Configuration
//
// [Config] holds the choreography (durations, eases, overlaps, thresholds)
// and the content feeds (metrics, benchmarks, code samples). [LoadConfig]
// overlays a YAML file on [DefaultConfig]. Ease names follow the usual
// "family.direction" form, for example "expo.out" or "power3.out"; see
// [LookupEase].
//
// # Replay
//
// [ParseScript] reads a YAML browsing session (scrolls, resizes, tab
// switches, waits and snapshots) that a [ScriptRunner] replays frame by
// frame. The marquee command uses it for headless runs and traces.
//
// # Events
//
// An [EventSink] set with [WithEventSink] receives mount, reveal, counter,
// tab and teardown events synchronously. The metrics package counts them for
// Prometheus, and the ecs module forwards them into a [Donburi] world.
//
// [Donburi]: https://github.com/yohamta/donburi
package marquee
