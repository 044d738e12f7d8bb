package marquee

import "fmt"

// Page layout constants, in document pixels.
const (
	PageWidth      = 1280.0
	heroHeight     = 1380.0
	metricsHeight  = 320.0
	forgeHeight    = 820.0
	benchHeight    = 760.0
	ecoHeight      = 720.0
	ctaHeight      = 900.0
	footerHeight   = 520.0
	sectionPadding = 96.0
)

// BuildLandingPage lays out the landing page as a region tree: fixed parallax
// grid and progress bar, the hero with its illustration, HUD badges and code
// tabs, then the metric, forge, benchmark, ecosystem and call-to-action
// sections and the footer. Counter and benchmark regions are left empty; the
// metric feeds fill them at mount.
func BuildLandingPage(cfg Config) *Region {
	doc := NewRegion("document", RoleNone, Rect{})

	// Fixed layers span the document so scroll math treats them as page-wide.
	doc.AddChild(NewRegion("bg-grid", RoleParallax, Rect{Width: PageWidth}))
	progress := NewRegion("progress", RoleProgressBar, Rect{Width: PageWidth, Height: 2})
	doc.AddChild(progress)

	y := 0.0
	next := func(h float64) Rect {
		r := Rect{Y: y, Width: PageWidth, Height: h}
		y += h
		return r
	}

	hero := NewRegion("hero", RoleNone, next(heroHeight))
	doc.AddChild(hero)
	row := func(name string, role Role, top, h float64, text string) *Region {
		r := NewRegion(name, role, Rect{X: 160, Y: hero.Box.Y + top, Width: PageWidth - 320, Height: h})
		r.Text = text
		hero.AddChild(r)
		return r
	}
	row("hero-badge", RoleHeroSub, 192, 28, "Build 0.8.2-Alpha")
	row("hero-heading", RoleHeroHeading, 252, 220, "Construct at Silicon Speed.")
	row("hero-copy", RoleHeroSub, 500, 64, "We replaced Electron with a pure Rust runtime. Zero V8 overhead. GPU-direct rendering.")
	row("hero-actions", RoleHeroSub, 588, 56, "[Download Speedy Core]  [Read Whitepaper]")

	ide := row("hero-ide", RoleHeroIllustration, 708, 600, "")
	hud := NewRegion("hud-fps", RoleHUDBadge, Rect{X: ide.Box.X + ide.Box.Width - 168, Y: ide.Box.Y - 40, Width: 192, Height: 72})
	hud.Text = "GPU Frame Rate 144.0 FPS"
	ide.AddChild(hud)
	hud = NewRegion("hud-shield", RoleHUDBadge, Rect{X: ide.Box.X - 24, Y: ide.Box.Y + ide.Box.Height - 32, Width: 208, Height: 72})
	hud.Text = "Memory Shield"
	ide.AddChild(hud)
	for i, s := range cfg.Typewriter.Samples {
		tab := NewRegion("tab:"+s.Key, RoleCodeTab, Rect{X: ide.Box.X + 360 + float64(i)*96, Y: ide.Box.Y + 12, Width: 88, Height: 16})
		tab.Text = s.Key
		ide.AddChild(tab)
	}
	ide.AddChild(NewRegion("code-output", RoleCodeOutput, Rect{X: ide.Box.X + 104, Y: ide.Box.Y + 80, Width: ide.Box.Width - 144, Height: 360}))

	// Metrics: one counter per feed entry.
	metrics := NewRegion("metrics", RoleRevealSection, next(metricsHeight))
	doc.AddChild(metrics)
	cols := max(len(cfg.Metrics), 1)
	colW := (PageWidth - 2*sectionPadding) / float64(cols)
	for i, m := range cfg.Metrics {
		box := Rect{X: sectionPadding + float64(i)*colW, Y: metrics.Box.Y + sectionPadding, Width: colW - 48, Height: 128}
		card := NewRegion(fmt.Sprintf("metric-%d", i), RoleRevealChild, box)
		card.Label = m.Label
		card.Text = m.Description
		metrics.AddChild(card)
		card.AddChild(NewRegion(fmt.Sprintf("counter-%d", i), RoleCounter, Rect{X: box.X, Y: box.Y + 24, Width: box.Width, Height: 56}))
	}

	forge := NewRegion("forge", RoleRevealSection, next(forgeHeight))
	doc.AddChild(forge)
	addCards(forge, []string{"Engineered Raw.", "Resource Telemetry"})

	bench := NewRegion("benchmarks", RoleRevealSection, next(benchHeight))
	doc.AddChild(bench)
	header := NewRegion("bench-header", RoleRevealChild, Rect{X: sectionPadding, Y: bench.Box.Y + 128, Width: PageWidth / 2, Height: 160})
	header.Text = "Benchmarked Results."
	bench.AddChild(header)
	cols = max(len(cfg.Benchmarks), 1)
	colW = (PageWidth - 2*sectionPadding) / float64(cols)
	for i, b := range cfg.Benchmarks {
		box := Rect{X: sectionPadding + float64(i)*colW, Y: bench.Box.Y + 368, Width: colW - 32, Height: 280}
		card := NewRegion(fmt.Sprintf("bench-%d", i), RoleRevealChild, box)
		card.Label = b.Label
		card.Text = b.Description
		bench.AddChild(card)
		card.AddChild(NewRegion(fmt.Sprintf("bench-value-%d", i), RoleBenchmark, Rect{X: box.X, Y: box.Y + 96, Width: box.Width, Height: 48}))
	}

	eco := NewRegion("ecosystem", RoleRevealSection, next(ecoHeight))
	doc.AddChild(eco)
	addCards(eco, []string{"Ghost Protocol / OSS Core", "Forged by Systems."})

	cta := NewRegion("cta", RoleRevealSection, next(ctaHeight))
	doc.AddChild(cta)
	addCards(cta, []string{"Join the Vanguard."})

	footer := NewRegion("footer", RoleNone, next(footerHeight))
	footer.Text = "© 2024 Speedy Core Labs Inc."
	doc.AddChild(footer)

	doc.Box = Rect{Width: PageWidth, Height: y}
	doc.Find("bg-grid").Box.Height = y
	return doc
}

// addCards lays out one reveal child per text, side by side.
func addCards(section *Region, texts []string) {
	w := (PageWidth - 2*sectionPadding) / float64(len(texts))
	for i, t := range texts {
		c := NewRegion(fmt.Sprintf("%s-%d", section.Name, i), RoleRevealChild, Rect{
			X:      sectionPadding + float64(i)*w,
			Y:      section.Box.Y + 128,
			Width:  w - 96,
			Height: section.Box.Height - 256,
		})
		c.Text = t
		section.AddChild(c)
	}
}
