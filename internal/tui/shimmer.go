package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// ShimmerConfig holds configuration for the phase label shimmer
type ShimmerConfig struct {
	Enabled      bool          // animations: on|off
	ReduceMotion bool          // if true → static highlight
	Interval     time.Duration // frame interval
	WidthRatio   float64       // highlight width relative to the text
	Cycle        time.Duration // one sweep across the text
	PauseBetween time.Duration // rest between sweeps
	Base         rgb
	Highlight    rgb
}

type rgb struct{ r, g, b int }

// hexColor parses "#RRGGBB"; anything else is white
func hexColor(s string) rgb {
	var c rgb
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.r, &c.g, &c.b); err != nil {
		return rgb{255, 255, 255}
	}
	return c
}

// DefaultShimmerConfig returns default shimmer configuration
func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:      true,
		Interval:     100 * time.Millisecond,
		WidthRatio:   0.3,
		Cycle:        1800 * time.Millisecond,
		PauseBetween: 600 * time.Millisecond,
		Base:         hexColor(ColorSecondaryText),
		Highlight:    hexColor(ColorAccentBright),
	}
}

// ShimmerState is a sweeping highlight over a short label
type ShimmerState struct {
	Config    ShimmerConfig
	TrueColor bool

	center   float64
	last     time.Time
	active   bool
	pausedAt time.Time // zero while sweeping
}

// NewShimmerState creates a shimmer; truecolor is detected from COLORTERM
func NewShimmerState(config ShimmerConfig) *ShimmerState {
	return &ShimmerState{
		Config:    config,
		TrueColor: os.Getenv("COLORTERM") == "truecolor",
		active:    config.Enabled && !config.ReduceMotion,
	}
}

// Advance moves the highlight to where it should be at now
func (s *ShimmerState) Advance(now time.Time, visibleLen int) {
	if !s.active || visibleLen <= 0 {
		return
	}
	if s.last.IsZero() {
		s.last = now
		return
	}
	if now.Sub(s.last) < s.Config.Interval {
		return
	}
	s.last = now

	width := float64(visibleLen) * s.Config.WidthRatio
	if !s.pausedAt.IsZero() {
		if now.Sub(s.pausedAt) >= s.Config.PauseBetween {
			s.pausedAt = time.Time{}
			s.center = -width
		}
		return
	}

	frames := float64(s.Config.Cycle) / float64(s.Config.Interval)
	s.center += (float64(visibleLen) + 2*width) / frames

	if end := float64(visibleLen) + width; s.center >= end {
		s.center = end
		s.pausedAt = now
	}
}

// Reset starts the sweep over, e.g. when the label changes
func (s *ShimmerState) Reset() {
	s.center = 0
	s.last = time.Time{}
	s.pausedAt = time.Time{}
}

// SetActive pauses or resumes the sweep
func (s *ShimmerState) SetActive(active bool) {
	s.active = active && s.Config.Enabled && !s.Config.ReduceMotion
}

// Active reports whether frames are needed
func (s *ShimmerState) Active() bool {
	return s.active
}

// Render colors text around the current highlight position
func (s *ShimmerState) Render(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	if !s.active {
		return paint(s.Config.Highlight, text) + "\033[0m"
	}
	if !s.TrueColor {
		return s.renderFallback(runes)
	}

	sigma := math.Max(1, s.Config.WidthRatio*float64(len(runes))/2)
	var b strings.Builder
	for i, r := range runes {
		dx := float64(i) - s.center
		w := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		b.WriteString(paint(blend(s.Config.Base, s.Config.Highlight, w), string(r)))
	}
	b.WriteString("\033[0m")
	return b.String()
}

// renderFallback uses the 256-color palette for terminals without truecolor
func (s *ShimmerState) renderFallback(runes []rune) string {
	width := int(math.Max(1, s.Config.WidthRatio*float64(len(runes))))
	start := int(s.center) - width/2

	var b strings.Builder
	for i, r := range runes {
		if i >= start && i < start+width {
			fmt.Fprintf(&b, "\033[38;5;123m%c", r)
		} else {
			fmt.Fprintf(&b, "\033[38;5;250m%c", r)
		}
	}
	b.WriteString("\033[0m")
	return b.String()
}

func paint(c rgb, s string) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm%s", c.r, c.g, c.b, s)
}

func blend(base, hi rgb, w float64) rgb {
	w = math.Min(1, math.Max(0, w))
	mix := func(a, b int) int { return int(float64(a)*(1-w) + float64(b)*w) }
	return rgb{mix(base.r, hi.r), mix(base.g, hi.g), mix(base.b, hi.b)}
}
