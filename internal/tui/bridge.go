package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/balkashynov/breathe/internal/audio"
	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/clock"
)

// Messages produced by the session and the deck

type phaseMsg struct {
	phase     catalog.Phase
	remaining int
}

type countdownMsg struct {
	phase     catalog.Phase
	remaining int
}

type scaleMsg struct {
	target float64
	over   time.Duration
	at     time.Time
}

type clipMsg audio.Event

type storyDoneMsg struct {
	voice catalog.Voice
}

// bridge turns controller and deck callbacks into tea messages. The
// controller calls it with its lock held, so sends never block: when the
// UI falls this far behind a message is dropped.
type bridge struct {
	clock  clock.Clock
	logger *zap.Logger
	ch     chan tea.Msg
}

func newBridge(clk clock.Clock, logger *zap.Logger) *bridge {
	return &bridge{clock: clk, logger: logger, ch: make(chan tea.Msg, 64)}
}

func (b *bridge) PhaseChanged(phase catalog.Phase, remaining int) {
	b.send(phaseMsg{phase: phase, remaining: remaining})
}

func (b *bridge) ScaleChanged(target float64, over time.Duration) {
	b.send(scaleMsg{target: target, over: over, at: b.clock.Now()})
}

func (b *bridge) Countdown(phase catalog.Phase, remaining int) {
	b.send(countdownMsg{phase: phase, remaining: remaining})
}

func (b *bridge) clip(e audio.Event) {
	b.send(clipMsg(e))
}

func (b *bridge) storyDone(v catalog.Voice) {
	b.send(storyDoneMsg{voice: v})
}

func (b *bridge) send(msg tea.Msg) {
	select {
	case b.ch <- msg:
	default:
		b.logger.Warn("UI event dropped", zap.Any("msg", msg))
	}
}

// wait delivers the next bridged message to the program
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		return <-b.ch
	}
}
