package log

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// EventLogger is the interface for logging match events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- ZapLogger: forwards events to a structured zap logger ---

type ZapLogger struct {
	MemoryLogger
	z *zap.Logger
}

// NewZapLogger wraps z. Events are kept in memory as well so callers can
// still inspect the match history.
func NewZapLogger(z *zap.Logger) *ZapLogger {
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	l.z.Debug(event.Details,
		zap.Int("seq", l.seq),
		zap.Int("turn", event.Turn),
		zap.String("phase", event.Phase),
		zap.Int("player", event.Player),
		zap.String("type", event.Type.String()),
		zap.String("card", event.Card),
	)
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 10 chars for alignment
	for len(phase) < 10 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewMatchStartEvent() GameEvent {
	return GameEvent{
		Turn:    1,
		Phase:   "Draw",
		Type:    EventMatchStart,
		Details: "Game started. Good luck heroes.",
		Visible: true,
	}
}

func NewTurnEvent(turn int, player int, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s, %s) ===", turn, playerName(player), name),
	}
}

func NewPhaseChangeEvent(turn int, player int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewDrawEvent(turn int, player int, name, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw",
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws a hero.", name),
		Visible: true,
	}
}

func NewDrawSkippedEvent(turn int, player int, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw",
		Player:  player,
		Type:    EventDrawSkipped,
		Details: fmt.Sprintf("%s skips first draw.", name),
		Visible: true,
	}
}

func NewDeckEmptyEvent(turn int, player int, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw",
		Player:  player,
		Type:    EventDeckEmpty,
		Details: fmt.Sprintf("%s deck is empty.", name),
		Visible: true,
	}
}

func NewDeployEvent(turn int, player int, name, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Placement",
		Player:  player,
		Type:    EventDeploy,
		Card:    cardName,
		Details: fmt.Sprintf("%s deploys %s.", name, cardName),
		Visible: true,
	}
}

func NewDuelEvent(turn int, player int, attacker, defender string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Attack",
		Player:  player,
		Type:    EventDuel,
		Card:    attacker,
		Details: fmt.Sprintf("Battle: %s vs %s!", attacker, defender),
		Visible: true,
	}
}

func NewDamageCalcEvent(turn int, player int, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Attack",
		Player:  player,
		Type:    EventDamageCalc,
		Details: details,
	}
}

// NewFallEvent reports a defender killed by an attack. player is the owner.
func NewFallEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Attack",
		Player:  player,
		Type:    EventFall,
		Card:    cardName,
		Details: fmt.Sprintf("%s falls!", cardName),
		Visible: true,
	}
}

// NewDuelDeathEvent reports an attacker killed by the counterattack.
func NewDuelDeathEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Attack",
		Player:  player,
		Type:    EventDuelDeath,
		Card:    cardName,
		Details: fmt.Sprintf("%s dies in the duel!", cardName),
		Visible: true,
	}
}

func NewRecoverEvent(turn int, player int, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Recovery",
		Player:  player,
		Type:    EventRecover,
		Details: fmt.Sprintf("%s survivors recover.", name),
		Visible: true,
	}
}

func NewRejectedEvent(turn int, phase string, player int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRejected,
		Details: fmt.Sprintf("%s action rejected: %s", playerName(player), reason),
	}
}

func NewWinEvent(turn int, phase string, winner int, result string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: result,
	}
}

func NewTieEvent(turn int, phase string, result string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventDraw_Tie,
		Details: result,
	}
}
