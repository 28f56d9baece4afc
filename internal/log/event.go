package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventMatchStart EventType = iota
	EventNewTurn
	EventPhaseChange
	EventDraw
	EventDrawSkipped
	EventDeckEmpty
	EventDeploy
	EventDuel
	EventDamageCalc
	EventFall      // defender killed by the attack
	EventDuelDeath // attacker killed by the counterattack
	EventRecover
	EventRejected // a command was refused (phase violation or illegal move)
	EventWin
	EventDraw_Tie
)

func (e EventType) String() string {
	switch e {
	case EventMatchStart:
		return "MatchStart"
	case EventNewTurn:
		return "NewTurn"
	case EventPhaseChange:
		return "PhaseChange"
	case EventDraw:
		return "Draw"
	case EventDrawSkipped:
		return "DrawSkipped"
	case EventDeckEmpty:
		return "DeckEmpty"
	case EventDeploy:
		return "Deploy"
	case EventDuel:
		return "Duel"
	case EventDamageCalc:
		return "DamageCalc"
	case EventFall:
		return "Fall"
	case EventDuelDeath:
		return "DuelDeath"
	case EventRecover:
		return "Recover"
	case EventRejected:
		return "Rejected"
	case EventWin:
		return "Win"
	case EventDraw_Tie:
		return "Draw(tie)"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "Attack")
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string

	// Visible events are the ones that appear in the match's battle log.
	// Phase changes and damage breakdowns are only delivered to loggers.
	Visible bool
}
