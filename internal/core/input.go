package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionCard1             // 1 - play or select the first room card
	ActionCard2             // 2
	ActionCard3             // 3
	ActionCard4             // 4
	ActionFight             // F - fight the selected monster barehanded
	ActionFightArmed        // W - fight the selected monster with the weapon
	ActionFlee              // R - run from the room
	ActionNewGame           // N - start a new game after the current one ended
	ActionBack              // Esc - go back to menu
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCard1, ActionCard2, ActionCard3, ActionCard4:
		return "Card"
	case ActionFight:
		return "Fight"
	case ActionFightArmed:
		return "FightArmed"
	case ActionFlee:
		return "Flee"
	case ActionNewGame:
		return "NewGame"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// CardIndex returns the zero-based room slot addressed by a card action.
func (a Action) CardIndex() (int, bool) {
	if a >= ActionCard1 && a <= ActionCard4 {
		return int(a - ActionCard1), true
	}
	return -1, false
}

// CardAction returns the card action for a zero-based room slot.
func CardAction(index int) Action {
	if index < 0 || index > 3 {
		return ActionNone
	}
	return ActionCard1 + Action(index)
}

// InputFrame holds the actions triggered by one key press.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
