package scoundrel

import "errors"

// Errors returned for rejected player actions. A rejected action never
// changes the session.
var (
	ErrNotPlaying    = errors.New("scoundrel: no game in progress")
	ErrInvalidIndex  = errors.New("scoundrel: no card in that slot")
	ErrWrongCardKind = errors.New("scoundrel: card cannot be played that way")
	ErrNoSelection   = errors.New("scoundrel: no monster selected")
	ErrNoWeapon      = errors.New("scoundrel: no weapon equipped")
	ErrWeaponBlocked = errors.New("scoundrel: weapon cannot be used against a monster that strong")
	ErrCannotFlee    = errors.New("scoundrel: cannot run from this room")
	ErrNotResumable  = errors.New("scoundrel: saved game cannot be resumed")
)
