// Package engine implements a no-limit Texas Hold'em cash game engine:
// turn order, betting rounds, pot and side-pot accounting, action
// validation and hand resolution.
//
// A Hand is the unit of play. Callers drive it one action at a time
// through SubmitAction and read deep-copied GameState snapshots back;
// illegal actions are rejected with a typed ValidationError and leave
// the state untouched. A Table strings hands together, rotating the
// button and carrying stacks forward.
//
// The engine is authoritative and defensive: chip conservation is
// audited after every action, and any internal inconsistency surfaces
// as an InvariantError that aborts the hand rather than being patched
// over.
package engine
