// Package picker implements a reusable query-driven list picker: a single
// line of query input above a virtualized result list, as used for
// quick-open style interfaces ("find file", "find command").
//
// The package owns coordination only. Matching, ranking, and row content
// live behind the Delegate interface, supplied once per Picker at
// construction. The Picker translates key presses into delegate calls,
// keeps the selection cursor and the scroll offset consistent while the
// match set changes underneath it, and serializes asynchronous match
// recomputation.
//
// Message flow:
//   - Key messages reserved for list navigation and confirmation are
//     handled directly; everything else is forwarded to the embedded
//     text input. When forwarding changes the input's text, the picker
//     reads the full query and starts a match update.
//   - Delegate.UpdateMatches returns a command that resolves once the
//     recomputation settles. The picker refreshes synchronously before
//     the command runs (interim feedback from whatever state the
//     delegate already exposes) and once more when the settle message
//     arrives.
//   - Every update carries a generation number. A settle message whose
//     generation is no longer the latest is dropped, so overlapping
//     updates never fight over the scroll position. Superseded updates
//     are not cancelled; they run to completion and only their refresh
//     is suppressed.
//   - After Close, settle messages are discarded outright.
package picker
