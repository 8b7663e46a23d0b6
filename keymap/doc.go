// Package keymap defines the registration vocabulary for hotkeys.
//
// A registration is a pair of maps keyed by action name: Map binds actions
// to key specs ("save" -> ["ctrl+s"]), Handlers binds actions to functions.
// Compile turns the pair into a Set of parsed, priority-sorted bindings the
// matching engines consume. Problems found while compiling (unparsable
// specs, actions missing a handler or a binding) are reported as Issues
// rather than errors so that one bad entry never takes down the rest of a
// registration.
//
// Validate performs the same checks standalone and attaches "did you mean"
// suggestions for near-miss action names. LoadFile and SaveFile read and
// write the JSON keymap document format.
package keymap
