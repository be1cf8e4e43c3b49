// Package key defines the keyboard key model: keys, modifiers, chords
// and key press events. A Chord is the comparable identity of one key
// press (key plus modifier mask) and is what the dispatch registry
// indexes bindings by.
package key
