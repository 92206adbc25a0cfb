// Package live provides a full-screen terminal editor built on bubbletea.
// Text and number fields commit on every keystroke and choice fields commit
// on every selection, so the session always mirrors what is on screen.
// ctrl+s retrieves the model; esc or ctrl+c abandons the edit.
package live
