// Package form holds the live form surface: the controls rendered for the
// selected action and their current values. Selecting an action replaces the
// whole control set; values entered for a previous action never carry over.
package form
