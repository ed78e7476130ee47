// Package menu is the interactive front end of the rxfetch CLI: it lists the
// pipeline catalog, runs the chosen pipeline through the executor and shows
// the list again when the run has ended. Choices are numbers or names; q
// quits.
package menu
