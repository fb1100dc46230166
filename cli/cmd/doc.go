// Package cmd provides the subcommands of the gram command-line interface.
package cmd

// SettingsIdentifier is the kong variable identifier containing the path to
// the settings file resolved from the working directory.
var SettingsIdentifier = "settings"
