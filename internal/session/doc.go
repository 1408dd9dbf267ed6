// Package session owns the configuration being edited during one run of the
// tool, together with the auto-save and logging toggles. Opening a session
// restores the saved configuration (or falls back to the defaults), and
// every mutation can be committed back to the prefs store or to a bound
// config file.
package session
