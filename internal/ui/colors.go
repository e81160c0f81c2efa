package ui

// Convenience accessors for the active theme's escape codes. They read
// the theme on every call so a theme change takes effect immediately.

// ColorPrimary returns the active primary accent code.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the active secondary code.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorSuccess returns the active success code.
func ColorSuccess() string { return GetCurrentTheme().Success }

// ColorWarning returns the active warning code.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorError returns the active error code.
func ColorError() string { return GetCurrentTheme().Error }

// ColorInfo returns the active info code.
func ColorInfo() string { return GetCurrentTheme().Info }

// ColorBold returns the active bold code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the active reset code.
func ColorReset() string { return GetCurrentTheme().Reset }
