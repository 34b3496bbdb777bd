//go:build windows

package cli

import "golang.org/x/sys/windows"

// terminalWidth returns the column count of the console behind fd, or
// fallback when fd is not a console.
func terminalWidth(fd int, fallback int) int {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(fd), &info); err != nil {
		return fallback
	}
	w := int(info.Window.Right - info.Window.Left + 1)
	if w <= 0 {
		return fallback
	}
	return w
}
