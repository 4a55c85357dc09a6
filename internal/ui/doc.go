// Package ui renders engine progress and transfer results for the terminal.
//
// Coloring uses a small [lipgloss] [Palette]; on a non-color terminal the output degrades to plain text.
// Progress lines are produced from [tasks.ProgressUpdate] values as they arrive on the engine's channel, and the final
// report from a [tasks.TransferResult].
package ui
