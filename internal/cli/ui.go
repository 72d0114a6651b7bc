package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/guleriaakshit/open-lens/pkg/github"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings, stars
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleStars    = lipgloss.NewStyle().Foreground(colorYellow)
	styleLanguage = lipgloss.NewStyle().Foreground(colorGreen)
	styleLabel    = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconStar    = "★"
	iconFork    = "⑂"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Repository Output
// =============================================================================

// printRepoList prints a numbered repository listing.
func printRepoList(repos []github.Repository) {
	for i, repo := range repos {
		printRepo(i+1, repo)
	}
}

// printRepo prints one repository with its popularity line and description.
func printRepo(index int, repo github.Repository) {
	head := StyleDim.Render(fmt.Sprintf("%2d.", index)) + " " + StyleHighlight.Render(repo.FullName)

	var meta []string
	meta = append(meta, styleStars.Render(iconStar+" "+formatCount(repo.Stars)))
	if repo.Forks > 0 {
		meta = append(meta, StyleDim.Render(iconFork+" "+formatCount(repo.Forks)))
	}
	if repo.Language != "" {
		meta = append(meta, styleLanguage.Render(repo.Language))
	}
	if repo.Archived {
		meta = append(meta, StyleWarning.Render("archived"))
	}
	fmt.Println(head + "  " + strings.Join(meta, StyleDim.Render(" · ")))

	if repo.Description != "" {
		printDetail("%s", truncate(repo.Description, 100))
	}
}

// printIssueList prints a numbered issue listing with labels.
func printIssueList(issues []github.Issue) {
	for _, issue := range issues {
		head := StyleNumber.Render(fmt.Sprintf("#%d", issue.Number)) + " " + StyleValue.Render(truncate(issue.Title, 90))
		fmt.Println(head)

		var parts []string
		if issue.User.Login != "" {
			parts = append(parts, "@"+issue.User.Login)
		}
		if issue.Comments > 0 {
			parts = append(parts, fmt.Sprintf("%d comments", issue.Comments))
		}
		for _, label := range issue.Labels {
			parts = append(parts, styleLabel.Render("["+label.Name+"]"))
		}
		if len(parts) > 0 {
			printDetail("%s", strings.Join(parts, " · "))
		}
	}
}

// formatCount renders large counts compactly: 950 -> "950", 12345 -> "12.3k".
func formatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1_000_000 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Utilities
// =============================================================================

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
