package ui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"

	"dca-simulator/internal/analysis"
	"dca-simulator/internal/strategy"
)

var (
	// Colors using fatih/color for cross-platform support (handles Windows mostly)
	Green  = color.New(color.FgGreen).SprintfFunc()
	Red    = color.New(color.FgRed).SprintfFunc()
	Yellow = color.New(color.FgYellow).SprintfFunc()
	Cyan   = color.New(color.FgCyan).SprintfFunc()
	White  = color.New(color.FgWhite).SprintfFunc()

	BoldGreen = color.New(color.FgGreen, color.Bold).SprintfFunc()
	BoldRed   = color.New(color.FgRed, color.Bold).SprintfFunc()
	BoldCyan  = color.New(color.FgCyan, color.Bold).SprintfFunc()
)

// ConsoleUI handles all user visible output
type ConsoleUI struct {
	Out   io.Writer
	Asset string // Volume label, e.g. LAZ
}

// NewConsoleUI writes to out; a nil out means color.Output (stdout)
func NewConsoleUI(out io.Writer, asset string, useColor bool) *ConsoleUI {
	if out == nil {
		out = color.Output
	}
	if !useColor {
		color.NoColor = true
	}
	if asset == "" {
		asset = "VOL"
	}
	return &ConsoleUI{Out: out, Asset: asset}
}

// PrintBanner displays the startup banner
func (ui *ConsoleUI) PrintBanner(session string, extended bool) {
	mode := "BASIC"
	if extended {
		mode = "EXTENDED"
	}
	fmt.Fprintln(ui.Out, Cyan("╔══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintf(ui.Out, "%s  %s\n", Cyan("║"), Yellow("⚡ DCA WHAT-IF SIMULATOR ⚡"))
	fmt.Fprintf(ui.Out, "%s  Session: %s | Columns: %s\n", Cyan("║"), BoldCyan("%s", session), White("%s", mode))
	fmt.Fprintf(ui.Out, "%s  Type %s for commands\n", Cyan("║"), BoldCyan("help"))
	fmt.Fprintln(ui.Out, Cyan("╚══════════════════════════════════════════════════════════════╝"))
	fmt.Fprintln(ui.Out)
}

// LogInfo prints a standard info message
func (ui *ConsoleUI) LogInfo(msg string) {
	ts := time.Now().Format("15:04:05")
	fmt.Fprintf(ui.Out, "%s | %s | %s\n", ts, Green("INFO "), msg)
}

// LogError prints an error message
func (ui *ConsoleUI) LogError(msg string) {
	ts := time.Now().Format("15:04:05")
	fmt.Fprintf(ui.Out, "%s | %s | %s\n", ts, Red("ERROR"), msg)
}

// LogWarning prints a warning message
func (ui *ConsoleUI) LogWarning(msg string) {
	ts := time.Now().Format("15:04:05")
	fmt.Fprintf(ui.Out, "%s | %s | %s\n", ts, Yellow("WARN "), msg)
}

// Println writes a plain line
func (ui *ConsoleUI) Println(msg string) {
	fmt.Fprintln(ui.Out, msg)
}

// PrintSummary shows the position dashboard
func (ui *ConsoleUI) PrintSummary(s analysis.Summary) {
	fmt.Fprintf(ui.Out, "\n%s 📈 Position summary (%d steps)\n", White(""), s.Steps)
	fmt.Fprintf(ui.Out, "   Avg entry:     $%s\n", FormatPrice(s.AverageEntryPrice))
	fmt.Fprintf(ui.Out, "   Liquidation:   $%s\n", FormatPrice(s.LiquidationPrice))
	fmt.Fprintf(ui.Out, "   Total margin:  $%.2f\n", s.CumulativeMargin)
	fmt.Fprintf(ui.Out, "   Total value:   $%.2f\n", s.CumulativeNotional)
	fmt.Fprintf(ui.Out, "   Total %s:%s%.2f\n", ui.Asset, strings.Repeat(" ", max(1, 10-len(ui.Asset))), s.CumulativeVolume)
	if s.HasProtection {
		fmt.Fprintf(ui.Out, "   Protection:    %s\n", FormatPercent(s.TotalProtectionPct))
	}

	if s.UnsafeSteps == 0 {
		fmt.Fprintf(ui.Out, "   Status:        %s\n", BoldGreen("✅ all steps safe"))
	} else {
		fmt.Fprintf(ui.Out, "   Status:        %s\n",
			BoldRed("❌ %d unsafe, first at step %d", s.UnsafeSteps, s.FirstUnsafeIndex))
	}
}

// PrintTable renders the derived step table
func (ui *ConsoleUI) PrintTable(rows []strategy.DerivedStep, extended bool) {
	if len(rows) == 0 {
		fmt.Fprintln(ui.Out, "📭 No steps. Run 'gen' to create a ladder.")
		return
	}

	header := fmt.Sprintf("%4s %10s %9s %5s %10s %10s %11s %10s %11s %10s %10s",
		"#", "Entry $", ui.Asset, "Lev", "Added $", "Margin $", "Tot Margin", "Tot "+ui.Asset, "Tot Value", "Avg $", "Liq $")
	if extended {
		header += fmt.Sprintf(" %8s %8s", "Safety", "Protect")
	}
	header += "  Status"

	fmt.Fprintln(ui.Out, Cyan("%s", header))
	fmt.Fprintln(ui.Out, Cyan("%s", strings.Repeat("─", len([]rune(header)))))

	for _, r := range rows {
		line := fmt.Sprintf("%4d %10.4f %9.2f %5.2f %10.2f %10.2f %11.2f %10.2f %11.2f %10s %10s",
			r.Index, r.EntryPrice, r.VolumeAdded, r.Leverage,
			r.AddedNotional, r.AddedMargin, r.CumulativeMargin, r.CumulativeVolume, r.CumulativeNotional,
			FormatPrice(r.AverageEntryPrice), FormatPrice(r.LiquidationPrice))
		if extended {
			line += fmt.Sprintf(" %8s %8s", FormatPercent(r.SafetyMarginPct), FormatPercent(r.TotalProtectionPct))
		}
		fmt.Fprintf(ui.Out, "%s  %s\n", line, statusCell(r.Status))
	}
}

func statusCell(s strategy.Status) string {
	if s == strategy.StatusSafe {
		return Green("✅ %s", s)
	}
	return Red("❌ %s", s)
}

// FormatPrice prints 4 decimals, or ∞ for the no-margin sentinel
func FormatPrice(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.4f", v)
}

// FormatPercent prints 1 decimal with a percent sign
func FormatPercent(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.1f%%", v)
}
