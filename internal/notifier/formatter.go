package notifier

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"StockSentinel/internal/model"
)

var verdictOrder = []model.Verdict{
	model.VerdictStrongBuy,
	model.VerdictBuy,
	model.VerdictAccumulate,
	model.VerdictHold,
	model.VerdictReduce,
	model.VerdictSell,
}

func verdictEmoji(v model.Verdict) string {
	switch v {
	case model.VerdictStrongBuy:
		return "🚀"
	case model.VerdictBuy:
		return "🟢"
	case model.VerdictAccumulate:
		return "📈"
	case model.VerdictHold:
		return "⏸"
	case model.VerdictReduce:
		return "📉"
	default:
		return "🔴"
	}
}

func sentimentMark(s model.Sentiment) string {
	switch s {
	case model.SentimentPositive:
		return "[+]"
	case model.SentimentNegative:
		return "[-]"
	default:
		return "[=]"
	}
}

// FormatOverview formats the overview digest into a Telegram message.
func FormatOverview(entries []model.OverviewEntry, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>StockSentinel overview</b> | %s\n\n", at.Format("2006-01-02 15:04"))

	if len(entries) == 0 {
		b.WriteString("No data available.")
		return b.String()
	}

	counts := make(map[model.Verdict]int)
	for _, e := range entries {
		counts[e.Strategy]++
		fmt.Fprintf(&b, "%s <b>%s</b> %s: %.2f %s (%+.2f%%) %s\n",
			verdictEmoji(e.Strategy), html.EscapeString(e.Symbol), html.EscapeString(e.Name),
			e.Price, e.Currency, e.Change, e.Strategy)
	}

	b.WriteString("\n")
	var parts []string
	for _, v := range verdictOrder {
		if n := counts[v]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", v, n))
		}
	}
	b.WriteString(strings.Join(parts, " | "))
	return b.String()
}

// FormatDetail formats one symbol's analysis.
func FormatDetail(a *model.StockAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔎 <b>%s</b> %s\n\n", html.EscapeString(a.Symbol), html.EscapeString(a.Name))
	fmt.Fprintf(&b, "Price: %.2f %s (%+.2f%%)\n", a.Price, a.Currency, a.ChangePercent)
	fmt.Fprintf(&b, "Industry: %s (%s)\n", html.EscapeString(a.Industry.Name), a.Industry.Trend)
	fmt.Fprintf(&b, "Revenue: %s | Gross profit: %s | P/E: %.1f\n",
		humanize(a.Financials.Revenue), humanize(a.Financials.GrossProfit), a.Financials.PERatio)
	fmt.Fprintf(&b, "RSI: %.0f (%s)\n\n", a.Market.RSI, a.Market.Signal)
	fmt.Fprintf(&b, "%s <b>Verdict: %s</b>\n", verdictEmoji(a.Verdict), a.Verdict)

	if len(a.News) > 0 {
		b.WriteString("\n📰 <b>News</b>\n")
		for _, n := range a.News {
			fmt.Fprintf(&b, "%s %s", sentimentMark(n.Sentiment), html.EscapeString(n.Title))
			if n.Publisher != "" {
				fmt.Fprintf(&b, " (%s)", html.EscapeString(n.Publisher))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatSearch formats symbol suggestions for query.
func FormatSearch(query string, results []model.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No symbols found for %q.", html.EscapeString(query))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Results for <b>%s</b>\n", html.EscapeString(query))
	for _, r := range results {
		fmt.Fprintf(&b, "• <b>%s</b> %s", html.EscapeString(r.Symbol), html.EscapeString(r.Name))
		if r.Exchange != "" {
			fmt.Fprintf(&b, " [%s]", html.EscapeString(r.Exchange))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "Available commands:\n" +
		"• /overview\n" +
		"• /stock SYMBOL\n" +
		"• /search QUERY"
}

// humanize renders large amounts with a K/M/B/T suffix.
func humanize(n float64) string {
	abs := math.Abs(n)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.1fT", n/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.1fB", n/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", n/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.1fK", n/1e3)
	default:
		return fmt.Sprintf("%.0f", n)
	}
}
