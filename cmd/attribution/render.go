package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/pkg/utils"
)

const undefinedCell = "undefined"

var (
	colorBorder = lipgloss.Color("#575653")
	colorAccent = lipgloss.Color("#3AA99F")
	colorWarn   = lipgloss.Color("#DA702C")

	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func formatNumber(n domain.Number) string {
	return n.Format("%.2f", undefinedCell)
}

func formatPct(n domain.Number) string {
	return n.Format("%.2f%%", undefinedCell)
}

// formatShare converte a fração de custo em percentual
func formatShare(n domain.Number) string {
	v, ok := n.Float64()
	if !ok {
		return undefinedCell
	}
	return strconv.FormatFloat(utils.RoundWithTwoDecimalPlace(v*100), 'f', 2, 64) + "%"
}

func formatSigned(v int64) string {
	if v > 0 {
		return "+" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}

// renderReport monta o resumo agregado e a tabela de contribuição por canal
func renderReport(report *domain.ComparisonReport) string {
	var b strings.Builder

	title := fmt.Sprintf("%s  %s → %s", strings.ToUpper(report.Label), report.Before.String(), report.After.String())
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	overall := report.Overall
	b.WriteString(newTable("Métrica", "Antes", "Depois", "Variação", "Variação %").
		Row("Conversões",
			strconv.FormatInt(overall.ConversionsBefore, 10),
			strconv.FormatInt(overall.ConversionsAfter, 10),
			formatSigned(overall.ConversionDelta),
			formatPct(overall.ConversionRatioPct)).
		Row("Custo",
			overall.CostBefore.String(),
			overall.CostAfter.String(),
			(overall.CostAfter - overall.CostBefore).String(),
			"").
		Row("CPA",
			formatNumber(overall.CPABefore),
			formatNumber(overall.CPAAfter),
			formatNumber(overall.CPADelta),
			formatPct(overall.CPARatioPct)).
		String())
	b.WriteString("\n")

	channels := newTable("Canal", "Conv. antes", "Conv. depois", "Δ Conv.", "CPA antes", "CPA depois", "Δ CPA",
		"Part. custo", "Contrib. conv.", "Contrib. CPA")
	for _, c := range report.Channels {
		channels.Row(
			c.Channel,
			strconv.FormatInt(c.ConversionsBefore, 10),
			strconv.FormatInt(c.ConversionsAfter, 10),
			formatSigned(c.ConversionDelta),
			formatNumber(c.CPABefore),
			formatNumber(c.CPAAfter),
			formatNumber(c.CPADelta),
			formatShare(c.CostShare),
			formatPct(c.ConversionContributionPct),
			formatPct(c.CPAContributionPct),
		)
	}
	channels.Row(domain.TotalChannel, "", "", "", "", "", "", "",
		formatPct(report.ContributionSum.ConversionContributionPct),
		formatPct(report.ContributionSum.CPAContributionPct))
	b.WriteString(channels.String())
	b.WriteString("\n")

	if len(report.UnmatchedChannels) > 0 {
		b.WriteString(warnStyle.Render("Canais presentes em apenas um período: " + strings.Join(report.UnmatchedChannels, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}

// renderPatternReports renderiza cada padrão e lista os que ficaram sem dados
func renderPatternReports(result *domain.PatternReports) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Âncora: " + result.Anchor.Format(time.DateOnly)))
	b.WriteString("\n\n")

	for _, report := range result.Reports {
		b.WriteString(renderReport(report))
		b.WriteString("\n")
	}

	for _, skipped := range result.Skipped {
		line := fmt.Sprintf("%s ignorado (%s → %s): %s", skipped.Pattern.Label(), skipped.Before.String(), skipped.After.String(), skipped.Reason)
		b.WriteString(warnStyle.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
