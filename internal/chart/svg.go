package chart

import (
	"fmt"
	"sort"
	"strings"
)

var svgColors = []string{"#00ff88", "#00aaff", "#ff8800", "#ff4477", "#cccc00"}

// SVG renders every series normalized to a shared [0, 1] band so
// differently scaled trajectories overlay cleanly. The legend carries
// each series' true range; params, when non-empty, are printed in a
// panel on the right.
func (c *Chart) SVG(series map[string][]float64, params map[string]string) (string, error) {
	labels, err := sortedLabels(series)
	if err != nil {
		return "", err
	}

	width, height := c.Width, c.Height
	panelW := 0
	if len(params) > 0 {
		panelW = 200
	}
	plotW := width - panelW

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	margin := float64(c.Margin) + 4

	for i, label := range labels {
		color := svgColors[i%len(svgColors)]
		data := series[label]
		norm := Normalize(data)

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for j, v := range norm {
			x := margin + float64(j)/float64(maxInt(len(norm)-1, 1))*(float64(plotW)-2*margin)
			y := float64(height) - margin - v*(float64(height)-2*margin)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		lo, hi := minMax(data)
		sb.WriteString(fmt.Sprintf(
			`<text x="%.0f" y="%d" fill="%s" font-family="monospace" font-size="12">%s [%.3f, %.3f]</text>`+"\n",
			margin, 16+i*16, color, escapeText(label), lo, hi))
	}

	if panelW > 0 {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		x := plotW + 12
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="0" x2="%d" y2="%d" stroke="#333333"/>`+"\n", plotW, plotW, height))
		for i, k := range keys {
			sb.WriteString(fmt.Sprintf(
				`<text x="%d" y="%d" fill="#999999" font-family="monospace" font-size="11">%s: %s</text>`+"\n",
				x, 18+i*15, escapeText(k), escapeText(params[k])))
		}
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

func minMax(xs []float64) (float64, float64) {
	lo, hi := xs[0], xs[0]
	for _, v := range xs {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
