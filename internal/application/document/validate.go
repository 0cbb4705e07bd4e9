package document

import (
	"strings"

	"github.com/DanieelRC/LegislaBot/pkg/metrics"
)

// ValidationResult 格式校验结果，只作提示，不阻止保存或导出
type ValidationResult struct {
	Valid       bool     `json:"valid"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

func (r *ValidationResult) add(issue, suggestion string) {
	r.Issues = append(r.Issues, issue)
	r.Suggestions = append(r.Suggestions, suggestion)
}

// Validate 检查墨西哥立法提案的官方格式：大写标题、动机说明、带条文的提案、
// 结尾的地点日期与提案人
func Validate(text string) ValidationResult {
	blocks := Blocks(text)
	res := ValidationResult{Issues: []string{}, Suggestions: []string{}}

	if !anyBlock(blocks, func(b string) bool { return strings.ToUpper(b) == b }) {
		res.add("No se encontró un título en mayúsculas",
			"Añade un título en mayúsculas al inicio del documento")
	}

	if !anyBlock(blocks, func(b string) bool { return strings.Contains(b, headingExposition) }) {
		res.add("No se encontró la sección 'EXPOSICIÓN DE MOTIVOS'",
			"Añade una sección 'EXPOSICIÓN DE MOTIVOS' después del título")
	}

	proposal := -1
	for i, b := range blocks {
		if strings.Contains(b, headingProposal) {
			proposal = i
			break
		}
	}
	switch {
	case proposal == -1:
		res.add("No se encontró la sección 'PROPUESTA'",
			"Añade una sección 'PROPUESTA' después de la exposición de motivos")
	case !proposalHasArticles(blocks[proposal:]):
		res.add("No se encontró articulado en la sección 'PROPUESTA'",
			"Añade artículos (Artículo ÚNICO o Artículo PRIMERO, etc.) en la sección 'PROPUESTA'")
	}

	if len(blocks) == 0 || !isClosing(blocks[len(blocks)-1]) {
		res.add("No se encontró lugar, fecha y nombre del proponente al final del documento",
			"Añade lugar, fecha y nombre del proponente al final del documento (ej: 'Ciudad de México, a 15 de abril de 2024, Dip. Juan Pérez')")
	}

	res.Valid = len(res.Issues) == 0
	status := "valid"
	if !res.Valid {
		status = "invalid"
	}
	metrics.DocumentValidationTotal.WithLabelValues(status).Inc()
	return res
}

// proposalHasArticles 条文可以和 PROPUESTA 同块，也可以在其后的块中，
// 直到下一个大写章节标题为止
func proposalHasArticles(blocks []string) bool {
	for i, b := range blocks {
		if strings.Contains(b, "Artículo") {
			return true
		}
		if i > 0 {
			if h, _ := splitHeading(b); h != "" {
				return false
			}
		}
	}
	return false
}

func anyBlock(blocks []string, fn func(string) bool) bool {
	for _, b := range blocks {
		if fn(b) {
			return true
		}
	}
	return false
}
