// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// numberRe matches a plain decimal number with optional sign. Fused
// columns such as "-5.1234-3.0000" split into two tokens.
var numberRe = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+`)

// NumericTokens returns every numeric token in line, in order.
func NumericTokens(line string) []string {
	return numberRe.FindAllString(line, -1)
}

// hasNumeric reports whether line carries at least one numeric token.
func hasNumeric(line string) bool {
	return numberRe.MatchString(line)
}

// ParseFloats converts tokens to float64. A token that fails conversion
// discards the whole line: the result is nil and the caller carries on.
func ParseFloats(tokens []string) []float64 {
	vals := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil
		}
		vals = append(vals, v)
	}
	return vals
}

// splitLines breaks text into lines, accepting \n, \r\n and bare \r
// terminators. A trailing terminator does not produce an empty last line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
