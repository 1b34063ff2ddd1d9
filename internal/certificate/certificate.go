// Package certificate renders the plain-text certificate of appreciation.
package certificate

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const rule = "====================================="

var whitespace = regexp.MustCompile(`\s+`)

var printer = message.NewPrinter(language.English)

// Render builds the certificate for a recipient. Numbers are comma grouped.
func Render(recipient string, trees int, co2 float64, issued time.Time) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("    CERTIFICATE OF APPRECIATION\n")
	b.WriteString(rule + "\n\n")
	b.WriteString("This certificate is presented to\n\n")
	b.WriteString("        " + recipient + "\n\n")
	b.WriteString("For outstanding contribution to\n")
	b.WriteString("environmental conservation through\n")
	b.WriteString("the NatureHelp platform.\n\n")
	b.WriteString(printer.Sprintf("Trees Planted: %v\n", number.Decimal(trees)))
	b.WriteString(printer.Sprintf("CO2 Absorbed: %v kg\n\n", number.Decimal(co2, number.MaxFractionDigits(2))))
	b.WriteString("Issued on " + issued.Format("January 2, 2006") + "\n\n")
	b.WriteString("NatureHelp - Plant Trees, Save Earth\n")
	b.WriteString(rule + "\n")
	return b.String()
}

// FileName is the download name for a recipient's certificate.
func FileName(recipient string) string {
	return "NatureHelp_Certificate_" + whitespace.ReplaceAllString(strings.TrimSpace(recipient), "_") + ".txt"
}
