package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/gocolly/colly/v2"
)

var (
	pcppURLMatcher    = regexp2.MustCompile(`^(https?://)?([a-z]{2}\.)?pcpartpicker\.com(/.*)?$`, 0)
	productURLMatcher = regexp2.MustCompile(`^(https?://)?([a-z]{2}\.)?pcpartpicker\.com/product/[a-zA-Z0-9]{4,8}/[\S]*`, 0)
	vendorNameMatcher = regexp2.MustCompile(`(?<=pcpartpicker\.com/mr/).*(?=\/)`, 0)
	scriptImageCheck  = regexp2.MustCompile(`(?<=src:\s").*(?=")`, 0)

	numberMatcher        = regexp2.MustCompile(`[-+]?\d+(?:\.\d+)?`, 0)
	leadingNumberMatcher = regexp2.MustCompile(`^\s*[-+]?\d+(?:\.\d+)?`, 0)
	// "1,000 W", "1,200W"; a comma is a thousands separator only between digits
	thousandsSeparator = regexp2.MustCompile(`(?<=\d),(?=\d{3}(?!\d))`, 0)
	// "2 x 8-pin", "1x 6+2-pin", "8-pin"; the lookbehind keeps "16-pin" from counting as 6-pin.
	connectorMatcher = regexp2.MustCompile(`(?:(\d+)\s*[x×]\s*)?(?<!\d)(6\s*\+\s*2|8|6)\s*-?\s*pin`, regexp2.IgnoreCase)
)

func ExtractVendorName(URL string) string {
	if URL == "" {
		return ""
	}
	m, err := vendorNameMatcher.FindStringMatch(URL)
	if err != nil || m == nil {
		return ""
	}
	return m.String()
}

func MatchPCPPURL(URL string) bool {
	match, _ := pcppURLMatcher.MatchString(URL)

	return match
}

func MatchProductURL(URL string) bool {
	match, _ := productURLMatcher.MatchString(URL)

	return match
}

func FindScriptImages(script *colly.HTMLElement, images []string) []string {
	for _, match := range Regexp2SearchAllText(scriptImageCheck, script.Text) {
		if strings.HasPrefix(match, "//") {
			match = "https:" + match
		}
		images = append(images, match)
	}
	return images
}

func Regexp2SearchAllText(re *regexp2.Regexp, s string) []string {
	var matches []string
	m, _ := re.FindStringMatch(s)
	for m != nil {
		matches = append(matches, m.String())
		m, _ = re.FindNextMatch(m)
	}
	return matches
}

func BuildPrefixURL(region string) string {
	if region != "" && region != "us" {
		region += "."
	} else {
		region = ""
	}
	prefixURL := "https://" + region + "pcpartpicker.com/"
	return prefixURL
}

// FirstNumber returns the first number found in s ("16 GB" -> 16,
// "850W" -> 850) or NaN when s holds none.
func FirstNumber(s string) float64 {
	m, err := numberMatcher.FindStringMatch(stripThousands(s))
	if err != nil || m == nil {
		return math.NaN()
	}
	return parseFloat(m.String())
}

func stripThousands(s string) string {
	stripped, err := thousandsSeparator.Replace(s, "", -1, -1)
	if err != nil {
		return s
	}
	return stripped
}

// LeadingNumber parses the number s starts with, if any.
func LeadingNumber(s string) (float64, bool) {
	m, err := leadingNumberMatcher.FindStringMatch(stripThousands(s))
	if err != nil || m == nil {
		return 0, false
	}
	v := parseFloat(strings.TrimSpace(m.String()))
	return v, !math.IsNaN(v)
}

// MaxNumber returns the largest number in s, e.g. 360 for "120/240/360 mm".
func MaxNumber(s string) float64 {
	max := math.NaN()
	for _, text := range Regexp2SearchAllText(numberMatcher, s) {
		v := parseFloat(text)
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return max
}

// CountConnectors counts the 8-pin (including 6+2) and 6-pin PCIe power
// connectors a spec text mentions.
func CountConnectors(s string) (eight, six int) {
	m, _ := connectorMatcher.FindStringMatch(s)
	for m != nil {
		n := 1
		if g := m.GroupByNumber(1); g != nil && g.String() != "" {
			if parsed, err := strconv.Atoi(g.String()); err == nil {
				n = parsed
			}
		}
		pins := strings.ReplaceAll(m.GroupByNumber(2).String(), " ", "")
		if pins == "6" {
			six += n
		} else {
			eight += n
		}
		m, _ = connectorMatcher.FindNextMatch(m)
	}
	return eight, six
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
