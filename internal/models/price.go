package models

import (
	"strconv"
	"strings"
	"unicode"
)

type Price struct {
	Base        float64
	Shipping    float64
	Tax         float64
	Discounts   float64
	Total       float64
	Currency    string
	TotalString string
}

// ParsePrice splits a scraped price string such as "$1,299.99" into its
// numeric value and currency symbol.
func ParsePrice(price string) (float64, string, error) {
	price = strings.TrimSpace(price)

	if price == "" {
		return 0, "", nil
	}

	currency, number := "", ""

	for _, char := range price {
		currency, number = processCharacter(char, currency, number)
	}

	float, err := strconv.ParseFloat(normalizeSeparators(number), 64)

	if err != nil {
		return 0, "", err
	}

	return float, currency, nil
}

func processCharacter(char rune, currency, number string) (string, string) {
	if isSpaceOrPlus(char) {
		return currency, number
	} else if isSeparatorChar(char) {
		number += "."
	} else if unicode.IsDigit(char) {
		number += string(char)
	} else {
		currency += string(char)
	}
	return currency, number
}

// normalizeSeparators keeps only the last separator as the decimal point, so
// thousands separators ("1,299.99") do not break parsing.
func normalizeSeparators(number string) string {
	last := strings.LastIndex(number, ".")
	if last < 0 {
		return number
	}
	return strings.ReplaceAll(number[:last], ".", "") + number[last:]
}

func isSeparatorChar(char rune) bool {
	return char == '.' || char == ','
}

func isSpaceOrPlus(char rune) bool {
	return char == ' ' || char == '+'
}

// CheapestInStock returns the in-stock vendor with the lowest total.
func CheapestInStock(vendors []Vendor) (Vendor, bool) {
	var best Vendor
	found := false
	for _, v := range vendors {
		if !v.InStock || v.Price.Total <= 0 {
			continue
		}
		if !found || v.Price.Total < best.Price.Total {
			best = v
			found = true
		}
	}
	return best, found
}
