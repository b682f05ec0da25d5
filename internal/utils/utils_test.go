package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstNumber(t *testing.T) {
	assert.Equal(t, 16.0, FirstNumber("16 GB"))
	assert.Equal(t, 850.0, FirstNumber("850W"))
	assert.Equal(t, 32.0, FirstNumber("32GB (2 x 16GB)"))
	assert.Equal(t, 1.5, FirstNumber("1.5 mm"))
	assert.Equal(t, 1000.0, FirstNumber("1,000 W"))
	assert.Equal(t, 1200.0, FirstNumber("1,200W Platinum"))
	assert.Equal(t, 1.0, FirstNumber("1,50 mm"))
	assert.True(t, math.IsNaN(FirstNumber("Yes")))
	assert.True(t, math.IsNaN(FirstNumber("")))
}

func TestLeadingNumber(t *testing.T) {
	v, ok := LeadingNumber(" 240 mm")
	assert.True(t, ok)
	assert.Equal(t, 240.0, v)

	_, ok = LeadingNumber("DDR5")
	assert.False(t, ok)
}

func TestMaxNumber(t *testing.T) {
	assert.Equal(t, 360.0, MaxNumber("120/240/360 mm"))
	assert.True(t, math.IsNaN(MaxNumber("none")))
}

func TestCountConnectors(t *testing.T) {
	tests := []struct {
		text  string
		eight int
		six   int
	}{
		{"2 x 8-pin", 2, 0},
		{"1x 8-pin + 1x 6-pin", 1, 1},
		{"8-pin", 1, 0},
		{"4 x 6+2-pin", 4, 0},
		{"1 x 16-pin (12VHPWR)", 0, 0},
		{"3x8 pin", 3, 0},
		{"none", 0, 0},
	}

	for _, tt := range tests {
		eight, six := CountConnectors(tt.text)
		assert.Equal(t, tt.eight, eight, tt.text)
		assert.Equal(t, tt.six, six, tt.text)
	}
}

func TestMatchProductURL(t *testing.T) {
	assert.True(t, MatchProductURL("https://pcpartpicker.com/product/fK9wrH/amd-ryzen-7-7800x3d"))
	assert.True(t, MatchPCPPURL("https://fr.pcpartpicker.com/"))
	assert.False(t, MatchProductURL("https://example.com/product/abc"))
}

func TestExtractVendorName(t *testing.T) {
	assert.Equal(t, "amazon", ExtractVendorName("https://pcpartpicker.com/mr/amazon/fK9wrH"))
	assert.Equal(t, "", ExtractVendorName(""))
}

func TestBuildPrefixURL(t *testing.T) {
	assert.Equal(t, "https://pcpartpicker.com/", BuildPrefixURL("us"))
	assert.Equal(t, "https://de.pcpartpicker.com/", BuildPrefixURL("de"))
}

func TestValidateFilter(t *testing.T) {
	type req struct {
		Filters []string `validate:"dive,filter"`
	}
	assert.NoError(t, ValidateStruct(req{Filters: []string{"Brand=AMD"}}))
	assert.Error(t, ValidateStruct(req{Filters: []string{"Brand"}}))
	assert.Error(t, ValidateStruct(req{Filters: []string{"=AMD"}}))
}
