package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstants(t *testing.T) {
	names := []string{
		FieldFile, FieldProfile, FieldParser, FieldCount, FieldRow, FieldLabel,
		FieldDate, FieldSymbol, FieldName, FieldDescription, FieldQuantity,
		FieldPrice, FieldFees, FieldAmount, FieldReason, FieldAccount,
		FieldInputFile, FieldOutputFile, FieldCategory, FieldLevel, FieldConfigFile,
		FieldRows, FieldNotices,
	}

	seen := make(map[string]bool)
	for _, n := range names {
		assert.NotEmpty(t, n)
		assert.False(t, seen[n], "duplicate field name %q", n)
		seen[n] = true
	}
}
