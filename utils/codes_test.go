package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateEquipmentCode(t *testing.T) {
	registered := time.Date(2025, time.November, 4, 10, 0, 0, 0, time.UTC)

	code := GenerateEquipmentCode("Router X1", registered)
	assert.Regexp(t, `^EQP-ROUTERX1-20251104-[A-Z0-9]{6}$`, code)

	// Long names are truncated to keep codes bounded.
	code = GenerateEquipmentCode("Extremely Long Equipment Name", registered)
	assert.Regexp(t, `^EQP-[A-Z0-9]{15}-20251104-[A-Z0-9]{6}$`, code)

	// Random suffix makes repeated registrations distinct.
	assert.NotEqual(t,
		GenerateEquipmentCode("Router X1", registered),
		GenerateEquipmentCode("Router X1", registered))
}

func TestGenerateUnitCode(t *testing.T) {
	reference := time.Date(2025, time.November, 4, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "EQP-ROUTERX1-20251104-001A", GenerateUnitCode("Router X1", reference, 1))
	assert.Equal(t, "EQP-ROUTERX1-20251104-002B", GenerateUnitCode("Router X1", reference, 2))
	assert.Equal(t, "EQP-ROUTERX1-20251104-026Z", GenerateUnitCode("Router X1", reference, 26))

	// The letter suffix cycles after Z.
	assert.Equal(t, "EQP-ROUTERX1-20251104-027A", GenerateUnitCode("Router X1", reference, 27))
}

func TestNormalizeNameStripsSeparators(t *testing.T) {
	assert.Equal(t, "ONTMODEM", normalizeName("ONT - Modem", 0))
	assert.Equal(t, "ROUTE", normalizeName("router", 5))
}
