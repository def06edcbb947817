// utils/codes.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateEquipmentCode builds a catalog code of the form
// EQP-NAME-YYYYMMDD-XXXXXX, e.g. EQP-ROUTERX-20251104-AB12CD.
func GenerateEquipmentCode(name string, registeredAt time.Time) string {
	return fmt.Sprintf("EQP-%s-%s-%s",
		normalizeName(name, 15),
		registeredAt.Format("20060102"),
		randomString(6))
}

// GenerateUnitCode builds a per-unit code derived from the catalog entry:
// EQP-NAME-YYYYMMDD-<seq><letter>, with a cyclic A-Z suffix.
func GenerateUnitCode(name string, reference time.Time, sequence int) string {
	letter := rune('A' + ((sequence - 1) % 26))
	return fmt.Sprintf("EQP-%s-%s-%03d%c",
		normalizeName(name, 0),
		reference.Format("20060102"),
		sequence, letter)
}

func normalizeName(name string, limit int) string {
	s := strings.ToUpper(name)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	if limit > 0 && len(s) > limit {
		s = s[:limit]
	}
	return s
}

func randomString(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			panic("failed to read random source")
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String()
}
