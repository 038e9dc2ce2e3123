package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stock-reconciler/feature/inventory/models"
)

func ts(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestRawStatus_RuleOrder(t *testing.T) {
	tests := []struct {
		name  string
		entry *models.LedgerEntry
		want  string
	}{
		{
			name:  "no ledger match",
			entry: nil,
			want:  NotInLedger,
		},
		{
			name:  "inbound return maps to loaded",
			entry: &models.LedgerEntry{MovementType: "Rientro"},
			want:  Loaded,
		},
		{
			name:  "subcontractor",
			entry: &models.LedgerEntry{MovementType: "sconosciuto", Subcontractor: "ACME Srl"},
			want:  "ACME Srl",
		},
		{
			name:  "crew leader",
			entry: &models.LedgerEntry{CrewLeaderCode: "CAPO1"},
			want:  "CAPO1",
		},
		{
			name:  "whitelisted movement classifies as itself",
			entry: &models.LedgerEntry{MovementType: "Trasf. in Ingresso"},
			want:  "Trasf. in Ingresso",
		},
		{
			name:  "legacy cutoff",
			entry: &models.LedgerEntry{MovementType: "sconosciuto", CreatedAt: ts("2023-12-31")},
			want:  Legacy,
		},
		{
			name:  "created after cutoff falls through to default",
			entry: &models.LedgerEntry{MovementType: "sconosciuto", CreatedAt: ts("2024-01-01")},
			want:  NotInLedger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RawStatus(tt.entry))
		})
	}
}

func TestRawStatus_FirstMatchWins(t *testing.T) {
	// Matches both the subcontractor rule and the movement whitelist;
	// the earlier rule decides.
	entry := &models.LedgerEntry{
		MovementType:  "Carico",
		Subcontractor: "ACME",
	}
	assert.Equal(t, "ACME", RawStatus(entry))

	// An inbound return outranks everything.
	entry = &models.LedgerEntry{
		MovementType:  "Rientro",
		Subcontractor: "ACME",
	}
	assert.Equal(t, Loaded, RawStatus(entry))
}

func TestResolve_DirectoryLookup(t *testing.T) {
	dir := Directory{"42": "ACME Logistics"}
	c := NewClassifier(dir)

	assert.Equal(t, "ACME Logistics", c.Resolve("Fornitore 42 Srl"))
}

func TestResolve_NoDigitsUsesDefaultCode(t *testing.T) {
	t.Run("default code present", func(t *testing.T) {
		c := NewClassifier(Directory{"0": "Magazzino Centrale"})
		assert.Equal(t, "Magazzino Centrale", c.Resolve(NotInLedger))
	})

	t.Run("default code absent keeps raw label", func(t *testing.T) {
		c := NewClassifier(Directory{"42": "ACME Logistics"})
		assert.Equal(t, NotInLedger, c.Resolve(NotInLedger))
	})
}

func TestResolve_NilDirectoryDegradesToRaw(t *testing.T) {
	c := NewClassifier(nil)
	assert.Equal(t, "Fornitore 42 Srl", c.Resolve("Fornitore 42 Srl"))
}

func TestClassify_ReturnsBothLabels(t *testing.T) {
	c := NewClassifier(Directory{"7": "Squadra Sette"})
	entry := &models.LedgerEntry{CrewLeaderCode: "CAPO7"}

	raw, resolved := c.Classify(entry)
	assert.Equal(t, "CAPO7", raw)
	assert.Equal(t, "Squadra Sette", resolved)
}
