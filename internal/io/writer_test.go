package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/williampepple1/party-sheet-scraper/internal/config"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
	"github.com/xuri/excelize/v2"
)

func sampleParty(t *testing.T) *models.Party {
	t.Helper()
	party := models.NewParty()

	aria := models.NewCharacter("-A1", "Aria")
	aria.Info.Class = "Wizard 5"
	aria.Combat.AC = "12"
	aria.Abilities.Intelligence.Score = "18"
	aria.OtherProfs.Languages = []string{"Common", "Elvish"}
	aria.Inventory = []models.InventoryItem{{Name: "Spellbook", Count: "1"}}
	aria.Spells["cantrips"] = []models.Spell{{Name: "Light", Components: "V, M"}}
	aria.Spells["level_3"] = []models.Spell{{Name: "Fireball"}}
	require.NoError(t, party.Put(aria))

	borin := models.NewCharacter("-B2", "Borin")
	borin.Inventory = []models.InventoryItem{{Name: "Warhammer"}, {Name: "Rope", Count: "2"}}
	require.NoError(t, party.Put(borin))
	return party
}

func TestResultWriter_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "party.json")
	w := NewResultWriter(&config.IOConfig{OutputFile: path, OutputFormat: "json"})

	require.NoError(t, w.SaveToFile(sampleParty(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(data)
	assert.True(t, strings.HasPrefix(s, "{\n  \"-A1\": {"))
	assert.Less(t, strings.Index(s, `"-A1"`), strings.Index(s, `"-B2"`))
}

func TestResultWriter_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "party.xlsx")
	w := NewResultWriter(&config.IOConfig{OutputFile: path, OutputFormat: "xlsx"})

	require.NoError(t, w.SaveToFile(sampleParty(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Party", "Inventory", "Spells"}, f.GetSheetList())

	rows, err := f.GetRows("Party")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, []string{"-A1", "Aria"}, rows[1][:2])
	assert.Equal(t, "-B2", rows[2][0])

	class, err := f.GetCellValue("Party", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Wizard 5", class)
	langs, err := f.GetCellValue("Party", "R2")
	require.NoError(t, err)
	assert.Equal(t, "Common, Elvish", langs)

	inventory, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, inventory, 4)
	assert.Equal(t, "Spellbook", inventory[1][1])
	assert.Equal(t, []string{"Borin", "Rope", "2"}, inventory[3][:3])

	spells, err := f.GetRows("Spells")
	require.NoError(t, err)
	require.Len(t, spells, 3)
	assert.Equal(t, []string{"Aria", "cantrips", "Light"}, spells[1][:3])
	assert.Equal(t, []string{"Aria", "level_3", "Fireball"}, spells[2][:3])
}

func TestResultWriter_UnsupportedFormat(t *testing.T) {
	w := NewResultWriter(&config.IOConfig{OutputFile: filepath.Join(t.TempDir(), "party.csv"), OutputFormat: "csv"})
	assert.EqualError(t, w.SaveToFile(models.NewParty()), "unsupported output format: csv")
}
