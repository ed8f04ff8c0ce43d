package io

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/williampepple1/party-sheet-scraper/internal/config"
	"github.com/williampepple1/party-sheet-scraper/internal/mapper"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ResultWriter writes party datasets to various outputs
type ResultWriter struct {
	Config *config.IOConfig
}

// NewResultWriter creates a new result writer
func NewResultWriter(config *config.IOConfig) *ResultWriter {
	return &ResultWriter{
		Config: config,
	}
}

// SaveToFile saves the party to the output file in the configured format
func (w *ResultWriter) SaveToFile(party *models.Party) error {
	switch w.Config.OutputFormat {
	case "json":
		data, err := json.MarshalIndent(party, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(w.Config.OutputFile, data, 0644)

	case "xlsx":
		return writeWorkbook(w.Config.OutputFile, party)

	default:
		return fmt.Errorf("unsupported output format: %s", w.Config.OutputFormat)
	}
}

const (
	partySheet     = "Party"
	inventorySheet = "Inventory"
	spellsSheet    = "Spells"
)

// writeWorkbook writes an overview sheet with one row per character, and
// the party's inventory and spells as flat tables.
func writeWorkbook(path string, party *models.Party) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", partySheet); err != nil {
		return err
	}
	for _, name := range []string{inventorySheet, spellsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	chars := party.Characters()

	overview := [][]interface{}{{
		"ID", "Name", "Player", "Race", "Class", "Level", "AC", "HP", "HP Max", "Speed",
		"Passive Perception", "STR", "DEX", "CON", "INT", "WIS", "CHA", "Languages",
	}}
	for _, c := range chars {
		a := c.Abilities
		overview = append(overview, []interface{}{
			c.CharID, c.CharName, c.Info.PlayerName, c.Info.Race, c.Info.Class, c.Info.Level,
			c.Combat.AC, c.Combat.HPCurrent, c.Combat.HPMax, c.Combat.Speed,
			c.Proficiency.PassivePerception,
			a.Strength.Score, a.Dexterity.Score, a.Constitution.Score,
			a.Intelligence.Score, a.Wisdom.Score, a.Charisma.Score,
			strings.Join(c.OtherProfs.Languages, ", "),
		})
	}

	inventory := [][]interface{}{{"Character", "Item", "Count", "Weight", "Equipped", "Properties"}}
	for _, c := range chars {
		for _, item := range c.Inventory {
			inventory = append(inventory, []interface{}{
				c.CharName, item.Name, item.Count, item.Weight, item.Equipped, item.Properties,
			})
		}
	}

	spells := [][]interface{}{{"Character", "Level", "Spell", "School", "Components", "Prepared"}}
	for _, c := range chars {
		for lvl := 0; lvl <= 9; lvl++ {
			label := mapper.SpellLabel(lvl)
			for _, s := range c.Spells[label] {
				spells = append(spells, []interface{}{
					c.CharName, label, s.Name, s.School, s.Components, s.Prepared,
				})
			}
		}
	}

	for sheet, rows := range map[string][][]interface{}{
		partySheet:     overview,
		inventorySheet: inventory,
		spellsSheet:    spells,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return fmt.Errorf("write %s sheet: %w", sheet, err)
		}
	}
	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}
