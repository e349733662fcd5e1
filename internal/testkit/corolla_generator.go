package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// CorollaGeneratorConfig configures the synthetic used-car listing generator
type CorollaGeneratorConfig struct {
	Rows        int
	Seed        int64
	Fuels       []string  // categories to draw from
	FuelWeights []float64 // same length as Fuels; nil means uniform
	OmitColumns []string  // header names left out of the output
	MissingRate float64   // chance that a required cell is blanked
}

// DefaultCorollaConfig mirrors the fuel mix of the Toyota Corolla listings data
func DefaultCorollaConfig() CorollaGeneratorConfig {
	return CorollaGeneratorConfig{
		Rows:        300,
		Seed:        42,
		Fuels:       []string{"Petrol", "Diesel", "CNG"},
		FuelWeights: []float64{0.88, 0.11, 0.01},
	}
}

// Header of the generated file, a subset of the Corolla listing columns
var corollaHeader = []string{"Id", "Model", "Price", "Age_08_04", "KM", "Fuel_Type", "HP", "Doors"}

var requiredCells = map[string]bool{"Price": true, "Age_08_04": true, "Fuel_Type": true, "HP": true}

var fuelHP = map[string][]int{
	"Petrol": {86, 97, 110, 116, 192},
	"Diesel": {69, 72, 90},
	"CNG":    {110},
}

var fuelEffect = map[string]float64{
	"Petrol": 0,
	"Diesel": 1200,
	"CNG":    -800,
}

// CorollaGenerator produces deterministic listing rows with a known linear price model
type CorollaGenerator struct {
	config CorollaGeneratorConfig
	rng    *rand.Rand
}

// NewCorollaGenerator creates a generator seeded from the config
func NewCorollaGenerator(config CorollaGeneratorConfig) *CorollaGenerator {
	return &CorollaGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Records returns the header followed by one record per listing
func (g *CorollaGenerator) Records() [][]string {
	omit := make(map[string]bool, len(g.config.OmitColumns))
	for _, c := range g.config.OmitColumns {
		omit[c] = true
	}

	var header []string
	for _, h := range corollaHeader {
		if !omit[h] {
			header = append(header, h)
		}
	}

	records := [][]string{header}
	for i := 0; i < g.config.Rows; i++ {
		row := g.listing(i + 1)
		var record []string
		for _, h := range corollaHeader {
			if omit[h] {
				continue
			}
			value := row[h]
			if requiredCells[h] && g.config.MissingRate > 0 && g.rng.Float64() < g.config.MissingRate {
				value = ""
			}
			record = append(record, value)
		}
		records = append(records, record)
	}
	return records
}

// listing draws one car: price = 19000 - 120*age + 30*hp + fuel effect + noise
func (g *CorollaGenerator) listing(id int) map[string]string {
	fuel := g.pickFuel()
	hps := fuelHP[fuel]
	if len(hps) == 0 {
		hps = []int{100}
	}
	hp := hps[g.rng.Intn(len(hps))]
	age := 1 + g.rng.Intn(80)
	km := age*1200 + g.rng.Intn(20000)
	noise := g.rng.NormFloat64() * 900
	price := 19000 - 120*float64(age) + 30*float64(hp) + fuelEffect[fuel] + noise
	price = math.Max(1500, math.Round(price/5)*5)

	return map[string]string{
		"Id":        strconv.Itoa(id),
		"Model":     "TOYOTA Corolla " + fuel,
		"Price":     strconv.Itoa(int(price)),
		"Age_08_04": strconv.Itoa(age),
		"KM":        strconv.Itoa(km),
		"Fuel_Type": fuel,
		"HP":        strconv.Itoa(hp),
		"Doors":     strconv.Itoa(3 + g.rng.Intn(3)),
	}
}

func (g *CorollaGenerator) pickFuel() string {
	fuels := g.config.Fuels
	if len(fuels) == 0 {
		return "Petrol"
	}
	weights := g.config.FuelWeights
	if len(weights) != len(fuels) {
		return fuels[g.rng.Intn(len(fuels))]
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	x := g.rng.Float64() * total
	for i, w := range weights {
		if x < w {
			return fuels[i]
		}
		x -= w
	}
	return fuels[len(fuels)-1]
}

// WriteCSV writes records as a CSV file
func WriteCSV(path string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteXLSX writes records to Sheet1 of a new workbook; numeric cells are stored as numbers
func WriteXLSX(path string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for r, record := range records {
		for c, value := range record {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			var v interface{} = value
			if r > 0 {
				if num, err := strconv.ParseFloat(value, 64); err == nil {
					v = num
				}
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}
