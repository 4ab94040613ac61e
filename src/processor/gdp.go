// gdp.go
package processor

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/phyyl673/FED/src/datasource/file"
	"github.com/phyyl673/FED/src/storage"
)

// Column names of the long and cleaned tables.
const (
	ColCountry    = "country"
	ColYear       = "year"
	ColGDPUSD     = "gdp_usd"
	ColGDPBillion = "gdp_billion"
	ColGDPUnit    = "gdp_unit"
)

// UnitLabel is attached to every cleaned observation.
const UnitLabel = "billion USD"

// sourceCountryCol is the entity column of World Bank wide exports, and
// metadataRows their preamble length.
const (
	sourceCountryCol = "Country Name"
	metadataRows     = 4
)

const (
	DefaultStartYear = 2000
	DefaultEndYear   = 2022
)

// DefaultCountries is the allow-list used when none is configured.
var DefaultCountries = []string{
	"United States",
	"United Kingdom",
	"Brazil",
	"Japan",
	"China",
	"Germany",
	"Switzerland",
}

// Processor runs the load and clean stages. The logger is optional;
// progress lines are dropped when it is nil.
type Processor struct {
	logger *storage.Logger
}

func New(logger *storage.Logger) *Processor {
	return &Processor{logger: logger}
}

func (p *Processor) logf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(fmt.Sprintf(format, args...))
	}
}

// LoadOptions narrows what LoadGDPData pulls out of the source table.
// Zero values mean the documented defaults; SavePath "" skips the CSV
// write.
type LoadOptions struct {
	Countries []string
	StartYear int
	EndYear   int
	SavePath  string
}

// LoadGDPData reads a World Bank wide-format export (.csv or .xlsx) and
// reshapes it into the long table [country, year, gdp_usd], one row per
// (country, year) pair. Countries in the allow-list but absent from the
// source are dropped silently; a requested year column absent from the
// source is a *SchemaError. Non-numeric cells become NaN.
func (p *Processor) LoadGDPData(filePath string, opts LoadOptions) (dataframe.DataFrame, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return dataframe.DataFrame{}, &NotFoundError{Path: filePath}
	}

	countries := opts.Countries
	if countries == nil {
		countries = DefaultCountries
	}
	start, end := opts.StartYear, opts.EndYear
	if start == 0 {
		start = DefaultStartYear
	}
	if end == 0 {
		end = DefaultEndYear
	}
	if start > end {
		return dataframe.DataFrame{}, fmt.Errorf("invalid year range: %d > %d", start, end)
	}

	var (
		records [][]string
		err     error
	)
	if strings.EqualFold(filepath.Ext(filePath), ".xlsx") {
		records, err = file.ReadXLSX(filePath, metadataRows)
	} else {
		records, err = file.ReadCSV(filePath, metadataRows)
	}
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(records) == 0 {
		return dataframe.DataFrame{}, &SchemaError{Column: sourceCountryCol}
	}

	header := records[0]
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}

	countryIdx, ok := colIdx[sourceCountryCol]
	if !ok {
		return dataframe.DataFrame{}, &SchemaError{Column: sourceCountryCol}
	}

	yearIdx := make([]int, 0, end-start+1)
	for y := start; y <= end; y++ {
		idx, ok := colIdx[strconv.Itoa(y)]
		if !ok {
			return dataframe.DataFrame{}, &SchemaError{Column: strconv.Itoa(y)}
		}
		yearIdx = append(yearIdx, idx)
	}

	allowed := make(map[string]bool, len(countries))
	for _, c := range countries {
		allowed[c] = true
	}

	var kept [][]string
	for _, row := range records[1:] {
		if countryIdx < len(row) && allowed[row[countryIdx]] {
			kept = append(kept, row)
		}
	}

	// melt: year-major, matching the wide→long unpivot order
	n := len(kept) * (end - start + 1)
	outCountry := make([]string, 0, n)
	outYear := make([]int, 0, n)
	outValue := make([]float64, 0, n)
	for i, y := 0, start; y <= end; i, y = i+1, y+1 {
		for _, row := range kept {
			var cell string
			if yearIdx[i] < len(row) {
				cell = row[yearIdx[i]]
			}
			outCountry = append(outCountry, row[countryIdx])
			outYear = append(outYear, y)
			outValue = append(outValue, toFloat(cell))
		}
	}

	df := dataframe.New(
		series.New(outCountry, series.String, ColCountry),
		series.New(outYear, series.Int, ColYear),
		series.New(outValue, series.Float, ColGDPUSD),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}

	p.logf("Loaded GDP data for %d countries (%d–%d) from %s",
		len(countries), start, end, filepath.Base(filePath))

	if opts.SavePath != "" {
		if err := file.WriteCSV(df, opts.SavePath); err != nil {
			return dataframe.DataFrame{}, err
		}
		p.logf("Long-format data saved to %s", opts.SavePath)
	}

	return df, nil
}

// toFloat coerces a raw cell to float64; anything non-numeric becomes NaN.
func toFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

type observation struct {
	country string
	year    int
	value   float64
}

// CleanGDPData fills gaps per country, converts USD to billions rounded
// to 2 decimal places, and attaches the unit label. The result keeps only
// [country, year, gdp_billion, gdp_unit], ordered by country then year.
func (p *Processor) CleanGDPData(df dataframe.DataFrame, method FillMethod, savePath string) (dataframe.DataFrame, error) {
	names := df.Names()
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, req := range []string{ColCountry, ColYear, ColGDPUSD} {
		if !have[req] {
			return dataframe.DataFrame{}, &SchemaError{Column: req}
		}
	}

	countrySer := df.Col(ColCountry)
	yearSer := df.Col(ColYear)
	valueSer := df.Col(ColGDPUSD)

	rows := make([]observation, df.Nrow())
	for i := range rows {
		rows[i] = observation{
			country: countrySer.Elem(i).String(),
			year:    int(yearSer.Elem(i).Float()),
			value:   valueSer.Elem(i).Float(),
		}
	}

	// sort before filling so the fill direction is deterministic
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].country != rows[j].country {
			return rows[i].country < rows[j].country
		}
		return rows[i].year < rows[j].year
	})

	for s := 0; s < len(rows); {
		e := s
		for e < len(rows) && rows[e].country == rows[s].country {
			e++
		}
		vals := make([]float64, e-s)
		for i := s; i < e; i++ {
			vals[i-s] = rows[i].value
		}
		filled := fillSeries(vals, method)
		for i := s; i < e; i++ {
			rows[i].value = filled[i-s]
		}
		s = e
	}

	outCountry := make([]string, len(rows))
	outYear := make([]int, len(rows))
	outBillion := make([]float64, len(rows))
	outUnit := make([]string, len(rows))
	for i, r := range rows {
		outCountry[i] = r.country
		outYear[i] = r.year
		outBillion[i] = round2(r.value / 1e9)
		outUnit[i] = UnitLabel
	}

	clean := dataframe.New(
		series.New(outCountry, series.String, ColCountry),
		series.New(outYear, series.Int, ColYear),
		series.New(outBillion, series.Float, ColGDPBillion),
		series.New(outUnit, series.String, ColGDPUnit),
	)
	if clean.Err != nil {
		return dataframe.DataFrame{}, clean.Err
	}

	p.logf("Cleaned GDP data: %d rows, fill method %s", clean.Nrow(), method)

	if savePath != "" {
		if err := file.WriteCSV(clean, savePath); err != nil {
			return dataframe.DataFrame{}, err
		}
		p.logf("Cleaned data saved to %s", savePath)
	}

	return clean, nil
}

// round2 rounds to 2 decimal places; NaN passes through.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
