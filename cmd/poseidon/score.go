package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ngmaloney/poseidon/internal/advisor"
	"github.com/ngmaloney/poseidon/internal/geocoding"
	"github.com/ngmaloney/poseidon/internal/lunar"
	"github.com/ngmaloney/poseidon/internal/openmeteo"
)

var (
	scoreArea    string
	scoreSpecies []string
	scoreTide    string
	scoreLat     float64
	scoreLon     float64
	scorePlace   string
	scoreJSON    bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score bite likelihood for every area, one area or a coordinate",
	Example: `  poseidon score
  poseidon score --area 九十九里 --species ヒラメ --tide rising
  poseidon score --lat 35.30 --lon 139.45
  poseidon score --place 銚子港`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tide, err := parseTide(scoreTide)
		if err != nil {
			return err
		}

		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		now := a.now()

		var forecasts []advisor.AreaForecast
		switch {
		case scorePlace != "":
			loc, err := geocoding.NewGeocoder(cfg.Geocoding.CountryCodes, logger).Geocode(ctx, scorePlace)
			if err != nil {
				return err
			}
			fmt.Printf("📍 %s (%.4f, %.4f)\n", loc.Name, loc.Latitude, loc.Longitude)
			f, err := a.svc.ScoreCoordinate(ctx, loc.Latitude, loc.Longitude, tide, now, scoreSpecies...)
			if err != nil {
				return err
			}
			forecasts = []advisor.AreaForecast{f}
		case cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon"):
			f, err := a.svc.ScoreCoordinate(ctx, scoreLat, scoreLon, tide, now, scoreSpecies...)
			if err != nil {
				return err
			}
			forecasts = []advisor.AreaForecast{f}
		case scoreArea != "":
			f, err := a.svc.ScoreArea(ctx, scoreArea, tide, now, scoreSpecies...)
			if err != nil {
				return err
			}
			forecasts = []advisor.AreaForecast{f}
		default:
			forecasts, err = a.svc.ScoreAreas(ctx, tide, now, scoreSpecies...)
			if err != nil {
				return err
			}
		}

		if scoreJSON {
			return writeForecastsJSON(forecasts)
		}

		phase := lunar.MoonPhase(now)
		fmt.Printf("%s • 月齢 %.1f (%s)\n\n", now.Format("2006-01-02 15:04 MST"), phase, lunar.PhaseName(phase))
		fmt.Println(forecastTable(forecasts))
		return nil
	},
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreArea, "area", "a", "", "Score a single area by name")
	scoreCmd.Flags().StringSliceVarP(&scoreSpecies, "species", "s", nil, "Species to score (default: every profiled species)")
	scoreCmd.Flags().StringVarP(&scoreTide, "tide", "t", "", "Tide direction: 上げ/rising or 下げ/falling (default: estimated)")
	scoreCmd.Flags().Float64Var(&scoreLat, "lat", 0, "Latitude of an arbitrary point")
	scoreCmd.Flags().Float64Var(&scoreLon, "lon", 0, "Longitude of an arbitrary point")
	scoreCmd.Flags().StringVarP(&scorePlace, "place", "p", "", "Score a place looked up by name")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print results as JSON")
}

func forecastTable(forecasts []advisor.AreaForecast) string {
	var species []string
	for _, f := range forecasts {
		if !f.Unavailable() {
			for _, sp := range f.Result.PerSpecies {
				species = append(species, sp.Species)
			}
			break
		}
	}

	headers := append([]string{"エリア", "波", "風", "気圧", "水温", "潮", "基本"}, species...)
	headers = append(headers, "総合")

	rows := make([][]string, 0, len(forecasts))
	for _, f := range forecasts {
		if f.Unavailable() {
			row := []string{f.Area.Name, "データ取得不可: " + string(openmeteo.ReasonOf(f.Err))}
			for len(row) < len(headers) {
				row = append(row, "")
			}
			rows = append(rows, row)
			continue
		}

		s := f.Snapshot
		row := []string{
			f.Area.Name,
			fmt.Sprintf("%.1fm", s.WaveHeightM),
			fmt.Sprintf("%.1f/%.1f", s.WindSpeedMS, s.WindGustMS),
			fmt.Sprintf("%.0f", s.PressureHPa),
			fmt.Sprintf("%.1f℃", s.SeaSurfaceTempC),
			string(f.Tide),
			strconv.Itoa(f.Result.Base),
		}
		for _, sp := range f.Result.PerSpecies {
			row = append(row, strconv.Itoa(sp.Score))
		}
		row = append(row, strconv.Itoa(f.Result.Aggregate)+"%")
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

type forecastJSON struct {
	Area        string         `json:"area"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Tide        string         `json:"tide"`
	MoonPhase   float64        `json:"moon_phase"`
	HistoryRate float64        `json:"history_rate"`
	Base        int            `json:"base,omitempty"`
	Species     map[string]int `json:"species,omitempty"`
	Aggregate   int            `json:"aggregate,omitempty"`
	Unavailable string         `json:"unavailable,omitempty"`
}

func writeForecastsJSON(forecasts []advisor.AreaForecast) error {
	out := make([]forecastJSON, 0, len(forecasts))
	for _, f := range forecasts {
		j := forecastJSON{
			Area:        f.Area.Name,
			Latitude:    f.Area.Latitude,
			Longitude:   f.Area.Longitude,
			Tide:        string(f.Tide),
			MoonPhase:   f.MoonPhase,
			HistoryRate: f.HistoryRate,
		}
		if f.Unavailable() {
			j.Unavailable = strings.TrimSpace(f.Err.Error())
		} else {
			j.Base = f.Result.Base
			j.Aggregate = f.Result.Aggregate
			j.Species = make(map[string]int, len(f.Result.PerSpecies))
			for _, sp := range f.Result.PerSpecies {
				j.Species[sp.Species] = sp.Score
			}
		}
		out = append(out, j)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
