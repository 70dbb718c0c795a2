package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/poseidon/internal/models"
	"github.com/ngmaloney/poseidon/internal/rating"
)

var (
	logDate      string
	logArea      string
	logSpecies   string
	logWeather   string
	logTideRange string
	logTimeOfDay string
	logSize      float64
	logCount     int
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a fishing outing in the catch log",
	Example: `  poseidon log --area 大洗 --species シーバス --count 2 --size 61 --weather 曇り --tide-range 大潮
  poseidon log --area 館山 --species 青物 --count 0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		now := a.now()
		rec := models.CatchRecord{
			Date:      logDate,
			Area:      logArea,
			Weather:   models.Weather(logWeather),
			Tide:      models.TideRange(logTideRange),
			TimeOfDay: models.TimeOfDay(logTimeOfDay),
			Species:   logSpecies,
			SizeCM:    logSize,
			Count:     logCount,
		}
		if rec.Date == "" {
			rec.Date = now.Format(models.DateLayout)
		}
		if rec.TimeOfDay == "" {
			rec.TimeOfDay = models.TimeOfDayAt(now)
		}

		if err := a.svc.LogCatch(cmd.Context(), rec); err != nil {
			return err
		}

		r := rating.RateRecord(rec)
		fmt.Printf("✓ Logged %s %s x%d on %s\n", rec.Area, rec.Species, rec.Count, rec.Date)
		fmt.Printf("  %s (%d)\n", r.Verdict.Describe(), r.Score)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Outing date (YYYY-MM-DD, default today)")
	logCmd.Flags().StringVarP(&logArea, "area", "a", "", "Area name")
	logCmd.Flags().StringVarP(&logSpecies, "species", "s", "", "Target species")
	logCmd.Flags().StringVar(&logWeather, "weather", "", "Weather: 晴れ, 曇り, 雨 or 風強い")
	logCmd.Flags().StringVar(&logTideRange, "tide-range", "", "Tide range: 大潮, 中潮, 小潮, 長潮 or 若潮")
	logCmd.Flags().StringVar(&logTimeOfDay, "time-of-day", "", "Time of day: 朝, 昼, 夕方 or 夜 (default from the clock)")
	logCmd.Flags().Float64Var(&logSize, "size", 0, "Largest fish in cm")
	logCmd.Flags().IntVarP(&logCount, "count", "n", 0, "Number of fish caught")

	_ = logCmd.MarkFlagRequired("area")
	_ = logCmd.MarkFlagRequired("species")
}
