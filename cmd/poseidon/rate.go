package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/poseidon/internal/models"
	"github.com/ngmaloney/poseidon/internal/rating"
)

var (
	rateWeather   string
	rateTideRange string
	rateTimeOfDay string
	rateCount     int
)

var rateCmd = &cobra.Command{
	Use:     "rate",
	Short:   "Quick verdict from weather, tide range, time of day and catch count",
	Example: `  poseidon rate --weather 曇り --tide-range 大潮 --time-of-day 朝 --count 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := rating.Rate(
			models.Weather(rateWeather),
			models.TideRange(rateTideRange),
			models.TimeOfDay(rateTimeOfDay),
			rateCount,
		)
		fmt.Printf("%s (%d)\n", r.Verdict.Describe(), r.Score)
		return nil
	},
}

func init() {
	rateCmd.Flags().StringVar(&rateWeather, "weather", "", "Weather: 晴れ, 曇り, 雨 or 風強い")
	rateCmd.Flags().StringVar(&rateTideRange, "tide-range", "", "Tide range: 大潮, 中潮, 小潮, 長潮 or 若潮")
	rateCmd.Flags().StringVar(&rateTimeOfDay, "time-of-day", "", "Time of day: 朝, 昼, 夕方 or 夜")
	rateCmd.Flags().IntVarP(&rateCount, "count", "n", 0, "Number of fish caught")
}
