package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ngmaloney/poseidon/internal/history"
	"github.com/ngmaloney/poseidon/internal/models"
)

var (
	historyArea    string
	historySpecies string
	historyRecords bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the catch success rate over time",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		recs, err := a.svc.Records(ctx, history.Filter{Area: historyArea, Species: historySpecies})
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("No catches logged yet")
			return nil
		}
		if historyRecords {
			printRecords(recs)
			return nil
		}

		series, err := a.svc.History(ctx, historyArea, historySpecies)
		if err != nil {
			return err
		}
		rate, err := a.svc.SuccessRate(ctx, historyArea, historySpecies)
		if err != nil {
			return err
		}
		fmt.Printf("通算釣果率 %.0f%% (%d 釣行) • 魚種: %s\n\n",
			rate*100, len(recs), strings.Join(history.SpeciesSeen(recs), ", "))

		rows := make([][]string, 0, len(series))
		for _, p := range series {
			rows = append(rows, []string{
				p.Date,
				strconv.Itoa(p.Outings),
				strconv.Itoa(p.Successes),
				fmt.Sprintf("%.0f%%", p.Rate*100),
				fmt.Sprintf("%.0f%%", p.CumulativeRate*100),
			})
		}

		fmt.Println(table.New().
			Border(lipgloss.NormalBorder()).
			Headers("日付", "釣行", "釣果あり", "釣果率", "通算").
			Rows(rows...).
			String())
		return nil
	},
}

func printRecords(recs []models.CatchRecord) {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Date,
			r.Area,
			r.Species,
			strconv.Itoa(r.Count),
			strconv.FormatFloat(r.SizeCM, 'f', -1, 64),
			string(r.Weather),
			string(r.Tide),
			string(r.TimeOfDay),
		})
	}
	fmt.Println(table.New().
		Border(lipgloss.NormalBorder()).
		Headers("日付", "エリア", "魚種", "匹数", "cm", "天気", "潮", "時間帯").
		Rows(rows...).
		String())
}

func init() {
	historyCmd.Flags().StringVarP(&historyArea, "area", "a", "", "Limit to one area")
	historyCmd.Flags().StringVarP(&historySpecies, "species", "s", "", "Limit to one species")
	historyCmd.Flags().BoolVar(&historyRecords, "records", false, "List the logged catches instead of the rate series")
}
