package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ngmaloney/poseidon/internal/areas"
	"github.com/ngmaloney/poseidon/internal/database"
	"github.com/ngmaloney/poseidon/internal/models"
)

var (
	areasLat    float64
	areasLon    float64
	areasRadius float64
)

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "List fishing areas, optionally those near a point",
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := cfg.AreaTable(logger)
		if err != nil {
			return err
		}

		t := table.New().Border(lipgloss.NormalBorder())

		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
			t.Headers("エリア", "地域", "緯度", "経度", "距離")
			for _, n := range tbl.Nearest(areasLat, areasLon, areasRadius) {
				t.Row(n.Name, n.Region,
					fmt.Sprintf("%.4f", n.Latitude),
					fmt.Sprintf("%.4f", n.Longitude),
					fmt.Sprintf("%.1f km", n.DistanceKm))
			}
		} else {
			t.Headers("エリア", "地域", "緯度", "経度")
			for _, a := range tbl.All() {
				t.Row(a.Name, a.Region,
					fmt.Sprintf("%.4f", a.Latitude),
					fmt.Sprintf("%.4f", a.Longitude))
			}
		}

		fmt.Println(t.String())
		return nil
	},
}

var areasImportCmd = &cobra.Command{
	Use:   "import <shapefile>",
	Short: "Import fishing areas from a point shapefile into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := areas.ImportShapefile(args[0], logger)
		if err != nil {
			return err
		}
		// validate before replacing what is stored
		if _, err := areas.NewTable(list); err != nil {
			return fmt.Errorf("invalid areas in %s: %w", args[0], err)
		}

		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := areas.SaveToDB(db, list); err != nil {
			return err
		}
		fmt.Printf("✓ Imported %d areas into %s\n", len(list), cfg.Database.Path)
		return nil
	},
}

var (
	addLat    float64
	addLon    float64
	addRegion string
)

var areasAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a custom fishing area",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		// the first custom area replaces the built-in table, so seed it
		existing, err := areas.LoadFromDB(db)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			if err := areas.SaveToDB(db, areas.Default().All()); err != nil {
				return err
			}
		}

		a := models.Area{Name: args[0], Region: addRegion, Latitude: addLat, Longitude: addLon}
		if err := areas.SaveArea(db, a); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s (%.4f, %.4f)\n", a.Name, a.Latitude, a.Longitude)
		return nil
	},
}

var areasRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a fishing area from the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := areas.DeleteArea(db, args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Removed %s\n", args[0])
		return nil
	},
}

func init() {
	areasAddCmd.Flags().Float64Var(&addLat, "lat", 0, "Latitude")
	areasAddCmd.Flags().Float64Var(&addLon, "lon", 0, "Longitude")
	areasAddCmd.Flags().StringVar(&addRegion, "region", "", "Prefecture or region")
	_ = areasAddCmd.MarkFlagRequired("lat")
	_ = areasAddCmd.MarkFlagRequired("lon")

	areasCmd.Flags().Float64Var(&areasLat, "lat", 0, "Latitude to search near")
	areasCmd.Flags().Float64Var(&areasLon, "lon", 0, "Longitude to search near")
	areasCmd.Flags().Float64Var(&areasRadius, "radius", 50, "Search radius in km")

	areasCmd.AddCommand(areasImportCmd, areasAddCmd, areasRemoveCmd)
}
