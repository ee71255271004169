package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"coopdoor/controller"
	"coopdoor/solar"
)

var (
	tableYear  int
	tableMonth int
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print sunrise and sunset for every day of a month.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		now := time.Now().In(time.FixedZone("site", UTCOffset*3600))
		year, month := now.Year(), now.Month()
		if tableYear != 0 {
			year = tableYear
		}
		if tableMonth != 0 {
			if tableMonth < 1 || tableMonth > 12 {
				return fmt.Errorf("month %d out of range", tableMonth)
			}
			month = time.Month(tableMonth)
		}

		writeTable(cmd.OutOrStdout(), solar.New(siteLocation()), year, month)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the controller would do now, without moving the door.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.initClock(); err != nil {
			return err
		}
		if err := app.initDoor(false); err != nil {
			return err
		}

		ctrl := controller.New(app.clock, app.solar, app.door, nil)
		st, err := ctrl.Preview()
		if err != nil {
			return err
		}
		writeStatus(cmd.OutOrStdout(), st)
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the hatch now and record it.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return moveDoor(true)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the hatch now and record it.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return moveDoor(false)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "coopdoor build %s\n", buildVersion())
	},
}

func init() {
	tableCmd.Flags().IntVar(&tableYear, "year", 0, "year (default current)")
	tableCmd.Flags().IntVar(&tableMonth, "month", 0, "month 1-12 (default current)")
}

func buildVersion() string {
	if myBuild == "" {
		return "dev"
	}
	return myBuild
}

// moveDoor drives the door through the same idempotent, persisted path the
// controller uses. The running controller corrects the door again at its
// next evaluation if it disagrees.
func moveDoor(open bool) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.initDoor(true); err != nil {
		return err
	}
	if open {
		return app.door.Open()
	}
	return app.door.Close()
}

func writeTable(w io.Writer, p *solar.Provider, year int, month time.Month) {
	loc := p.Location()
	fmt.Fprintf(w, "%s %d  (%.4f, %.4f, UTC%+d)\n", month, year, loc.Latitude, loc.Longitude, loc.UTCOffset)
	fmt.Fprintln(w, "Day  Sunrise  Sunset  Daylight")
	for _, d := range p.Table(year, month) {
		fmt.Fprintf(w, "%3d  %7s  %6s  %8s\n", d.Day,
			solar.FormatMinutes(d.Sunrise), solar.FormatMinutes(d.Sunset),
			solar.FormatDuration(d.Sunset-d.Sunrise))
	}
}

func writeStatus(w io.Writer, st controller.Status) {
	door := "closed"
	if st.DoorOpen {
		door = "open"
	}
	phase := "night"
	if st.IsDaytime {
		phase = "day"
	}

	fmt.Fprintf(w, "Time:         %s\n", st.Now)
	fmt.Fprintf(w, "Sunrise:      %s\n", st.Sunrise())
	fmt.Fprintf(w, "Sunset:       %s\n", st.Sunset())
	fmt.Fprintf(w, "Phase:        %s\n", phase)
	fmt.Fprintf(w, "Door:         %s\n", door)
	fmt.Fprintf(w, "Next change:  %s\n", solar.FormatDuration(st.MinutesUntilChange))
	fmt.Fprintf(w, "Pending:      %s\n", st.Action)
}
