package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ashutoshsundresh/folio/pkg/schedule"
)

var (
	dayHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	courseStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Margin(0, 0, 1, 2)

	overlapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	emptyDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// ScheduleCommand creates the schedule command
func ScheduleCommand() *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Show the course schedule for a day",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "year",
				Usage: "Academic year",
				Value: time.Now().Year(),
			},
			&cli.StringFlag{
				Name:  "quarter",
				Usage: "Quarter name (e.g. fall)",
			},
			&cli.StringFlag{
				Name:  "day",
				Usage: "Weekday name",
				Value: strings.ToLower(time.Now().Weekday().String()),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfigAndDebug(c)
			if err != nil {
				return err
			}

			quarter := c.String("quarter")
			if quarter == "" {
				return fmt.Errorf("a quarter is required")
			}
			day := cases.Title(language.English).String(strings.ToLower(c.String("day")))
			if !schedule.ValidDay(day) {
				return fmt.Errorf("invalid day %q", day)
			}

			catalog, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := catalog.Close(); err != nil {
					fmt.Printf("Warning: failed to close catalog: %v\n", err)
				}
			}()

			courses, err := catalog.Courses(c.Int("year"), quarter)
			if err != nil {
				return fmt.Errorf("listing courses: %w", err)
			}

			items, err := schedule.DayItems(courses, day)
			if err != nil {
				return fmt.Errorf("building day schedule: %w", err)
			}

			printDay(c.Int("year"), quarter, day, items)
			return nil
		},
	}
}

func printDay(year int, quarter, day string, items []schedule.DayItem) {
	title := fmt.Sprintf("%s — %s %d", day,
		cases.Title(language.English).String(quarter), year)
	fmt.Println(dayHeaderStyle.Render(title))

	if len(items) == 0 {
		fmt.Println(emptyDayStyle.Render("No sessions scheduled."))
		return
	}

	columns := schedule.Layout(items)
	for i, item := range items {
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n", item.Session.StartTime, item.Session.EndTime)
		fmt.Fprintf(&b, "%s — %s", item.Course.Code, item.Course.Title)
		if item.Session.Type != "" {
			fmt.Fprintf(&b, " (%s)", item.Session.Type)
		}
		if columns[i].HasOverlap {
			b.WriteString("\n")
			b.WriteString(overlapStyle.Render(
				fmt.Sprintf("overlaps: column %d of %d", columns[i].Column+1, columns[i].MaxColumns)))
		}
		fmt.Println(courseStyle.Render(b.String()))
	}
}
