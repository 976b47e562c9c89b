package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/jobtrack/internal/client/models"
	"github.com/dmitrijs2005/jobtrack/internal/filex"
	"github.com/dmitrijs2005/jobtrack/internal/netx"
)

func (a *App) Log(ctx context.Context, args []string) error {
	fs := newFlagSet("log", a.out)
	apps := fs.Int("apps", 0, "applications sent")
	net := fs.Int("net", 0, "networking contacts")
	hours := fs.Float64("hours", 0, "skill practice hours")
	research := fs.Int("research", 0, "companies researched")
	if err := fs.Parse(args); err != nil {
		return err
	}

	seen := setFlags(fs)
	if len(seen) == 0 {
		return errors.New("nothing to log, pass at least one of -apps -net -hours -research")
	}

	var in models.ActivityInput
	if seen["apps"] {
		in.ApplicationsSent = apps
	}
	if seen["net"] {
		in.NetworkingContacts = net
	}
	if seen["hours"] {
		in.SkillPracticeHours = hours
	}
	if seen["research"] {
		in.ResearchCompanies = research
	}

	act, err := a.api.SubmitActivity(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Today (%s): %d applications, %d contacts, %s hours, %d companies researched\n",
		act.Date, act.ApplicationsSent, act.NetworkingContacts, formatHours(act.SkillPracticeHours), act.ResearchCompanies)
	return nil
}

func (a *App) History(ctx context.Context, args []string) error {
	fs := newFlagSet("history", a.out)
	days := fs.Int("days", 30, "number of days to look back")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *days < 0 {
		return errors.New("days must not be negative")
	}

	acts, err := a.api.Activities(ctx, *days)
	if err != nil {
		return err
	}
	if len(acts) == 0 {
		fmt.Fprintf(a.out, "No activity in the last %d days\n", *days)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAPPS\tCONTACTS\tHOURS\tRESEARCH")
	for _, x := range acts {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\n", x.Date, x.ApplicationsSent, x.NetworkingContacts, formatHours(x.SkillPracticeHours), x.ResearchCompanies)
	}
	return tw.Flush()
}

func (a *App) Stats(ctx context.Context, _ []string) error {
	s, err := a.api.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Today:           %d\n", s.TodayActivities)
	fmt.Fprintf(a.out, "This week:       %d\n", s.WeekActivities)
	fmt.Fprintf(a.out, "Current streak:  %d %s\n", s.CurrentStreak, plural(s.CurrentStreak, "day", "days"))
	fmt.Fprintf(a.out, "Days logged:     %d\n", s.TotalDaysLogged)
	return nil
}

func (a *App) Goals(ctx context.Context, _ []string) error {
	progress, err := a.api.Progress(ctx)
	if err != nil {
		return err
	}
	if len(progress) == 0 {
		fmt.Fprintln(a.out, "No active goals, set one with 'set-goal'")
		return nil
	}

	for _, p := range progress {
		status := "in progress"
		if p.Met {
			status = "met"
		}
		fmt.Fprintf(a.out, "%s goal (%s)\n", p.Goal.Type, status)
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  applications\t%s / %s\n", formatHours(p.Applications.Done), formatHours(p.Applications.Target))
		fmt.Fprintf(tw, "  contacts\t%s / %s\n", formatHours(p.Networking.Done), formatHours(p.Networking.Target))
		fmt.Fprintf(tw, "  skill hours\t%s / %s\n", formatHours(p.SkillHours.Done), formatHours(p.SkillHours.Target))
		fmt.Fprintf(tw, "  research\t%s / %s\n", formatHours(p.Research.Done), formatHours(p.Research.Target))
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) SetGoal(ctx context.Context, args []string) error {
	fs := newFlagSet("set-goal", a.out)
	cadence := fs.String("type", "", "daily or weekly")
	apps := fs.Int("apps", 0, "applications target")
	net := fs.Int("net", 0, "networking target")
	hours := fs.Float64("hours", 0, "skill hours target")
	research := fs.Int("research", 0, "research target")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *cadence != "daily" && *cadence != "weekly" {
		return errors.New("-type must be daily or weekly")
	}

	g, err := a.api.SetGoal(ctx, models.Goal{
		Type:               *cadence,
		ApplicationsTarget: *apps,
		NetworkingTarget:   *net,
		SkillHoursTarget:   *hours,
		ResearchTarget:     *research,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "New %s goal: %d applications, %d contacts, %s hours, %d companies\n",
		g.Type, g.ApplicationsTarget, g.NetworkingTarget, formatHours(g.SkillHoursTarget), g.ResearchTarget)
	return nil
}

// download is a test seam for netx.DownloadPresignedURL.
var download = netx.DownloadPresignedURL

func (a *App) Export(ctx context.Context, args []string) error {
	fs := newFlagSet("export", a.out)
	output := fs.String("o", "", "also download the export to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := a.api.Export(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Export stored as %s\n", e.Key)

	if *output == "" {
		fmt.Fprintf(a.out, "Download (valid until %s):\n%s\n", e.ExpiresAt.Local().Format("2006-01-02 15:04"), e.URL)
		return nil
	}

	if _, err := filex.EnsureParentDir(*output, 0o755); err != nil {
		return err
	}
	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	n, err := download(ctx, e.URL, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %d bytes to %s\n", n, *output)
	return nil
}

// Import reads an export document and restores the days it contains.
func (a *App) Import(ctx context.Context, args []string) error {
	fs := newFlagSet("import", a.out)
	file := fs.String("f", "", "export file to import")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("-f is required")
	}

	b, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	var doc struct {
		Activities []models.Activity `json:"activities"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("%s is not an export file: %w", *file, err)
	}
	if len(doc.Activities) == 0 {
		return fmt.Errorf("%s contains no activity", *file)
	}

	n, err := a.api.Import(ctx, doc.Activities)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Imported %d %s\n", n, plural(n, "day", "days"))
	return nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
