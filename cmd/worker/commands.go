package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	adminservice "github.com/ChristianMLux/cml25-backend/internal/admin/service"
	"github.com/ChristianMLux/cml25-backend/internal/bootstrap"
	contentdomain "github.com/ChristianMLux/cml25-backend/internal/content/domain"
	cronjob "github.com/ChristianMLux/cml25-backend/internal/reposync/cron"
	"github.com/ChristianMLux/cml25-backend/internal/reposync/service"
)

const cliOwner = "cli"

// RunSync runs the repository sync once and prints the candidates as JSON.
// Nothing is written to the content store.
func RunSync(ctx context.Context, app *bootstrap.App, out io.Writer) error {
	run, candidates, err := app.Runner.Sync(ctx, service.TriggerCLI)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"run_id": run.RunID, "projects": candidates})
}

// RunMigrate writes the built-in seed projects into the store. It refuses
// to run without --confirm.
func RunMigrate(ctx context.Context, app *bootstrap.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(out)
	confirm := fs.Bool("confirm", false, "overwrite stored projects with the seed data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*confirm {
		return errors.New("migration overwrites stored projects; rerun with --confirm")
	}

	sess := adminservice.NewSession(cliOwner, adminservice.Deps{
		Store:    app.Projects,
		Syncer:   app.Runner,
		Uploader: app.Uploader,
		Seeds:    contentdomain.Seeds,
		Log:      app.Log,
	})
	res, err := sess.Migrate(ctx, true)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "migrated %d projects, %d failed\n", res.Migrated, res.Failed)
	return err
}

// RunSchedule runs the sync on a cron schedule until ctx is cancelled.
// A cron expression in args overrides SYNC_SCHEDULE.
func RunSchedule(ctx context.Context, app *bootstrap.App, args []string) error {
	spec := app.Config.Sync.Schedule
	if len(args) > 0 {
		spec = args[0]
	}

	s := cronjob.NewScheduler(app.Runner, app.Log)
	if err := s.Start(ctx, spec); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	app.Log.Info(context.Background(), "sync scheduler stopped")
	return nil
}
