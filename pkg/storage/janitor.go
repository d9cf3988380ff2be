package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReferenceLister reports the upload URLs still in use.
type ReferenceLister func(ctx context.Context) ([]string, error)

// Janitor periodically deletes uploads nothing refers to anymore. Image
// removal on service update and delete is best effort, this catches the rest.
type Janitor struct {
	store  *Local
	refs   ReferenceLister
	maxAge time.Duration
	cron   *cron.Cron
	log    *zap.Logger
}

func NewJanitor(store *Local, refs ReferenceLister, maxAge time.Duration, log *zap.Logger) *Janitor {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &Janitor{
		store:  store,
		refs:   refs,
		maxAge: maxAge,
		cron:   cron.New(),
		log:    log.With(zap.String("job", "upload-janitor")),
	}
}

// Start schedules the sweep. An empty schedule leaves the janitor idle.
func (j *Janitor) Start(schedule string) error {
	if schedule == "" {
		j.log.Info("Upload sweep disabled")
		return nil
	}
	if _, err := j.cron.AddFunc(schedule, func() { j.Run(context.Background()) }); err != nil {
		return fmt.Errorf("schedule upload sweep %q: %w", schedule, err)
	}
	j.cron.Start()
	j.log.Info("Upload sweep scheduled", zap.String("schedule", schedule))
	return nil
}

// Stop waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

func (j *Janitor) Run(ctx context.Context) {
	keep, err := j.refs(ctx)
	if err != nil {
		j.log.Error("Failed to list referenced uploads", zap.Error(err))
		return
	}

	removed, err := j.store.Sweep(keep, j.maxAge)
	if err != nil {
		j.log.Warn("Some orphan uploads could not be removed", zap.Error(err))
	}
	if len(removed) > 0 {
		j.log.Info("Removed orphan uploads", zap.Strings("files", removed))
	}
}
