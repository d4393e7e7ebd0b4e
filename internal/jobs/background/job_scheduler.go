package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"tablemate/internal/jobs"
)

// JobScheduler manages the recurring background jobs
type JobScheduler struct {
	scheduler  gocron.Scheduler
	stockAlert *jobs.StockAlertService
	jobsByName map[string]gocron.Job
	mu         sync.RWMutex
}

func NewJobScheduler(stockAlert *jobs.StockAlertService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		stockAlert: stockAlert,
		jobsByName: make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Low stock sweep - every 30 minutes
	alertsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.runStockAlerts),
		gocron.WithName("stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stock alerts job: %v", err)
	} else {
		js.jobsByName["stock-alerts"] = alertsJob
	}

	log.Printf("Registered %d background jobs", len(js.jobsByName))
}

func (js *JobScheduler) runStockAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := js.stockAlert.Sweep(ctx); err != nil {
		log.Printf("Stock alerts sweep failed: %v", err)
	}
}

// AddJob registers a custom recurring job.
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}
	js.jobsByName[name] = job
	return nil
}

// JobStatus reports the registered job names.
func (js *JobScheduler) JobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobsByName))
	for name := range js.jobsByName {
		names = append(names, name)
	}
	return map[string]interface{}{
		"total_jobs": len(js.jobsByName),
		"jobs":       names,
	}
}
