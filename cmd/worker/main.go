package main

import (
	"os"

	"github.com/cx-tal-miterani/scenic-airways/internal/activities"
	"github.com/cx-tal-miterani/scenic-airways/internal/config"
	"github.com/cx-tal-miterani/scenic-airways/internal/logger"
	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/cx-tal-miterani/scenic-airways/internal/queue"
	"github.com/cx-tal-miterani/scenic-airways/internal/workflows"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

func main() {
	log := logger.Init(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	log.Info("Connecting to Temporal", "host", cfg.TemporalHost)
	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHost,
		Logger:   log,
	})
	if err != nil {
		log.Error("Failed to connect to Temporal", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	var publisher activities.EventPublisher
	if cfg.AMQPURL != "" {
		publisher = queue.NewPublisher(cfg.AMQPURL, log)
	} else {
		log.Warn("AMQP_URL not set, booking events will not be published")
	}

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})

	w.RegisterWorkflowWithOptions(workflows.ConfirmationWorkflow, workflow.RegisterOptions{Name: models.WorkflowConfirmation})

	acts := activities.NewActivities(publisher)
	w.RegisterActivityWithOptions(acts.IssueConfirmation, activity.RegisterOptions{Name: models.ActivityIssueConfirmation})
	w.RegisterActivityWithOptions(acts.PublishBookingConfirmed, activity.RegisterOptions{Name: models.ActivityPublishBookingConfirmed})

	log.Info("Starting Temporal worker", "taskQueue", cfg.TemporalTaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Error("Worker failed", "error", err)
		os.Exit(1)
	}
}
