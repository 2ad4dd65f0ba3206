package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/empmanager/personnel-management/internal/notification"
	notificationpg "github.com/empmanager/personnel-management/internal/notification/postgres"
	"github.com/empmanager/personnel-management/pkg/logger"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers, currently the leave reminder dispatcher.`,
}

var reminderWorkerCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Start the leave reminder worker",
	Long:  `Poll for due leave reminders, deliver them to the log and mark them sent.`,
	Run: func(cmd *cobra.Command, args []string) {
		startReminderWorker()
	},
}

var reminderInterval time.Duration

func init() {
	reminderWorkerCmd.Flags().DurationVar(&reminderInterval, "interval", time.Minute, "polling interval")
	workerCmd.AddCommand(reminderWorkerCmd)
}

func startReminderWorker() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
	log := logger.LoggerWrapper()

	sqlDB, err := initDB(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init db: %v\n", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init gorm: %v\n", err)
		os.Exit(1)
	}

	service := notification.NewService(
		notificationpg.NewNotificationRepository(gormDB),
		notificationpg.NewEmployeeDirectory(gormDB),
		log)

	log.Info("reminder worker started", "interval", reminderInterval.String())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(reminderInterval)
	defer ticker.Stop()

	dispatch := func() {
		due, err := service.ListDue()
		if err != nil {
			log.Error("failed to list due reminders", "error", err)
			return
		}
		for i := range due {
			n := &due[i]
			// delivery is the log line; a mail or chat channel would hang
			// off the same loop
			log.Info("leave reminder due",
				"notification_id", n.ID,
				"leave_id", n.LeaveID,
				"employee_id", n.EmployeeID,
				"type", n.Type,
				"trigger_date", n.TriggerDate.Format("2006-01-02"),
				"message", n.Message)
			if _, err := service.Acknowledge(n.ID); err != nil {
				log.Error("failed to acknowledge reminder", "notification_id", n.ID, "error", err)
			}
		}
	}

	dispatch()
	for {
		select {
		case <-ticker.C:
			dispatch()
		case sig := <-sigChan:
			log.Info("reminder worker stopping", "signal", sig.String())
			return
		}
	}
}
