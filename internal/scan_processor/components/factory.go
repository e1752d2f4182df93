package components

import (
	"log/slog"

	"github.com/atelier-rental-ledger/internal/config"
	"github.com/atelier-rental-ledger/internal/domain/outbox"
	"github.com/atelier-rental-ledger/internal/domain/scan"
	"github.com/atelier-rental-ledger/internal/platform/persistence"
	"github.com/atelier-rental-ledger/internal/scan_processor/service"
)

// CreateProcessingService creates a new ProcessingService with all its dependencies.
func CreateProcessingService(
	pgDB *persistence.PostgresDB,
	scanRepo scan.Repository,
	outboxRepo outbox.Repository,
	logger *slog.Logger,
	cfg *config.Config,
) service.ProcessingService {
	validator := NewScanValidator(scanRepo, logger)
	eventRecorder := NewEventRecorder(scanRepo, logger)
	outboxManager := NewOutboxManager(outboxRepo, logger)

	baseService := service.NewProcessingService(
		pgDB,
		validator,
		eventRecorder,
		outboxManager,
		logger,
	)

	workerPoolService, err := service.NewWorkerPoolProcessingService(
		baseService,
		service.WorkerPoolConfig{
			Size: cfg.WorkerPool.Size,
		},
		logger.With("component", "worker_pool"),
	)

	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService
	}

	logger.Info("Created worker pool processing service", "pool_size", cfg.WorkerPool.Size)
	return workerPoolService
}
