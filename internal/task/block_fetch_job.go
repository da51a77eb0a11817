package task

import (
	"context"
	"time"

	"github.com/blues/chainstats/internal/config"
	"github.com/blues/chainstats/internal/logger"
	"github.com/blues/chainstats/internal/model"
	"github.com/blues/chainstats/internal/repository"
	"github.com/blues/chainstats/internal/upstream"
	"github.com/go-co-op/gocron/v2"
)

// The single hard-wired source. Running against more chains means one job
// per (currency, provider, endpoint) triple.
const (
	sourceCurrency       = "Ethereum"
	sourceProvider       = "Blockchair"
	sourceDefaultAPIKey  = "N/A"
	defaultUpstreamLimit = 10 * time.Second
)

// StatsFetcher is the upstream collaborator; satisfied by upstream.Client.
type StatsFetcher interface {
	Stats(ctx context.Context) (*upstream.Stats, error)
}

// BlockFetchJob polls the external stats endpoint and records the best block
// if it has not been seen yet. One tick is one attempt; any failure aborts
// only that run and the next tick is the retry.
type BlockFetchJob struct {
	repo     repository.BlockRepository
	stats    StatsFetcher
	interval time.Duration
	timeout  time.Duration

	currencyName string
	providerName string
}

// NewBlockFetchJob wires the job from config.
func NewBlockFetchJob(repo repository.BlockRepository, stats StatsFetcher, cfg *config.Config) *BlockFetchJob {
	timeout := cfg.Upstream.TimeoutDuration()
	if timeout <= 0 {
		timeout = defaultUpstreamLimit
	}

	return &BlockFetchJob{
		repo:         repo,
		stats:        stats,
		interval:     time.Duration(cfg.Task.Interval) * time.Second,
		timeout:      timeout,
		currencyName: sourceCurrency,
		providerName: sourceProvider,
	}
}

// GetName returns the job name.
func (j *BlockFetchJob) GetName() string {
	return "block_fetcher"
}

// GetSchedule returns the recurring schedule.
func (j *BlockFetchJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute runs one ingestion attempt. Nothing raised here may escape the
// scheduler, so every failure path logs and returns.
func (j *BlockFetchJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	stats, err := j.stats.Stats(ctx)
	if err != nil {
		logger.Warn("Skipping ingestion run: %v", err)
		return
	}

	currency, err := j.repo.GetOrCreateCurrency(ctx, j.currencyName)
	if err != nil {
		logger.Error("Ingestion run failed: %v", err)
		return
	}

	provider, err := j.repo.GetOrCreateProvider(ctx, j.providerName, sourceDefaultAPIKey)
	if err != nil {
		logger.Error("Ingestion run failed: %v", err)
		return
	}

	exists, err := j.repo.Exists(ctx, currency.Id, stats.BestBlockHeight)
	if err != nil {
		logger.Error("Ingestion run failed: %v", err)
		return
	}
	if exists {
		logger.Debug("Block %d for %s already recorded", stats.BestBlockHeight, currency.Name)
		return
	}

	block := &model.BlockModel{
		CurrencyId:  currency.Id,
		BlockNumber: stats.BestBlockHeight,
		CreatedAt:   stats.BestBlockTime,
		StoredAt:    time.Now().UTC(),
	}

	if _, err := j.repo.Insert(ctx, block, []model.ProviderModel{*provider}); err != nil {
		logger.Error("Failed to store block %d for %s: %v", stats.BestBlockHeight, currency.Name, err)
		return
	}

	logger.Info("Stored block %d for %s (provider %s)", stats.BestBlockHeight, currency.Name, provider.Name)
}
