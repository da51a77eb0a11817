package task

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blues/chainstats/internal/apperr"
	"github.com/blues/chainstats/internal/config"
	"github.com/blues/chainstats/internal/model"
	"github.com/blues/chainstats/internal/repository"
	"github.com/blues/chainstats/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBlockRepo is an in-memory BlockRepository for job tests.
type memBlockRepo struct {
	blocks     []model.BlockModel
	currencies []model.CurrencyModel
	providers  []model.ProviderModel
	inserts    int
}

func (m *memBlockRepo) FindBlocks(ctx context.Context, filter repository.BlockFilter, offset, limit int) ([]model.BlockModel, int64, error) {
	return m.blocks, int64(len(m.blocks)), nil
}

func (m *memBlockRepo) GetByKey(ctx context.Context, currencyName string, blockNumber int64) (*model.BlockModel, error) {
	return nil, apperr.NotFound("Block not found")
}

func (m *memBlockRepo) GetById(ctx context.Context, id int64) (*model.BlockModel, error) {
	return nil, apperr.NotFound("Block not found")
}

func (m *memBlockRepo) Exists(ctx context.Context, currencyId, blockNumber int64) (bool, error) {
	for i := range m.blocks {
		if m.blocks[i].CurrencyId == currencyId && m.blocks[i].BlockNumber == blockNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBlockRepo) Insert(ctx context.Context, block *model.BlockModel, providers []model.ProviderModel) (*model.BlockModel, error) {
	m.inserts++
	block.Id = int64(len(m.blocks) + 1)
	block.Providers = providers
	m.blocks = append(m.blocks, *block)
	return block, nil
}

func (m *memBlockRepo) GetOrCreateCurrency(ctx context.Context, name string) (*model.CurrencyModel, error) {
	for i := range m.currencies {
		if m.currencies[i].Name == name {
			return &m.currencies[i], nil
		}
	}
	c := model.CurrencyModel{Id: int64(len(m.currencies) + 1), Name: name}
	m.currencies = append(m.currencies, c)
	return &c, nil
}

func (m *memBlockRepo) GetOrCreateProvider(ctx context.Context, name, defaultAPIKey string) (*model.ProviderModel, error) {
	for i := range m.providers {
		if m.providers[i].Name == name {
			return &m.providers[i], nil
		}
	}
	p := model.ProviderModel{Id: int64(len(m.providers) + 1), Name: name, APIKey: defaultAPIKey}
	m.providers = append(m.providers, p)
	return &p, nil
}

func (m *memBlockRepo) ListCurrencies(ctx context.Context) ([]model.CurrencyModel, error) {
	return m.currencies, nil
}

func (m *memBlockRepo) ListProviders(ctx context.Context) ([]model.ProviderModel, error) {
	return m.providers, nil
}

func newTestJob(repo repository.BlockRepository, url string) *BlockFetchJob {
	cfg := &config.Config{
		Task:     config.TaskConfig{Interval: 60},
		Upstream: config.UpstreamConfig{URL: url, Timeout: 2},
	}
	client := upstream.NewClient(url, cfg.Upstream.TimeoutDuration())
	return NewBlockFetchJob(repo, client, cfg)
}

func statsServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExecuteStoresBlock(t *testing.T) {
	srv := statsServer(t, `{"data": {"best_block_height": 19000000, "best_block_time": "2024-01-01T00:00:00Z"}}`)
	repo := &memBlockRepo{}

	newTestJob(repo, srv.URL).Execute()

	require.Len(t, repo.blocks, 1)
	block := repo.blocks[0]
	assert.Equal(t, int64(19000000), block.BlockNumber)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), block.CreatedAt)
	assert.False(t, block.StoredAt.IsZero())

	require.Len(t, block.Providers, 1)
	assert.Equal(t, "Blockchair", block.Providers[0].Name)
	assert.Equal(t, "N/A", block.Providers[0].APIKey)

	require.Len(t, repo.currencies, 1)
	assert.Equal(t, "Ethereum", repo.currencies[0].Name)
}

func TestExecuteIsIdempotent(t *testing.T) {
	srv := statsServer(t, `{"data": {"best_block_height": 19000000, "best_block_time": "2024-01-01T00:00:00Z"}}`)
	repo := &memBlockRepo{}
	job := newTestJob(repo, srv.URL)

	job.Execute()
	job.Execute()

	assert.Equal(t, 1, repo.inserts)
	assert.Len(t, repo.blocks, 1)
}

func TestExecuteStoresNewHeight(t *testing.T) {
	heights := []string{
		`{"data": {"best_block_height": 19000000, "best_block_time": "2024-01-01T00:00:00Z"}}`,
		`{"data": {"best_block_height": 19000001, "best_block_time": "2024-01-01T00:00:12Z"}}`,
	}
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(heights[calls]))
		calls++
	}))
	defer srv.Close()

	repo := &memBlockRepo{}
	job := newTestJob(repo, srv.URL)

	job.Execute()
	job.Execute()

	assert.Len(t, repo.blocks, 2)
}

func TestExecuteSkipsOnUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	repo := &memBlockRepo{}

	// Must not panic out of the scheduler.
	assert.NotPanics(t, func() {
		newTestJob(repo, srv.URL).Execute()
	})

	assert.Empty(t, repo.blocks)
	assert.Empty(t, repo.currencies)
	assert.Empty(t, repo.providers)
}

func TestExecuteSkipsOnMalformedPayload(t *testing.T) {
	cases := []string{
		`{"data": {}}`,
		`{"data": {"best_block_height": 19000000}}`,
		`not json`,
	}

	for _, body := range cases {
		srv := statsServer(t, body)
		repo := &memBlockRepo{}

		assert.NotPanics(t, func() {
			newTestJob(repo, srv.URL).Execute()
		})
		assert.Empty(t, repo.blocks, "payload %q must not produce a block", body)
	}
}

func TestExecuteSkipsOnUnreachableUpstream(t *testing.T) {
	repo := &memBlockRepo{}

	assert.NotPanics(t, func() {
		newTestJob(repo, "http://127.0.0.1:1").Execute()
	})
	assert.Empty(t, repo.blocks)
}
