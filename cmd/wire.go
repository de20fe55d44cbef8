package cmd

import (
	"fmt"

	"github.com/bnema/brand-manager-cli/internal/adapters/hooks"
	tomlrepo "github.com/bnema/brand-manager-cli/internal/adapters/repo/toml"
	"github.com/bnema/brand-manager-cli/internal/application"
	"github.com/bnema/brand-manager-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	brands   *application.BrandService
	ledger   *application.LedgerService
	handoffs *application.HandoffService
	memory   *application.MemoryService
	sessions *application.SessionService
	history  ports.HistoryRepository
}

func wireApp() (*app, error) {
	store, err := tomlrepo.NewStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire record store: %w", err)
	}

	return wireAppWithStore(store), nil
}

func wireAppWithStore(store *tomlrepo.Store) *app {
	clock := ports.SystemClock{}

	brandService := application.NewBrandService(
		tomlrepo.NewBrandRepository(store),
		tomlrepo.NewConfigRepository(store),
		clock,
	)
	ledgerService := application.NewLedgerService(tomlrepo.NewLedgerRepository(store), clock)
	handoffService := application.NewHandoffService(tomlrepo.NewHandoffRepository(store), clock)
	memoryService := application.NewMemoryService(tomlrepo.NewLearningRepository(store), clock)
	historyRepo := tomlrepo.NewHistoryRepository(store)

	sessionService := application.NewSessionService(
		brandService,
		ledgerService,
		handoffService,
		tomlrepo.NewOpenSessionRepository(store),
		historyRepo,
		hooks.NewSnapshotWriter(store.Root()),
		clock,
	)

	return &app{
		brands:   brandService,
		ledger:   ledgerService,
		handoffs: handoffService,
		memory:   memoryService,
		sessions: sessionService,
		history:  historyRepo,
	}
}
