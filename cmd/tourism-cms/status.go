package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jaakkos/tourism-cms/internal/domain"
	"github.com/jaakkos/tourism-cms/internal/repository"
	"github.com/jaakkos/tourism-cms/internal/seed"
)

// runStatusCommand implements "tourism-cms status": counts and session state
// from the persisted snapshot, or from the seed when nothing is persisted.
func runStatusCommand() {
	logger := log.New(os.Stderr, "", 0)
	cfg := loadConfig(logger)

	repo, err := repository.NewSnapshotRepository(cfg.StatePath(), cfg.Key())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if c, ok := repo.(io.Closer); ok {
			_ = c.Close()
		}
	}()

	source := "snapshot"
	state, err := repo.Load()
	if err != nil {
		logger.Printf("warning: %v", err)
	}
	if state == nil {
		source = "seed"
		state, err = seed.New(cfg.SeedDir).Seed()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println(formatStatus(source, state))
}

func formatStatus(source string, state *domain.State) string {
	admin := "none"
	if state.Admin != nil && state.Admin.IsAuthenticated {
		admin = state.Admin.Email
	}
	return fmt.Sprintf("source=%s destinations=%d experiences=%d testimonials=%d gallery=%d admin=%s",
		source, len(state.Destinations), len(state.Experiences), len(state.Testimonials), len(state.Gallery), admin)
}
