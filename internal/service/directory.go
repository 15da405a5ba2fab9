package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/msomdec/spartan-directory/internal/directory"
	"github.com/msomdec/spartan-directory/internal/domain"
)

// Counts summarizes the dataset by availability status.
type Counts struct {
	Total       int
	Available   int
	Unavailable int
}

// DirectoryService loads the spartans dataset through the simulated fetcher
// and answers listing queries through the pure pipeline. The dataset is
// cached after the first successful fetch; a failed fetch is not cached, so
// retrying a request re-fetches.
type DirectoryService struct {
	fetcher *directory.Fetcher

	mu      sync.Mutex
	dataset []domain.Spartan
	loaded  bool
}

// NewDirectoryService creates a DirectoryService over the given fetcher.
func NewDirectoryService(fetcher *directory.Fetcher) *DirectoryService {
	return &DirectoryService{fetcher: fetcher}
}

// List renders one directory page for the given view state.
func (s *DirectoryService) List(ctx context.Context, view directory.ViewState) (directory.Page, error) {
	dataset, err := s.load(ctx)
	if err != nil {
		return directory.Page{}, err
	}
	return directory.Render(dataset, view), nil
}

// CountsByStatus returns the dataset totals per availability status.
func (s *DirectoryService) CountsByStatus(ctx context.Context) (Counts, error) {
	dataset, err := s.load(ctx)
	if err != nil {
		return Counts{}, err
	}

	counts := Counts{Total: len(dataset)}
	for _, r := range dataset {
		if r.Status == domain.StatusAvailable {
			counts.Available++
		} else {
			counts.Unavailable++
		}
	}
	return counts, nil
}

// Refresh drops the cached dataset so the next request re-fetches.
func (s *DirectoryService) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = nil
	s.loaded = false
}

func (s *DirectoryService) load(ctx context.Context) ([]domain.Spartan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.dataset, nil
	}

	dataset, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}
	s.dataset = dataset
	s.loaded = true
	return dataset, nil
}
