package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/user/phytochem-crawler/internal/entity"
	"github.com/user/phytochem-crawler/internal/repository"
)

type fakePlantList struct {
	plants []entity.PlantOption
	err    error
}

func (f *fakePlantList) Load(context.Context) ([]entity.PlantOption, error) {
	return f.plants, f.err
}

func (f *fakePlantList) Store(_ context.Context, options []entity.PlantOption) error {
	f.plants = options
	return nil
}

// fakeFetcher serves pages by URL; unknown URLs fail.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	html, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("unexpected status 404 for %s", url)
	}
	return html, nil
}

type savedPage struct {
	plant, file string
}

type fakePageStore struct {
	saved []savedPage
}

func (f *fakePageStore) Save(_ context.Context, plantName, fileName, _ string) (string, error) {
	f.saved = append(f.saved, savedPage{plant: plantName, file: fileName})
	return plantName + "/" + fileName, nil
}

type fakeRecordRepo struct {
	records map[string]*entity.PlantRecord
	saveErr error
	findErr error
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: map[string]*entity.PlantRecord{}}
}

func (f *fakeRecordRepo) Save(_ context.Context, record *entity.PlantRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records[record.PlantName] = record
	return nil
}

func (f *fakeRecordRepo) FindByName(_ context.Context, name string) (*entity.PlantRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	r, ok := f.records[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r, nil
}

type fakeVisited struct {
	visited map[string]time.Duration
	err     error
}

func newFakeVisited(names ...string) *fakeVisited {
	v := &fakeVisited{visited: map[string]time.Duration{}}
	for _, n := range names {
		v.visited[n] = time.Hour
	}
	return v
}

func (f *fakeVisited) MarkVisited(_ context.Context, name string, expiry time.Duration) error {
	f.visited[name] = expiry
	return nil
}

func (f *fakeVisited) IsVisited(_ context.Context, name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.visited[name]
	return ok, nil
}

func (f *fakeVisited) RemoveVisited(_ context.Context, name string) error {
	delete(f.visited, name)
	return nil
}

type fakeFailed struct {
	pages   map[string]*entity.FailedPage
	deleted []string
}

func newFakeFailed() *fakeFailed {
	return &fakeFailed{pages: map[string]*entity.FailedPage{}}
}

func (f *fakeFailed) SaveOrUpdate(_ context.Context, page *entity.FailedPage) error {
	if prev, ok := f.pages[page.URL]; ok {
		page.RetryCount = prev.RetryCount + 1
	} else {
		page.RetryCount = 1
	}
	f.pages[page.URL] = page
	return nil
}

func (f *fakeFailed) FindRecent(context.Context, int) ([]*entity.FailedPage, error) {
	var out []*entity.FailedPage
	for _, p := range f.pages {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeFailed) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	delete(f.pages, url)
	return nil
}

type fakeQueue struct {
	items []string
	err   error
}

func (f *fakeQueue) Push(_ context.Context, name string) error {
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, name)
	return nil
}

func (f *fakeQueue) Pop(context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if len(f.items) == 0 {
		return "", repository.ErrQueueEmpty
	}
	name := f.items[0]
	f.items = f.items[1:]
	return name, nil
}

func (f *fakeQueue) Contains(_ context.Context, name string) (bool, error) {
	for _, item := range f.items {
		if item == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeQueue) Size(context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.items)), nil
}

var errBoom = errors.New("boom")
