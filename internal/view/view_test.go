package view

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jimezsa/jobscan/internal/filter"
	"github.com/jimezsa/jobscan/internal/gate"
	"github.com/jimezsa/jobscan/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu        sync.Mutex
	scanning  bool
	websites  []models.Website
	batches   []models.JobBatch
	listErr   error
	mutateErr error
	calls     []string
	onToggle  func()
}

func (f *fakeAPI) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) ScanStatus(context.Context) (models.ScanStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.ScanStatus{IsScanning: f.scanning}, nil
}

func (f *fakeAPI) AllWebsites(context.Context) ([]models.Website, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Website{}, f.websites...), nil
}

func (f *fakeAPI) CreateWebsite(_ context.Context, in models.WebsiteInput) (models.Website, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create")
	if f.mutateErr != nil {
		return models.Website{}, f.mutateErr
	}
	site := models.Website{ID: "new", Name: *in.Name, IsActive: true}
	f.websites = append(f.websites, site)
	return site, nil
}

func (f *fakeAPI) UpdateWebsite(_ context.Context, id string, in models.WebsiteInput) (models.Website, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update " + id)
	if f.mutateErr != nil {
		return models.Website{}, f.mutateErr
	}
	for i := range f.websites {
		if f.websites[i].ID == id && in.Name != nil {
			f.websites[i].Name = *in.Name
		}
	}
	return models.Website{ID: id}, nil
}

func (f *fakeAPI) DeleteWebsite(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete " + id)
	if f.mutateErr != nil {
		return f.mutateErr
	}
	kept := f.websites[:0]
	for _, site := range f.websites {
		if site.ID != id {
			kept = append(kept, site)
		}
	}
	f.websites = kept
	return nil
}

func (f *fakeAPI) ToggleWebsite(_ context.Context, id string) (models.Website, error) {
	if f.onToggle != nil {
		f.onToggle()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("toggle " + id)
	if f.mutateErr != nil {
		return models.Website{}, f.mutateErr
	}
	for i := range f.websites {
		if f.websites[i].ID == id {
			f.websites[i].IsActive = !f.websites[i].IsActive
			return f.websites[i], nil
		}
	}
	return models.Website{}, errors.New("not found")
}

func (f *fakeAPI) ClearWebsiteErrors(_ context.Context, id string) (models.Website, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("clear " + id)
	if f.mutateErr != nil {
		return models.Website{}, f.mutateErr
	}
	for i := range f.websites {
		if f.websites[i].ID == id {
			f.websites[i].LastError = ""
			f.websites[i].LastErrorAt = nil
		}
	}
	return models.Website{ID: id}, nil
}

func (f *fakeAPI) AllJobBatches(context.Context) ([]models.JobBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.JobBatch{}, f.batches...), nil
}

func (f *fakeAPI) TriggerScan(context.Context) (models.ScanResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("scan")
	f.batches = append(f.batches, models.JobBatch{ID: "fresh", Titles: []string{"Intern"}})
	return models.ScanResult{Message: "Job scanning completed"}, nil
}

func (f *fakeAPI) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.calls...)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		websites: []models.Website{
			{ID: "a", Name: "A", IsActive: true},
			{ID: "b", Name: "B", LastError: "timeout"},
		},
	}
}

func openWebsites(t *testing.T, api *fakeAPI, confirm Confirmer) *Websites {
	t.Helper()
	ctx := context.Background()
	v, err := OpenWebsites(ctx, api, Options{PollInterval: time.Hour, Confirm: confirm, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(v.Close)
	require.NoError(t, v.WaitReady(ctx))
	require.NoError(t, v.Refresh(ctx))
	return v
}

func websiteIDs(sites []models.Website) []string {
	out := []string{}
	for _, site := range sites {
		out = append(out, site.ID)
	}
	return out
}

func TestMutationsBlockedWhileScanning(t *testing.T) {
	api := newFakeAPI()
	api.scanning = true
	v := openWebsites(t, api, AlwaysConfirm)
	ctx := context.Background()

	assert.Equal(t, gate.For(true), v.Capabilities())
	assert.ErrorIs(t, v.Toggle(ctx, "a"), gate.ErrScanInProgress)
	assert.ErrorIs(t, v.Delete(ctx, "a"), gate.ErrScanInProgress)
	assert.ErrorIs(t, v.Create(ctx, models.WebsiteInput{Name: ptr("C")}), gate.ErrScanInProgress)
	assert.Empty(t, api.callLog())
}

func TestToggleRefetchesList(t *testing.T) {
	api := newFakeAPI()
	v := openWebsites(t, api, AlwaysConfirm)

	require.NoError(t, v.Toggle(context.Background(), "b"))

	site, ok := v.Find("b")
	require.True(t, ok)
	assert.True(t, site.IsActive)
	assert.Equal(t, []string{"toggle b"}, api.callLog())
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	api := newFakeAPI()
	var prompts []string
	decline := func(prompt string) (bool, error) {
		prompts = append(prompts, prompt)
		return false, nil
	}
	v := openWebsites(t, api, decline)

	err := v.Delete(context.Background(), "a")
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, api.callLog())
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], `"A"`)
	assert.Len(t, v.All(), 2)
}

func TestConfirmedDeleteRemovesAfterRefetch(t *testing.T) {
	api := newFakeAPI()
	v := openWebsites(t, api, AlwaysConfirm)

	require.NoError(t, v.Delete(context.Background(), "a"))
	assert.Equal(t, []string{"b"}, websiteIDs(v.All()))
}

func TestToggleDoesNotConfirm(t *testing.T) {
	api := newFakeAPI()
	v := openWebsites(t, api, func(string) (bool, error) {
		t.Fatal("toggle must not ask for confirmation")
		return false, nil
	})

	require.NoError(t, v.Toggle(context.Background(), "a"))
}

func TestFailedMutationLeavesListUntouched(t *testing.T) {
	api := newFakeAPI()
	v := openWebsites(t, api, AlwaysConfirm)
	before := v.All()

	api.mutateErr = errors.New("500 internal")
	err := v.ClearErrors(context.Background(), "b")
	require.Error(t, err)

	assert.Equal(t, before, v.All())
	assert.Equal(t, []string{"clear b"}, api.callLog())
}

func TestRefreshFailureKeepsPreviousList(t *testing.T) {
	api := newFakeAPI()
	v := openWebsites(t, api, AlwaysConfirm)

	api.listErr = errors.New("connection refused")
	require.Error(t, v.Refresh(context.Background()))
	assert.Equal(t, []string{"a", "b"}, websiteIDs(v.All()))
}

func TestCriteriaSurviveRefresh(t *testing.T) {
	api := newFakeAPI()
	v := openWebsites(t, api, AlwaysConfirm)

	v.SetCriteria(filter.WebsiteCriteria{Active: filter.ActiveOnly})
	assert.Equal(t, []string{"a"}, websiteIDs(v.View()))

	require.NoError(t, v.Create(context.Background(), models.WebsiteInput{Name: ptr("C")}))
	assert.Equal(t, []string{"a", "new"}, websiteIDs(v.View()))
	assert.True(t, v.HasErrors())

	v.Clear()
	assert.Len(t, v.View(), 3)
}

func TestJobsScanRefetchesBatches(t *testing.T) {
	api := newFakeAPI()
	ctx := context.Background()
	v, err := OpenJobs(ctx, api, Options{PollInterval: time.Hour, Logger: zerolog.Nop()})
	require.NoError(t, err)
	defer v.Close()
	require.NoError(t, v.WaitReady(ctx))
	require.NoError(t, v.Refresh(ctx))
	require.Empty(t, v.View())

	result, err := v.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Job scanning completed", result.Message)
	require.Len(t, v.View(), 1)
	assert.Equal(t, "fresh", v.View()[0].ID)
}

func TestJobsScanRefusedWhileScanning(t *testing.T) {
	api := newFakeAPI()
	api.scanning = true
	ctx := context.Background()
	v, err := OpenJobs(ctx, api, Options{PollInterval: time.Hour, Logger: zerolog.Nop()})
	require.NoError(t, err)
	defer v.Close()
	require.NoError(t, v.WaitReady(ctx))

	_, err = v.Scan(ctx)
	assert.ErrorIs(t, err, gate.ErrScanInProgress)
	assert.Empty(t, api.callLog())
}

func TestCloseStopsUpdates(t *testing.T) {
	api := newFakeAPI()
	v := openWebsites(t, api, AlwaysConfirm)
	updates := v.ScanUpdates()

	v.Close()
	_, open := <-updates
	assert.False(t, open)
}

func TestRefreshAfterCloseIsDropped(t *testing.T) {
	api := newFakeAPI()
	v := openWebsites(t, api, AlwaysConfirm)
	v.Close()

	api.mu.Lock()
	api.websites = api.websites[:1]
	api.mu.Unlock()

	assert.ErrorIs(t, v.Refresh(context.Background()), ErrClosed)
	assert.Equal(t, []string{"a", "b"}, websiteIDs(v.All()))
}

func TestMutationFinishingAfterCloseLeavesListAlone(t *testing.T) {
	api := newFakeAPI()
	v := openWebsites(t, api, AlwaysConfirm)
	api.onToggle = v.Close

	err := v.Toggle(context.Background(), "b")
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, []string{"toggle b"}, api.callLog())

	site, ok := v.Find("b")
	require.True(t, ok)
	assert.False(t, site.IsActive)
}

func ptr[T any](v T) *T { return &v }
