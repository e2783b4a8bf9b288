package page

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravenlinux/raven-settings/pkg/mainloop"
	"github.com/ravenlinux/raven-settings/pkg/task"
)

type fakeHost struct {
	added map[Category]View
	shown []Category
}

func newFakeHost() *fakeHost {
	return &fakeHost{added: make(map[Category]View)}
}

func (h *fakeHost) Add(cat Category, view View) { h.added[cat] = view }
func (h *fakeHost) Show(cat Category)           { h.shown = append(h.shown, cat) }

func TestRegistryBuildsOnce(t *testing.T) {
	host := newFakeHost()
	r := NewRegistry(host, nil)
	calls := 0
	r.Register(WiFi, BuilderFunc(func(ctx *BuildContext) (View, error) {
		calls++
		assert.Equal(t, WiFi, ctx.Category)
		return "wifi-view", nil
	}))

	require.NoError(t, r.Show(WiFi))
	require.NoError(t, r.Show(WiFi))

	assert.Equal(t, 1, calls)
	assert.True(t, r.Built(WiFi))
	assert.Equal(t, "wifi-view", host.added[WiFi])
	assert.Equal(t, []Category{WiFi, WiFi}, host.shown)
	assert.Equal(t, WiFi, r.Current())
}

func TestRegistryBuildFailure(t *testing.T) {
	host := newFakeHost()
	r := NewRegistry(host, nil)
	boom := &DescriptionError{File: "audio.ui"}
	calls, closed := 0, 0
	r.Register(Audio, BuilderFunc(func(ctx *BuildContext) (View, error) {
		calls++
		ctx.OnClose(func() { closed++ })
		return nil, boom
	}))

	err := r.Show(Audio)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, Audio, buildErr.Category)
	assert.ErrorIs(t, err, boom)
	assert.False(t, r.Built(Audio))
	assert.Empty(t, host.added)
	assert.Empty(t, host.shown)
	assert.Equal(t, 1, closed, "partial build must be torn down")

	require.Error(t, r.Show(Audio))
	assert.Equal(t, 2, calls, "a later show retries the build")
}

func TestRegistryUnknownCategory(t *testing.T) {
	r := NewRegistry(newFakeHost(), nil)
	assert.ErrorIs(t, r.Show("nope"), ErrUnknownCategory)
}

func TestRegistryReentrantShow(t *testing.T) {
	r := NewRegistry(newFakeHost(), nil)
	var inner error
	r.Register(Display, BuilderFunc(func(ctx *BuildContext) (View, error) {
		inner = r.Show(Display)
		return "display", nil
	}))

	require.NoError(t, r.Show(Display))
	assert.ErrorIs(t, inner, ErrBuilding)
}

func TestRegistryCloseRunsClosers(t *testing.T) {
	r := NewRegistry(newFakeHost(), nil)
	var order []string
	r.Register(WiFi, BuilderFunc(func(ctx *BuildContext) (View, error) {
		ctx.OnClose(func() { order = append(order, "wifi-timer") })
		ctx.OnClose(func() { order = append(order, "wifi-scan") })
		return "wifi", nil
	}))
	r.Register(Bluetooth, BuilderFunc(func(ctx *BuildContext) (View, error) {
		ctx.OnClose(func() { order = append(order, "bt") })
		return "bt", nil
	}))
	r.Register(Audio, BuilderFunc(func(ctx *BuildContext) (View, error) { return "audio", nil }))

	require.NoError(t, r.Show(WiFi))
	require.NoError(t, r.Show(Bluetooth))
	r.Close()

	assert.Equal(t, []string{"bt", "wifi-scan", "wifi-timer"}, order)
	assert.False(t, r.Built(WiFi))
	assert.Equal(t, []Category{WiFi, Bluetooth, Audio}, r.Categories())

	r.Close()
	assert.Len(t, order, 3)
}

func TestResolveDescription(t *testing.T) {
	local := t.TempDir()
	shared := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(shared, "wifi.ui"), []byte("<interface/>"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(local, "audio.ui"), 0o755))

	path, err := ResolveDescription("wifi.ui", []string{local, "", shared})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(shared, "wifi.ui"), path)

	require.NoError(t, os.WriteFile(filepath.Join(local, "wifi.ui"), []byte("<interface/>"), 0o644))
	path, err = ResolveDescription("wifi.ui", []string{local, shared})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(local, "wifi.ui"), path)

	_, err = ResolveDescription("audio.ui", []string{local, shared})
	var descErr *DescriptionError
	require.ErrorAs(t, err, &descErr)
	assert.Equal(t, []string{filepath.Join(local, "audio.ui"), filepath.Join(shared, "audio.ui")}, descErr.Searched)
}

func TestDescriptionsCoverUIPages(t *testing.T) {
	for _, cat := range []Category{WiFi, Bluetooth, Audio, Display, Security, Autostart} {
		d, ok := Descriptions[cat]
		require.True(t, ok, cat)
		assert.NotEmpty(t, d.File)
		assert.NotEmpty(t, d.Object)
	}
	assert.Equal(t, "security_settings_page", Descriptions[Security].Object)
}

func newPool(t *testing.T) (*mainloop.Queue, *task.Pool) {
	t.Helper()
	q := mainloop.NewQueue()
	p := task.NewPool(q, 2, nil)
	t.Cleanup(p.Close)
	return q, p
}

// drain runs loop callbacks until cond holds.
func drain(t *testing.T, q *mainloop.Queue, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		q.RunPending()
		return cond()
	}, time.Second, time.Millisecond)
}

func TestListControllerReplacesRecords(t *testing.T) {
	q, p := newPool(t)
	scans := 0
	var shown [][]string
	c := NewListController(ListSpec[string]{
		Category: WiFi,
		Scan: func(ctx context.Context) ([]string, error) {
			scans++
			if scans == 1 {
				return []string{"a", "b"}, nil
			}
			return []string{"c"}, nil
		},
		Replace: func(records []string) { shown = append(shown, records) },
	}, p, nil)

	require.True(t, c.Refresh())
	drain(t, q, func() bool { return len(shown) == 1 })
	require.True(t, c.Refresh())
	drain(t, q, func() bool { return len(shown) == 2 })

	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, shown)
	assert.Equal(t, []string{"c"}, c.Records())
	assert.False(t, c.LastRefresh().IsZero())
	assert.False(t, c.Scanning())
}

func TestListControllerDropsOverlappingRefresh(t *testing.T) {
	q, p := newPool(t)
	release := make(chan struct{})
	scans := 0
	replaced := 0
	c := NewListController(ListSpec[int]{
		Category: Bluetooth,
		Scan: func(ctx context.Context) ([]int, error) {
			<-release
			return []int{1}, nil
		},
		OnScan:  func() { scans++ },
		Replace: func([]int) { replaced++ },
	}, p, nil)

	assert.True(t, c.Refresh())
	assert.False(t, c.Refresh())
	assert.False(t, c.Refresh())
	assert.True(t, c.Scanning())
	assert.Equal(t, 1, scans)

	close(release)
	drain(t, q, func() bool { return replaced == 1 })
	assert.True(t, c.Refresh())
}

func TestListControllerErrorKeepsList(t *testing.T) {
	q, p := newPool(t)
	boom := errors.New("nmcli missing")
	var gotErr error
	replaced := false
	c := NewListController(ListSpec[int]{
		Scan:    func(ctx context.Context) ([]int, error) { return nil, boom },
		Replace: func([]int) { replaced = true },
		OnError: func(err error) { gotErr = err },
	}, p, nil)

	c.Refresh()
	drain(t, q, func() bool { return gotErr != nil })

	assert.ErrorIs(t, gotErr, boom)
	assert.False(t, replaced)
	assert.False(t, c.Scanning())
}

func TestListControllerStopDiscardsLateResult(t *testing.T) {
	q, p := newPool(t)
	release := make(chan struct{})
	replaced := false
	c := NewListController(ListSpec[int]{
		Scan: func(ctx context.Context) ([]int, error) {
			<-release
			return []int{1}, nil
		},
		Replace: func([]int) { replaced = true },
	}, p, nil)

	c.Start()
	require.True(t, c.Running())
	c.Stop()
	close(release)

	time.Sleep(20 * time.Millisecond)
	q.RunPending()
	assert.False(t, replaced)
	assert.False(t, c.Running())
	assert.False(t, c.Scanning())
}

func TestListControllerSingleTimer(t *testing.T) {
	q, p := newPool(t)
	var scans int
	c := NewListController(ListSpec[int]{
		Interval: 10 * time.Millisecond,
		Scan:     func(ctx context.Context) ([]int, error) { return nil, nil },
		OnScan:   func() { scans++ },
		Replace:  func([]int) {},
	}, p, nil)

	c.Start()
	c.Start()
	c.Start()
	assert.Equal(t, 1, scans, "repeated Start must not rescan")

	drain(t, q, func() bool { return scans >= 3 })
	c.Stop()
	q.RunPending()
	after := scans
	time.Sleep(40 * time.Millisecond)
	q.RunPending()
	assert.Equal(t, after, scans, "no refresh after Stop")
}

func TestListControllerWithoutInterval(t *testing.T) {
	q, p := newPool(t)
	var scans int
	c := NewListController(ListSpec[int]{
		Scan:    func(ctx context.Context) ([]int, error) { return nil, nil },
		OnScan:  func() { scans++ },
		Replace: func([]int) {},
	}, p, nil)

	c.Start()
	drain(t, q, func() bool { return !c.Scanning() })
	c.Start()
	assert.Equal(t, 1, scans)
	assert.True(t, c.Running())
}

func TestToggleSuccess(t *testing.T) {
	q, p := newPool(t)
	var displayed []bool
	var calls []bool
	tg := NewToggle(p, func(ctx context.Context, on bool) error {
		calls = append(calls, on)
		return nil
	}, func(on bool) { displayed = append(displayed, on) })
	tg.Init(false)

	require.True(t, tg.Request(true))
	assert.True(t, tg.Pending())
	drain(t, q, func() bool { return !tg.Pending() })

	assert.True(t, tg.State())
	assert.Equal(t, []bool{true}, calls)
	assert.Equal(t, []bool{false}, displayed, "success leaves the control where the user put it")
	assert.False(t, tg.Request(true), "no-op request")
}

func TestToggleRevertsOnFailure(t *testing.T) {
	q, p := newPool(t)
	boom := errors.New("nmcli: not authorized")
	var displayed []bool
	var gotErr error
	tg := NewToggle(p, func(ctx context.Context, on bool) error { return boom },
		func(on bool) { displayed = append(displayed, on) }).
		OnError(func(err error) { gotErr = err })
	tg.Init(true)

	require.True(t, tg.Request(false))
	drain(t, q, func() bool { return !tg.Pending() })

	assert.True(t, tg.State(), "logical state unchanged")
	assert.Equal(t, []bool{true, true}, displayed, "control set back to its prior position")
	assert.ErrorIs(t, gotErr, boom)
}

func TestToggleRefusesWhilePending(t *testing.T) {
	q, p := newPool(t)
	release := make(chan struct{})
	var displayed []bool
	calls := 0
	tg := NewToggle(p, func(ctx context.Context, on bool) error {
		calls++
		<-release
		return nil
	}, func(on bool) { displayed = append(displayed, on) })

	require.True(t, tg.Request(true))
	assert.False(t, tg.Request(false))
	assert.Equal(t, []bool{true}, displayed, "refused request snaps the control back to the pending target")

	close(release)
	drain(t, q, func() bool { return !tg.Pending() })
	assert.Equal(t, 1, calls)
	assert.True(t, tg.State())
}

func TestToggleLoad(t *testing.T) {
	q, p := newPool(t)
	var displayed []bool
	tg := NewToggle(p, func(ctx context.Context, on bool) error { return nil },
		func(on bool) { displayed = append(displayed, on) })

	tk := tg.Load(func(ctx context.Context) (bool, error) { return true, nil })
	<-tk.Done()
	q.RunPending()

	assert.True(t, tg.State())
	assert.Equal(t, []bool{true}, displayed)
}

func TestToggleOnChange(t *testing.T) {
	q, p := newPool(t)
	var changed []bool
	tg := NewToggle(p, func(ctx context.Context, on bool) error {
		if !on {
			return errors.New("denied")
		}
		return nil
	}, func(bool) {}).OnChange(func(on bool) { changed = append(changed, on) })

	require.True(t, tg.Request(true))
	drain(t, q, func() bool { return !tg.Pending() })
	require.True(t, tg.Request(false))
	drain(t, q, func() bool { return !tg.Pending() })

	assert.Equal(t, []bool{true}, changed, "failed changes are not reported")
}

func TestShippedDescriptionsDefinePageObjects(t *testing.T) {
	dirs := []string{filepath.Join("..", "..", "ui")}
	for cat, d := range Descriptions {
		path, err := ResolveDescription(d.File, dirs)
		require.NoError(t, err, cat)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `id="`+d.Object+`"`, cat)
	}
}
