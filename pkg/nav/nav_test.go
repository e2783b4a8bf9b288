package nav

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ravenlinux/raven-settings/pkg/page"
)

type recordingShower struct {
	shown []page.Category
	fail  map[page.Category]error
}

func (s *recordingShower) Show(cat page.Category) error {
	if err := s.fail[cat]; err != nil {
		return err
	}
	s.shown = append(s.shown, cat)
	return nil
}

func TestSelectRoutesKnownIdentifiers(t *testing.T) {
	s := &recordingShower{}
	d := NewDispatcher(DefaultMenu(), s, nil)

	assert.True(t, d.Select("autostart_apps"))
	assert.True(t, d.Select("config_files"))
	assert.True(t, d.Select("wifi"))

	assert.Equal(t, []page.Category{page.Autostart, page.ConfigFiles, page.WiFi}, s.shown)
}

func TestSelectIgnoresUnknownIdentifiers(t *testing.T) {
	s := &recordingShower{}
	d := NewDispatcher(DefaultMenu(), s, nil)

	assert.False(t, d.Select("printers"))
	assert.False(t, d.Select(""))
	assert.Empty(t, s.shown)
}

func TestSelectBuildFailure(t *testing.T) {
	s := &recordingShower{fail: map[page.Category]error{page.Audio: errors.New("missing audio.ui")}}
	d := NewDispatcher(DefaultMenu(), s, nil)

	assert.False(t, d.Select("audio"))
	assert.True(t, d.Select("display"))
}

func TestSelectIndex(t *testing.T) {
	s := &recordingShower{}
	d := NewDispatcher(DefaultMenu(), s, nil)

	assert.True(t, d.SelectIndex(0))
	assert.False(t, d.SelectIndex(-1))
	assert.False(t, d.SelectIndex(len(d.Entries())))
	assert.Equal(t, []page.Category{page.WiFi}, s.shown)
	assert.Equal(t, 1, d.IndexOf(page.Bluetooth))
	assert.Equal(t, -1, d.IndexOf("nope"))
}

func TestDefaultMenuIsConsistent(t *testing.T) {
	seenID := map[string]bool{}
	seenCat := map[page.Category]bool{}
	for _, e := range DefaultMenu() {
		assert.False(t, seenID[e.ID], "duplicate id %s", e.ID)
		assert.False(t, seenCat[e.Category], "duplicate category %s", e.Category)
		assert.NotEmpty(t, e.Title)
		assert.NotEmpty(t, e.Icon)
		seenID[e.ID] = true
		seenCat[e.Category] = true
	}
	for cat := range page.Descriptions {
		assert.True(t, seenCat[cat], "no menu entry for %s", cat)
	}
}
