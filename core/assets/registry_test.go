package assets_test

import (
	"testing"

	"scene-editor/core/assets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_AssignsUniqueGeneratedIDs(t *testing.T) {
	r := assets.NewRegistry()
	a := r.Register(assets.Descriptor{Title: "A", Identifier: "a"})
	b := r.Register(assets.Descriptor{Title: "B", Identifier: "b"})

	assert.NotEmpty(t, a.GeneratedID())
	assert.NotEmpty(t, b.GeneratedID())
	assert.NotEqual(t, a.GeneratedID(), b.GeneratedID())
}

func TestDescriptors_PreserveRegistrationOrder(t *testing.T) {
	r := assets.NewRegistry()
	r.Register(assets.Descriptor{Title: "C", Identifier: "c"})
	r.Register(assets.Descriptor{Title: "A", Identifier: "a"})
	r.Register(assets.Descriptor{Title: "B", Identifier: "b"})

	ds := r.Descriptors()
	require.Len(t, ds, 3)
	assert.Equal(t, "c", ds[0].Identifier)
	assert.Equal(t, "a", ds[1].Identifier)
	assert.Equal(t, "b", ds[2].Identifier)
}

func TestLookupByTitle_LastRegistrationWins(t *testing.T) {
	r := assets.NewRegistry()
	r.Register(assets.Descriptor{Title: "Dup", Identifier: "first"})
	r.Register(assets.Descriptor{Title: "Dup", Identifier: "second"})

	d := r.LookupByTitle("Dup")
	require.NotNil(t, d)
	assert.Equal(t, "second", d.Identifier)

	assert.Nil(t, r.LookupByTitle("missing"))
}

func TestLookupByIdentifier_FirstMatchWins(t *testing.T) {
	r := assets.NewRegistry()
	first := r.Register(assets.Descriptor{Title: "One", Identifier: "dup"})
	r.Register(assets.Descriptor{Title: "Two", Identifier: "dup"})

	d := r.LookupByIdentifier("dup")
	require.NotNil(t, d)
	assert.Equal(t, first.GeneratedID(), d.GeneratedID())
}

func TestMountUnmount_TogglesLiveInstance(t *testing.T) {
	r := assets.NewRegistry()
	r.Register(assets.Descriptor{Title: "A", Identifier: "a"})
	r.Register(assets.Descriptor{Title: "B", Identifier: "b"})

	h := &fakeHandler{}
	r.Mount("a", h)
	assert.Len(t, r.Live(), 1)
	require.NotNil(t, r.LookupByIdentifier("a").Instance())

	r.Unmount("a")
	assert.Empty(t, r.Live())
	assert.Nil(t, r.LookupByIdentifier("a").Instance())

	// Unknown identifiers are ignored.
	r.Mount("nope", h)
	r.Unmount("nope")
}

func TestMountAll_ConstructsMissingInstances(t *testing.T) {
	r := assets.NewRegistry()
	built := 0
	r.Register(assets.Descriptor{Title: "A", Identifier: "a", New: func() assets.Handler {
		built++
		return &fakeHandler{}
	}})
	r.Register(assets.Descriptor{Title: "B", Identifier: "b"})

	r.MountAll()
	r.MountAll()

	assert.Equal(t, 1, built, "existing instances are kept")
	assert.Len(t, r.Live(), 1)
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	r := assets.NewRegistry()
	textures := &fakeHandler{items: []assets.Item{
		{ID: "1", Key: "wood.png", Base64: "aGk=", Style: map[string]string{"icon": "image"}},
		{ID: "2", Key: "stone.png"},
	}}
	sounds := &fakeHandler{items: []assets.Item{{ID: "3", Key: "pop.wav"}}}
	register(r, "Textures", "textures", textures)
	register(r, "Sounds", "sounds", sounds)

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	require.Len(t, snap["Textures"], 2)
	assert.Equal(t, "wood.png", snap["Textures"][0].Key)
	assert.Equal(t, "aGk=", snap["Textures"][0].Base64)

	textures.ReplaceItems(nil)
	sounds.ReplaceItems(nil)
	r.Restore(snap)

	assert.Len(t, textures.Items(), 2)
	assert.Len(t, sounds.Items(), 1)
	assert.Equal(t, map[string]string{"icon": "image"}, textures.Items()[0].Style)
}

func TestRestore_IgnoresUnknownAndUnmountedTitles(t *testing.T) {
	r := assets.NewRegistry()
	textures := &fakeHandler{}
	register(r, "Textures", "textures", textures)
	r.Register(assets.Descriptor{Title: "Dead", Identifier: "dead"})

	r.Restore(map[string][]assets.ItemRecord{
		"Textures": {{ID: "1", Key: "a.png"}},
		"Dead":     {{ID: "2", Key: "b.png"}},
		"Unknown":  {{ID: "3", Key: "c.png"}},
	})

	assert.Len(t, textures.Items(), 1)
}

func TestSnapshot_SkipsUnmountedDescriptors(t *testing.T) {
	r := assets.NewRegistry()
	register(r, "Live", "live", &fakeHandler{items: []assets.Item{{ID: "1", Key: "k"}}})
	r.Register(assets.Descriptor{Title: "Dead", Identifier: "dead"})

	snap := r.Snapshot()
	assert.Len(t, snap, 1)
	assert.Contains(t, snap, "Live")
}
