package loader_test

import (
	"errors"
	"testing"

	"shipment-gateway/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	on := &fakeFeature{name: "on", enabled: true}
	off := &fakeFeature{name: "off"}

	mgr := loader.NewManager()
	mgr.Register(on)
	mgr.Register(off)

	assert.NoError(t, mgr.LoadAll(fiber.New()))
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
	assert.Len(t, mgr.Features(), 2)
}

func TestManager_LoadAllError(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(&fakeFeature{name: "broken", enabled: true, err: errors.New("boom")})

	err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "broken")
}
