package save

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// AppName is the gdata application name; it selects the OS data directory.
const AppName = "flappy_arcade"

const (
	gdataObject   = "save"
	gdataProperty = "record.json"
)

// GdataBackend stores the record in the per-user application data
// directory managed by gdata.
type GdataBackend struct {
	manager *gdata.Manager
	object  string
}

// OpenGdata opens the gdata storage for appName (AppName if empty).
func OpenGdata(appName string) (*GdataBackend, error) {
	if appName == "" {
		appName = AppName
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("save: open gdata %s: %w", appName, err)
	}
	return NewGdataBackend(m, ""), nil
}

// NewGdataBackend wraps an existing manager. object selects the record
// slot, so several players can share one manager.
func NewGdataBackend(m *gdata.Manager, object string) *GdataBackend {
	if object == "" {
		object = gdataObject
	}
	return &GdataBackend{manager: m, object: object}
}

func (b *GdataBackend) String() string {
	return "gdata:" + b.object
}

// Read loads the record bytes, or ErrNotFound if nothing was saved yet.
func (b *GdataBackend) Read() ([]byte, error) {
	if !b.manager.ObjectPropExists(b.object, gdataProperty) {
		return nil, ErrNotFound
	}
	return b.manager.LoadObjectProp(b.object, gdataProperty)
}

// Write stores the record bytes.
func (b *GdataBackend) Write(data []byte) error {
	return b.manager.SaveObjectProp(b.object, gdataProperty, data)
}
