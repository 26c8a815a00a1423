package geo

import (
	"github.com/dshills/mapforge/internal/object"
	"github.com/dshills/mapforge/internal/property"
)

// Folder groups features.
type Folder struct {
	*object.Object
}

// NewFolder creates an empty folder.
func NewFolder(name string, props ...*property.Property) *Folder {
	return &Folder{Object: object.New(TypeFolder, name, props...)}
}

func folderFromSerialized(data object.Serialized) (object.Node, error) {
	o, err := object.FromSerialized(data)
	if err != nil {
		return nil, err
	}
	return &Folder{Object: o}, nil
}

// Move translates every movable descendant. If one fails, the children
// already moved are moved back.
func (f *Folder) Move(dLat, dLon float64) error {
	var moved []Movable
	for _, child := range f.Children() {
		m, ok := child.(Movable)
		if !ok {
			continue
		}
		if err := m.Move(dLat, dLon); err != nil {
			for i := len(moved) - 1; i >= 0; i-- {
				_ = moved[i].Move(-dLat, -dLon)
			}
			return err
		}
		moved = append(moved, m)
	}
	return nil
}
