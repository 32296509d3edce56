package choices

import (
	"bytes"
	"encoding/json"

	"github.com/kailas-cloud/facetdex/internal/domain/choice"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
)

// GroupsKey names the published federal district groups.
const GroupsKey = "federal_district"

// Entry is the choice list of one attribute.
type Entry struct {
	Name    string
	Choices []choice.Choice
}

// Catalog is the filter UI vocabulary of one entity type.
type Catalog struct {
	Type    entity.Type
	Entries []Entry
}

// Lookup returns the choices published under name.
func (c Catalog) Lookup(name string) ([]choice.Choice, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e.Choices, true
		}
	}
	return nil, false
}

// MarshalJSON renders the catalog as one object keyed by attribute name, in registry order.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')

		list := e.Choices
		if list == nil {
			list = []choice.Choice{}
		}
		body, err := json.Marshal(list)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
