package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"only commas", " , ,, ", nil},
		{"single", "Москва", []string{"Москва"}},
		{"trim and order", " Казань , Москва,,Сочи ", []string{"Казань", "Москва", "Сочи"}},
		{"keeps duplicates", "a,a", []string{"a", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("city", "Moscow, Kazan")
	v.Add("segment", "HoReCa")
	v.Add("segment", "Бизнес")
	v.Set("group", "")
	v.Set("search", "  studio ")
	v.Set("ordering", "full_name")
	v.Set("limit", "10")

	p := FromValues(v)

	assert.Equal(t, []string{"Moscow", "Kazan"}, p.Facets["city"])
	assert.Equal(t, []string{"HoReCa", "Бизнес"}, p.Facets["segment"])
	assert.NotContains(t, p.Facets, "group")
	assert.NotContains(t, p.Facets, "limit")
	assert.NotContains(t, p.Facets, "search")
	assert.Equal(t, "studio", p.Search)
	assert.Equal(t, "full_name", p.Ordering)
}

func TestParams_Without(t *testing.T) {
	p := Params{Facets: map[string][]string{"city": {"a"}, "group": {"design"}}, Search: "x"}
	out := p.Without("city")

	assert.NotContains(t, out.Facets, "city")
	assert.Equal(t, []string{"design"}, out.Facets["group"])
	assert.Equal(t, "x", out.Search)
	assert.Contains(t, p.Facets, "city", "receiver must stay intact")
}
