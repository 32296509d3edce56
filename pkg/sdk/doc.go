// Package facetdex embeds the questionnaire directory engine in a Go program.
//
// The client lists questionnaires of the four directory types (designer, repair,
// supplier, media) with the same facet semantics as the HTTP API: comma-separated
// values are resolved from labels or keys, the not_important sentinel disables a facet,
// federal districts expand to their cities, and unknown values pass through as literals.
//
//	client, _ := facetdex.New(ctx, facetdex.WithMemory())
//	q := client.Questionnaires(facetdex.Designer)
//	_, _ = q.Upsert(ctx, "d1", facetdex.Input{
//	    Scalars:   map[string]string{"full_name": "Анна", "city": "Москва"},
//	    Lists:     map[string][]string{"segments": {"HoReCa"}},
//	    Moderated: facetdex.Bool(true),
//	})
//	page, _ := q.List(ctx, facetdex.ListOptions{
//	    Filters: map[string]string{"city": "Москва", "segment": "HoReCa,Бизнес"},
//	})
//	catalog, _ := q.Choices(ctx, nil)
package facetdex
