// Package resource shapes models into API payloads.
//
//	func tagResource(t models.Tag) resource.Map {
//	    return resource.Map{"id": t.ID, "name": t.Name}
//	}
//
//	response.Success(w, resource.Collection(tags, tagResource))
package resource

// Map is the JSON object produced by a transformer.
type Map = map[string]interface{}

// Transformer turns one model into its public shape.
type Transformer[T any] func(T) Map

// Item applies fn to v.
func Item[T any](v T, fn Transformer[T]) Map {
	return fn(v)
}

// Collection applies fn to every item. The result is never nil, so an empty
// list encodes as [] rather than null.
func Collection[T any](items []T, fn Transformer[T]) []Map {
	out := make([]Map, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

