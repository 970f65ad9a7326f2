package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
)

// NewTask builds a T with random field values. DueDate defaults to a
// whole-second UTC time a day from now; customData overrides any field.
func NewTask[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T), fab.Options[T]{
		Defaults: map[string]any{
			"DueDate": time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second),
		},
	})

	return instance.Build(merge(customData))
}
