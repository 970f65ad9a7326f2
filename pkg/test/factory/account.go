package factory

import (
	fab "github.com/Goldziher/fabricator"
)

// NewAccount builds a T with random field values; customData overrides any field.
func NewAccount[T any](customData ...map[string]any) T {
	return fab.New(*new(T)).Build(merge(customData))
}

// merge folds the override maps into one; later maps win.
func merge(customData []map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, data := range customData {
		for key, value := range data {
			merged[key] = value
		}
	}

	return merged
}
