package models

import (
	"strings"

	"golang.org/x/exp/slices"
)

// CategoryOthers is the sentinel category. Choosing it means that the user
// wants to enter a custom category instead.
const CategoryOthers = "Others"

// DefaultCategories are the categories every registry starts with.
var DefaultCategories = []string{"Food", "Transport", "Leisure", "Bills", CategoryOthers}

// CategoryRegistry is an ordered set of category labels. The sentinel
// CategoryOthers is always the last entry.
type CategoryRegistry struct {
	labels []string
}

func NewCategoryRegistry() *CategoryRegistry {
	return &CategoryRegistry{
		labels: slices.Clone(DefaultCategories),
	}
}

// AddCustom inserts a label right before CategoryOthers. Blank labels and
// labels that are already registered are ignored. It reports whether the
// label was added.
func (r *CategoryRegistry) AddCustom(label string) bool {
	label = strings.TrimSpace(label)
	if label == "" || r.Contains(label) {
		return false
	}

	r.labels = slices.Insert(r.labels, len(r.labels)-1, label)
	return true
}

// Resolve returns the category to book a transaction on.
//
// If the selected category is CategoryOthers, the custom label is the
// category and isCustom is true. The caller is expected to register it
// with AddCustom once it has been used.
func (r *CategoryRegistry) Resolve(selected, custom string) (category string, isCustom bool, err error) {
	selected = strings.TrimSpace(selected)
	if selected != CategoryOthers {
		return selected, false, nil
	}

	custom = strings.TrimSpace(custom)
	if custom == "" {
		return "", false, ErrCategoryEmpty
	}

	if custom == CategoryOthers {
		return "", false, ErrCategoryReserved
	}

	return custom, true, nil
}

func (r *CategoryRegistry) Contains(label string) bool {
	return slices.Contains(r.labels, label)
}

// List returns all labels in order, ending with CategoryOthers.
func (r *CategoryRegistry) List() []string {
	return slices.Clone(r.labels)
}

// Custom returns the labels that are not part of DefaultCategories.
func (r *CategoryRegistry) Custom() []string {
	custom := make([]string, 0, len(r.labels)-len(DefaultCategories))
	for _, l := range r.labels {
		if !slices.Contains(DefaultCategories, l) {
			custom = append(custom, l)
		}
	}

	return custom
}
