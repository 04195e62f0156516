package normalization

import "fmt"

// EnumNormalizer is a Normalizer that names its enum in error messages.
type EnumNormalizer[T comparable] struct {
	normalizer *Normalizer[T]
	enumName   string
}

// NewEnumNormalizer creates an enum normalizer.
func NewEnumNormalizer[T comparable](enumName string, values map[string]T, defaultValue T) *EnumNormalizer[T] {
	return &EnumNormalizer[T]{
		normalizer: NewNormalizer(values, defaultValue),
		enumName:   enumName,
	}
}

// Normalize converts raw to the enum value, returning the default on unknown input.
func (e *EnumNormalizer[T]) Normalize(raw string) T {
	return e.normalizer.Normalize(raw)
}

// IsKnown reports whether raw names one of the enum values.
func (e *EnumNormalizer[T]) IsKnown(raw string) bool {
	_, ok := e.normalizer.Lookup(raw)
	return ok
}

// NormalizeWithValidation converts raw or returns an error naming the enum.
func (e *EnumNormalizer[T]) NormalizeWithValidation(raw string) (T, error) {
	v, err := e.normalizer.NormalizeWithError(raw)
	if err != nil {
		return v, fmt.Errorf("invalid %s: %w", e.enumName, err)
	}
	return v, nil
}

// ValidValues returns the accepted spellings for help output.
func (e *EnumNormalizer[T]) ValidValues() []string {
	return e.normalizer.ValidKeys()
}
