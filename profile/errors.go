package profile

import "errors"

var (
	// ErrProfileRepositoryRequired is returned when a profile repository is not provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrFieldNotMergeable indicates a merge attempt on a field that is
	// derived from the profile itself rather than accumulated context.
	ErrFieldNotMergeable = errors.New("field does not accept merged context")

	// ErrEmptyAddition indicates there was no context text to merge.
	ErrEmptyAddition = errors.New("addition is empty")
)
