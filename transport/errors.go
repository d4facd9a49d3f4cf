package transport

import (
	goerrors "github.com/goliatone/go-errors"
)

func transportError(message string, category goerrors.Category) error {
	return goerrors.New(message, category)
}

func transportWrapError(source error, category goerrors.Category, message string) error {
	if source == nil {
		return transportError(message, category)
	}
	return goerrors.Wrap(source, category, message)
}
