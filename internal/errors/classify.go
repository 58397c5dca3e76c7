package errors

import (
	stderrors "errors"

	"github.com/wayfind-dev/wayfind/pkg/deeplink"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Classify maps an error from the router or link layers onto its coded
// form for terminal display. Already-coded errors pass through; errors
// outside the taxonomy come back without a code.
func Classify(err error) *WayfindError {
	if err == nil {
		return nil
	}
	var we *WayfindError
	if stderrors.As(err, &we) {
		return we
	}

	var missing *router.MissingParamError
	var mismatch *router.ParamTypeMismatchError
	switch {
	case stderrors.Is(err, router.ErrDuplicateRouteID):
		return New("W001").Wrap(err)
	case stderrors.Is(err, router.ErrAmbiguousPattern):
		return New("W002").Wrap(err)
	case stderrors.Is(err, router.ErrInvalidPattern):
		return New("W003").Wrap(err)
	case stderrors.Is(err, router.ErrSchemaMismatch):
		return New("W004").Wrap(err)
	case stderrors.Is(err, router.ErrRegistryFrozen):
		return New("W005").Wrap(err)
	case stderrors.Is(err, router.ErrMalformedPath):
		return New("W020").Wrap(err)
	case stderrors.Is(err, router.ErrNotFound):
		return New("W021").Wrap(err)
	case stderrors.As(err, &missing):
		return New("W022").Wrap(err).
			WithSuggestion("provide a value for :" + missing.Param + " or make the param optional")
	case stderrors.As(err, &mismatch):
		return New("W023").Wrap(err).
			WithSuggestion("expected " + mismatch.Expected + " for :" + mismatch.Param)
	case stderrors.Is(err, deeplink.ErrSchemeNotAllowed),
		stderrors.Is(err, deeplink.ErrDomainNotAllowed):
		return New("W040").Wrap(err)
	default:
		return &WayfindError{Message: err.Error(), Wrapped: err}
	}
}
