package httptransport

import (
	"errors"

	errs "github.com/abc123denny/cryptocurrency-app/internal/errors"
	"github.com/abc123denny/cryptocurrency-app/internal/ports/errcode"
	"github.com/abc123denny/cryptocurrency-app/internal/service/coinlist"
)

func FromServiceError(err error) errcode.Code {
	switch {
	case errors.Is(err, errs.ErrScreenNotFound):
		return errcode.ScreenNotFound
	case errors.Is(err, errs.ErrCoinNotFound):
		return errcode.CoinNotFound
	case errors.Is(err, coinlist.ErrInvalidParams):
		return errcode.BadRequest
	default:
		return errcode.Internal
	}
}
