package bot

import (
	"errors"

	errs "github.com/abc123denny/cryptocurrency-app/internal/errors"
	"github.com/abc123denny/cryptocurrency-app/internal/service/coinlist"
)

func translateError(err error) string {
	switch {
	case errors.Is(err, coinlist.ErrInvalidParams):
		return "Некорректные параметры списка"
	case errors.Is(err, errs.ErrCoinNotFound):
		return "Монета не найдена"
	case errors.Is(err, errs.ErrScreenNotFound):
		return "Список не открыт, отправьте /start"
	default:
		return "Внутренняя ошибка сервиса, попробуйте позже"
	}
}
