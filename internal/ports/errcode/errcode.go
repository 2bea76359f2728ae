package errcode

type Code string

const (
	ScreenNotFound Code = "SCREEN_NOT_FOUND"
	CoinNotFound   Code = "COIN_NOT_FOUND"

	BadRequest Code = "BAD_REQUEST"
	Internal   Code = "INTERNAL_ERROR"
)
