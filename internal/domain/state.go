package domain

// Status — состояние загрузки списка
type Status int

const (
	StatusIdle Status = iota
	StatusFetchingFirstPage
	StatusFetchingNextPage
	StatusRefreshing
	StatusFullyLoaded
)

func (s Status) String() string {
	switch s {
	case StatusFetchingFirstPage:
		return "fetching_first_page"
	case StatusFetchingNextPage:
		return "fetching_next_page"
	case StatusRefreshing:
		return "refreshing"
	case StatusFullyLoaded:
		return "fully_loaded"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsFetching — идёт ли сейчас запрос (селекторы валюты/сортировки выключены)
func (s Status) IsFetching() bool {
	return s == StatusFetchingFirstPage || s == StatusFetchingNextPage || s == StatusRefreshing
}

// ListState — снимок состояния экрана списка
type ListState struct {
	Items      []CoinSummary `json:"items"`
	Status     Status        `json:"status"`
	Params     FetchParams   `json:"params"`
	Generation uint64        `json:"generation"`
}

func (s ListState) IsFetching() bool    { return s.Status.IsFetching() }
func (s ListState) IsRefreshing() bool  { return s.Status == StatusRefreshing }
func (s ListState) IsFullyLoaded() bool { return s.Status == StatusFullyLoaded }
