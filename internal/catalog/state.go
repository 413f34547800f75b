package catalog

// ViewState is the screen the catalog is showing. Exactly one is active.
type ViewState int

const (
	Loading ViewState = iota
	Content
	Error
)

func (s ViewState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Content:
		return "content"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}
