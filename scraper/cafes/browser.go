package cafes

import "context"

// Browser is the slice of a browser automation session the collector needs.
// Element ids are plain ids, without a leading '#'.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	WaitPresent(ctx context.Context, id string) error
	ScrollToBottom(ctx context.Context) error
	ScrollIntoView(ctx context.Context, id string) error
	Click(ctx context.Context, id string) error
	HTML(ctx context.Context) (string, error)
	Close()
}
