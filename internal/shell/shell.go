package shell

import (
	"context"
	"errors"
)

// ErrStop is returned by a handler to end the session cleanly.
var ErrStop = errors.New("stop")

// Shell delivers user input lines to a handler one at a time and shows
// messages back to the user.
type Shell interface {
	Start(ctx context.Context, handler func(context.Context, string) error) error
	SendText(ctx context.Context, text string) error
}
