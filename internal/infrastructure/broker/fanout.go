package broker

import (
	"context"
	"errors"

	"campustix/internal/ports/output"
)

var _ output.Publisher = Fanout(nil)

// Fanout delivers each message to every publisher and joins their errors.
type Fanout []output.Publisher

func (f Fanout) Publish(ctx context.Context, topic string, message any) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, topic, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
