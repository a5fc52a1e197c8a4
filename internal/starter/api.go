package starter

import (
	"context"

	"paylink.io/paylink-social/internal/config"
)

type Startable interface {
	Start(ctx context.Context)
}

type Configurable interface {
	Apply(*config.Configuration)
}

func Start(ctx context.Context, elems ...Startable) {
	for _, ele := range elems {
		if configurable, ok := ele.(Configurable); ok {
			configurable.Apply(config.Global)
		}
		ele.Start(ctx)
		if stopable, ok := ele.(Stopable); ok {
			stopables = append(stopables, stopable)
		}
	}
}

type Stopable interface {
	Stop()
}

var stopables []Stopable

// Stop stops started elements in reverse start order.
func Stop() {
	for i := len(stopables) - 1; i >= 0; i-- {
		stopables[i].Stop()
	}
	stopables = nil
}
