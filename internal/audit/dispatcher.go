package audit

import "go.uber.org/zap"

type Event struct {
	BusinessID uint
	UserID     *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

// Dispatcher decouples audit writes from request handling: events go
// through a buffered channel into a single writer goroutine, and a full
// queue drops events rather than ever blocking the API.
type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		// nil logger keeps the dispatcher usable in tests
		if d.logger == nil {
			continue
		}

		if err := d.logger.Log(
			ev.BusinessID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event",
			zap.String("action", ev.Action),
		)
	}
}
