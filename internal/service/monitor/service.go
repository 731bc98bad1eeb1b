// Package monitor wires GPIO sampling, temporal conditioning and MQTT
// publishing into the signal-monitor service.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/signal-hold/internal/config"
	"github.com/oshokin/signal-hold/internal/logger"
	"github.com/oshokin/signal-hold/internal/repository/state"
	"github.com/oshokin/signal-hold/internal/sink/mqtt"
	"github.com/oshokin/signal-hold/internal/source/gpio"
	"github.com/oshokin/signal-hold/signal"
)

// Service samples configured GPIO inputs, runs each one through its
// conditioning pipeline and reports the derived transitions.
type Service struct {
	cfg       *config.Config
	reader    gpio.Reader
	publisher mqtt.Publisher
	scheduler signal.Scheduler

	subjects []*signal.Subject
	subs     []signal.Subscription

	// repo, when set, receives a snapshot of the conditioned states
	// after every transition.
	repo state.Repository

	mu       sync.Mutex
	snapshot map[string]state.InputState
}

// NewService creates the service. The publisher may be nil, in which case
// transitions are only logged.
func NewService(cfg *config.Config, reader gpio.Reader, publisher mqtt.Publisher, scheduler signal.Scheduler) *Service {
	s := &Service{
		cfg:       cfg,
		reader:    reader,
		publisher: publisher,
		scheduler: scheduler,
		snapshot:  make(map[string]state.InputState),
	}

	for range cfg.Inputs {
		s.subjects = append(s.subjects, signal.NewSubject())
	}

	return s
}

// Pipeline builds the conditioning chain for one input:
// confirmation, trailing hold, minimum on-time, maximum on-time.
// Stages with a non-positive duration pass the signal through unchanged.
func Pipeline(source signal.Signal, in config.Input, scheduler signal.Scheduler) signal.Signal {
	var opts []signal.Option
	if in.ResetOnRepeat {
		opts = append(opts, signal.WithResetOnRepeat())
	}

	out := signal.WhenTrueFor(source, in.ConfirmFor, scheduler, opts...)
	out = signal.PersistTrueFor(out, in.HoldFor, scheduler, opts...)
	out = signal.TrueForAtLeast(out, in.MinOn, scheduler, opts...)
	out = signal.LimitTrueDuration(out, in.MaxOn, scheduler, opts...)

	return out
}

// SetRepository makes the service persist a snapshot of the conditioned
// states after every transition. Must be called before Start.
func (s *Service) SetRepository(repo state.Repository) {
	s.repo = repo
}

// Start subscribes the conditioning pipelines.
// Transitions are logged and, when a publisher is configured, published.
func (s *Service) Start(ctx context.Context) {
	for i, in := range s.cfg.Inputs {
		name := in.Name
		conditioned := Pipeline(s.subjects[i], in, s.scheduler)

		sub := conditioned.Subscribe(signal.Observer{
			Next: func(v bool) {
				s.handleTransition(ctx, name, v)
			},
			Error: func(err error) {
				logger.ErrorKV(ctx, "Input pipeline failed", "input", name, "error", err)
			},
		})

		s.subs = append(s.subs, sub)
	}
}

// Sample feeds one set of raw readings into the pipelines.
// Values must match the configured inputs in count and order.
func (s *Service) Sample(values []bool) error {
	if len(values) != len(s.cfg.Inputs) {
		return fmt.Errorf("expected %d values, got %d", len(s.cfg.Inputs), len(values))
	}

	for i, in := range s.cfg.Inputs {
		v := values[i]
		if in.Invert {
			v = !v
		}

		s.subjects[i].Next(v)
	}

	return nil
}

// Run samples the reader at the configured interval until the context
// is canceled. Read errors are logged and the loop keeps going.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			values, err := s.reader.Read()
			if err != nil {
				logger.ErrorKV(ctx, "GPIO read failed", "error", err)

				continue
			}

			if err := s.Sample(values); err != nil {
				return err
			}
		}
	}
}

// Close completes the pipelines and releases the reader and publisher.
func (s *Service) Close() error {
	for _, subject := range s.subjects {
		subject.Complete()
	}

	for _, sub := range s.subs {
		sub.Unsubscribe()
	}

	var errs []error

	if s.reader != nil {
		if err := s.reader.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}

	return nil
}

func (s *Service) handleTransition(ctx context.Context, name string, value bool) {
	now := s.scheduler.Now()

	logger.InfoKV(ctx, "Input transition", "input", name, "state", value)

	s.persist(ctx, name, value, now)

	if s.publisher == nil {
		return
	}

	event := mqtt.Event{
		Timestamp: now,
		Input:     name,
		State:     value,
	}

	if err := s.publisher.Publish(event); err != nil {
		logger.ErrorKV(ctx, "Publish failed", "input", name, "error", err)
	}
}

func (s *Service) persist(ctx context.Context, name string, value bool, now time.Time) {
	if s.repo == nil {
		return
	}

	s.mu.Lock()
	s.snapshot[name] = state.InputState{State: value, Since: now}

	snapshot := &state.Snapshot{
		Timestamp: now,
		Inputs:    make(map[string]state.InputState, len(s.snapshot)),
	}
	for k, v := range s.snapshot {
		snapshot.Inputs[k] = v
	}
	s.mu.Unlock()

	if err := s.repo.Save(ctx, snapshot); err != nil {
		logger.ErrorKV(ctx, "Save snapshot failed", "input", name, "error", err)
	}
}
