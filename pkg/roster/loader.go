package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/acts/pkg/command"
	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/metrics"
	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
)

// LoadResult counts what a load did. In a dry run PeopleCreated and
// DutiesAssigned count the entries that passed validation and would be
// sent; nothing is looked up, so Skipped stays zero.
type LoadResult struct {
	PeopleCreated  int
	DutiesAssigned int
	// Skipped counts people already present and duties the person already
	// holds.
	Skipped int
	// Failed counts entries rejected by a command. Their errors are joined
	// into the error returned by Load.
	Failed int
}

// Loader applies rosters through a mediator
type Loader struct {
	m      *mediator.Mediator
	log    zerolog.Logger
	dryRun bool
}

// NewLoader creates a roster loader dispatching to m
func NewLoader(m *mediator.Mediator, log zerolog.Logger) *Loader {
	return &Loader{m: m, log: log}
}

// WithDryRun sets whether to parse and check the roster without applying it
func (l *Loader) WithDryRun(dryRun bool) *Loader {
	l.dryRun = dryRun
	return l
}

// DryRun reports whether the loader only validates
func (l *Loader) DryRun() bool {
	return l.dryRun
}

// LoadFromReader parses and loads a roster from an io.Reader
func (l *Loader) LoadFromReader(ctx context.Context, r io.Reader) (*LoadResult, error) {
	roster, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	return l.Load(ctx, roster)
}

// Load creates every person that does not exist yet, then assigns their
// duties oldest first. Entries already present are skipped. A failing entry
// does not stop the load; a failing person skips that person's duties.
// In a dry run every command is validated but none is applied.
func (l *Loader) Load(ctx context.Context, roster *Roster) (*LoadResult, error) {
	result := &LoadResult{}

	var errs []error
	for _, p := range roster.People {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		name := strings.TrimSpace(p.Name)
		err := l.createPerson(ctx, command.CreatePerson{Name: name})
		switch {
		case err == nil:
			result.PeopleCreated++
			l.count("created")
		case errors.Is(err, store.ErrPersonExists):
			result.Skipped++
			l.count("skipped")
		default:
			result.Failed++
			l.count("failed")
			errs = append(errs, fmt.Errorf("person %q: %w", name, err))
			continue
		}

		for _, d := range p.sortedDuties() {
			err := l.assignDuty(ctx, command.CreateAstronautDuty{
				Name:          name,
				Rank:          d.Rank,
				DutyTitle:     d.Title,
				DutyStartDate: d.Start.Time,
			})
			switch {
			case err == nil:
				result.DutiesAssigned++
				l.count("assigned")
			case errors.Is(err, store.ErrDutyExists):
				result.Skipped++
				l.count("skipped")
			default:
				// ErrDutyTaken lands here: the pair belongs to someone else.
				result.Failed++
				l.count("failed")
				errs = append(errs, fmt.Errorf("person %q duty %s on %s: %w", name, d.Title, d.Start.Format(model.DateLayout), err))
			}
		}
	}

	l.log.Info().
		Bool("dry_run", l.dryRun).
		Int("people_created", result.PeopleCreated).
		Int("duties_assigned", result.DutiesAssigned).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("roster loaded")

	return result, errors.Join(errs...)
}

func (l *Loader) createPerson(ctx context.Context, c command.CreatePerson) error {
	if l.dryRun {
		return mediator.Validate(ctx, l.m, c)
	}
	_, err := mediator.Send[command.CreatePerson, int64](ctx, l.m, c)
	return err
}

func (l *Loader) assignDuty(ctx context.Context, c command.CreateAstronautDuty) error {
	if l.dryRun {
		return mediator.Validate(ctx, l.m, c)
	}
	_, err := mediator.Send[command.CreateAstronautDuty, int64](ctx, l.m, c)
	return err
}

func (l *Loader) count(result string) {
	if l.dryRun {
		return
	}
	metrics.RosterEntriesTotal.WithLabelValues(result).Inc()
}
