package kvstate

import (
	"context"
	"strconv"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/dinkanimations/squadbets/internal/domain/accumulator"
	"github.com/dinkanimations/squadbets/internal/domain/kickerbet"
	"github.com/dinkanimations/squadbets/internal/domain/odds"
	"github.com/dinkanimations/squadbets/internal/domain/pick"
	"github.com/dinkanimations/squadbets/internal/domain/result"
	"github.com/dinkanimations/squadbets/internal/domain/season"
	"github.com/dinkanimations/squadbets/internal/platform/logging"
)

const defaultWorkers = 4

type Config struct {
	// Workers bounds concurrent store calls during load, save and reset.
	Workers int
	// Location is the clock the late window is evaluated in.
	Location *time.Location
}

// Repository maps the season aggregate onto the flat key set of a season.Store.
type Repository struct {
	store    season.Store
	workers  int
	location *time.Location
	validate *validator.Validate
	logger   *logging.Logger
}

func NewRepository(store season.Store, cfg Config, logger *logging.Logger) *Repository {
	if cfg.Workers < 1 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Repository{
		store:    store,
		workers:  cfg.Workers,
		location: cfg.Location,
		validate: validator.New(),
		logger:   logger,
	}
}

// Load reads every key and assembles a snapshot. Legacy accumulator types are
// migrated and lateness is recomputed on every load.
func (r *Repository) Load(ctx context.Context) (season.State, error) {
	raw, err := r.fetch(ctx, season.Keys)
	if err != nil {
		return season.State{}, err
	}

	d := decoder{ctx: ctx, validate: r.validate, logger: r.logger}
	isLate := func(at time.Time) bool { return pick.IsLate(at, r.location) }

	state := season.New()
	state.CurrentWeek = decodeWeek(d, raw[season.KeyCurrentWeek])
	state.Settings = decodeObject(d, season.KeySeasonSettings, raw[season.KeySeasonSettings], season.Settings{})
	state.Settings.LockedPlayers = nonNil(state.Settings.LockedPlayers)
	state.PickOdds = odds.Table(decodeList[odds.PlayerPickOdds](d, season.KeyPlayerPickOdds, raw[season.KeyPlayerPickOdds], nil))
	state.TeamResults = result.Book(decodeList[result.TeamResult](d, season.KeyTeamResults, raw[season.KeyTeamResults], nil))
	state.Picks = pick.Ledger(decodeList[pick.TeamPick](d, season.KeyPlayerPicks, raw[season.KeyPlayerPicks], nil)).
		RecomputeLateness(r.location)
	state.Accumulators = decodeList(d, season.KeyAccumulatorBets, raw[season.KeyAccumulatorBets], func(b *accumulator.Bet) {
		b.Type = accumulator.MigrateType(b.Type)
	})
	state.KickerBets = kickerbet.Bets(decodeList[kickerbet.KickerBet](d, season.KeyKickerBets, raw[season.KeyKickerBets], nil)).
		RecomputeLateness(isLate)
	state.KickerOdds = kickerbet.OddsTable(decodeList[kickerbet.Odds](d, season.KeyKickerBetOdds, raw[season.KeyKickerBetOdds], nil))
	state.KickerResults = kickerbet.Results(decodeList[kickerbet.Result](d, season.KeyKickerBetResults, raw[season.KeyKickerBetResults], nil))
	state.WeeklyWinners = decodeList[season.WeeklyWinner](d, season.KeyWeeklyWinners, raw[season.KeyWeeklyWinners], nil)
	state.OddsLocks = decodeList[season.OddsLockState](d, season.KeyOddsLockStates, raw[season.KeyOddsLockStates], nil)
	state.TotalPot = decodeObject(d, season.KeyTotalPotData, raw[season.KeyTotalPotData], season.TotalPot{})
	state.LegacyGameOdds = decodeList[season.GameOdds](d, season.KeyGameOdds, raw[season.KeyGameOdds], nil)
	state.LegacyGameResults = decodeList[season.GameResult](d, season.KeyGameResults, raw[season.KeyGameResults], nil)

	return state, nil
}

// Save writes the given keys, or every key when none are named. Keys already
// written stay written when a later one fails.
func (r *Repository) Save(ctx context.Context, state season.State, keys ...string) error {
	if len(keys) == 0 {
		keys = season.Keys
	}

	values := make(map[string]string, len(keys))
	for _, key := range keys {
		value, err := encodeKey(state, key)
		if err != nil {
			return crerr.Wrapf(err, "encode key %s", key)
		}
		values[key] = value
	}

	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(r.workers)
	for key, value := range values {
		key, value := key, value
		p.Go(func(ctx context.Context) error {
			if err := r.store.Set(ctx, key, value); err != nil {
				return crerr.Wrapf(err, "set key %s", key)
			}
			return nil
		})
	}
	return p.Wait()
}

// Reset removes every key and starts the season over at week 1.
func (r *Repository) Reset(ctx context.Context) error {
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(r.workers)
	for _, key := range season.Keys {
		key := key
		p.Go(func(ctx context.Context) error {
			if err := r.store.Remove(ctx, key); err != nil {
				return crerr.Wrapf(err, "remove key %s", key)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	if err := r.store.Set(ctx, season.KeyCurrentWeek, "1"); err != nil {
		return crerr.Wrap(err, "set current week")
	}
	return nil
}

func (r *Repository) fetch(ctx context.Context, keys []string) (map[string]string, error) {
	workers, err := ants.NewPool(r.workers)
	if err != nil {
		return nil, crerr.Wrap(err, "create load pool")
	}
	defer workers.Release()

	values := make([]string, len(keys))
	errs := make([]error, len(keys))

	var wg sync.WaitGroup
	for idx, key := range keys {
		idx, key := idx, key
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			value, _, err := r.store.Get(ctx, key)
			values[idx] = value
			errs[idx] = err
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, crerr.Wrap(err, "submit load task")
		}
	}
	wg.Wait()

	out := make(map[string]string, len(keys))
	for idx, key := range keys {
		if errs[idx] != nil {
			return nil, crerr.Wrapf(errs[idx], "get key %s", key)
		}
		out[key] = values[idx]
	}
	return out, nil
}

func encodeKey(state season.State, key string) (string, error) {
	switch key {
	case season.KeyCurrentWeek:
		week := state.CurrentWeek
		if week < 1 {
			week = 1
		}
		return strconv.Itoa(week), nil
	case season.KeyGameOdds:
		return encode(nonNil(state.LegacyGameOdds))
	case season.KeyPlayerPickOdds:
		return encode(nonNil(state.PickOdds))
	case season.KeyGameResults:
		return encode(nonNil(state.LegacyGameResults))
	case season.KeyTeamResults:
		return encode(nonNil(state.TeamResults))
	case season.KeyPlayerPicks:
		return encode(nonNil(state.Picks))
	case season.KeyAccumulatorBets:
		return encode(nonNil(state.Accumulators))
	case season.KeyTotalPotData:
		return encode(state.TotalPot)
	case season.KeySeasonSettings:
		settings := state.Settings
		settings.LockedPlayers = nonNil(settings.LockedPlayers)
		return encode(settings)
	case season.KeyKickerBets:
		return encode(nonNil(state.KickerBets))
	case season.KeyKickerBetOdds:
		return encode(nonNil(state.KickerOdds))
	case season.KeyKickerBetResults:
		return encode(nonNil(state.KickerResults))
	case season.KeyWeeklyWinners:
		return encode(nonNil(state.WeeklyWinners))
	case season.KeyOddsLockStates:
		return encode(nonNil(state.OddsLocks))
	default:
		return "", crerr.Newf("unknown key %q", key)
	}
}
