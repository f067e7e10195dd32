package rulepack

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"tax-engine/internal/model"
)

//go:embed packs/*.yaml
var builtin embed.FS

// DefaultStaleness is the window after a pack's verification timestamp during
// which the pack still counts as "ok".
const DefaultStaleness = 35 * 24 * time.Hour

// supportedYears is the closed set of years this engine is offered for. Any
// other year is "unsupported-year" before a load is even attempted, so
// operators can tell "not yet authored" apart from "not offered".
var supportedYears = map[int]bool{
	2023: true,
	2024: true,
}

// UnsupportedYearError marks a year outside the offered set.
type UnsupportedYearError struct {
	Year int
}

func (e *UnsupportedYearError) Error() string {
	return fmt.Sprintf("tax year %d is not offered", e.Year)
}

// PackUnavailableError is fatal to any calculation attempt: the pack for the
// year exists in the offered set but is not in the "ok" state.
type PackUnavailableError struct {
	Year  int
	State model.PackState
}

func (e *PackUnavailableError) Error() string {
	return fmt.Sprintf("rule pack for %d unavailable: %s", e.Year, e.State)
}

// Verified wraps a rule pack that passed every registry check at load time.
// It is constructible only inside this package; holding one is proof the
// freshness/validity gate ran. The calculator refuses anything else.
type Verified struct {
	pack model.RulePack
}

// Year returns the pack's tax year.
func (v *Verified) Year() int { return v.pack.Year }

// Data returns a copy of the verified constants.
func (v *Verified) Data() model.RulePack { return v.pack }

// Config tunes a Registry. Zero values fall back to defaults.
type Config struct {
	// Dir optionally overrides or supplements the built-in packs with
	// <dir>/<year>.yaml documents.
	Dir string
	// Staleness is the verification window; DefaultStaleness when zero.
	Staleness time.Duration
	// Now is injectable for tests.
	Now func() time.Time
}

// Registry loads, validates and reports year-keyed rule packs. Parsed packs
// are cached once and treated as immutable; staleness is re-judged per call
// against the configured clock.
type Registry struct {
	cfg Config
	log *zap.Logger

	mu    sync.Mutex
	cache map[int]*model.RulePack
}

// New builds a registry. A nil logger disables logging.
func New(cfg Config, log *zap.Logger) *Registry {
	if cfg.Staleness <= 0 {
		cfg.Staleness = DefaultStaleness
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{cfg: cfg, log: log, cache: make(map[int]*model.RulePack)}
}

// Load returns the verified pack for the year, or a typed error naming the
// state. No pack is ever returned in a state other than "ok".
func (r *Registry) Load(year int) (*Verified, error) {
	if !supportedYears[year] {
		return nil, &UnsupportedYearError{Year: year}
	}

	pack, state := r.lookup(year)
	if state != model.PackOK {
		r.log.Warn("rule pack unavailable",
			zap.Int("year", year),
			zap.String("state", string(state)))
		return nil, &PackUnavailableError{Year: year, State: state}
	}
	return &Verified{pack: *pack}, nil
}

// Status reports the pack state for the year without ever returning an error.
func (r *Registry) Status(year int) model.PackState {
	if !supportedYears[year] {
		return model.PackUnsupportedYear
	}
	_, state := r.lookup(year)
	return state
}

func (r *Registry) lookup(year int) (*model.RulePack, model.PackState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pack, ok := r.cache[year]
	if !ok {
		raw, err := r.readDocument(year)
		if err != nil {
			r.log.Warn("rule pack unreadable", zap.Int("year", year), zap.Error(err))
			return nil, model.PackMissing
		}
		parsed, err := ParseDocument(raw)
		if err != nil {
			r.log.Warn("rule pack rejected", zap.Int("year", year), zap.Error(err))
			return nil, model.PackInvalid
		}
		if parsed.Year != year {
			return nil, model.PackInvalid
		}
		r.cache[year] = parsed
		pack = parsed
	}

	if !pack.Valid {
		return nil, model.PackInvalid
	}
	if r.cfg.Now().Sub(pack.VerifiedAt) > r.cfg.Staleness {
		return nil, model.PackStale
	}
	return pack, model.PackOK
}

func (r *Registry) readDocument(year int) ([]byte, error) {
	name := fmt.Sprintf("%d.yaml", year)
	if r.cfg.Dir != "" {
		raw, err := os.ReadFile(filepath.Join(r.cfg.Dir, name))
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return builtin.ReadFile("packs/" + name)
}

// ParseDocument decodes and structurally validates one rule pack document.
// Violating packs never reach the calculator.
func ParseDocument(raw []byte) (*model.RulePack, error) {
	var pack model.RulePack
	if err := yaml.Unmarshal(raw, &pack); err != nil {
		return nil, fmt.Errorf("decode rule pack: %w", err)
	}
	if err := validate(&pack); err != nil {
		return nil, err
	}
	return &pack, nil
}

func validate(p *model.RulePack) error {
	if len(p.Brackets) == 0 {
		return errors.New("bracket schedule is empty")
	}
	if p.Brackets[0].FromCents != 0 {
		return errors.New("bracket schedule must start at zero")
	}
	for i, b := range p.Brackets {
		if b.RateBps < 0 || b.RateBps > 10000 {
			return fmt.Errorf("bracket %d: rate %d bps out of range", i, b.RateBps)
		}
		last := i == len(p.Brackets)-1
		if last {
			if b.ToCents != 0 {
				return errors.New("top bracket must be unbounded")
			}
			continue
		}
		if b.ToCents <= b.FromCents {
			return fmt.Errorf("bracket %d: empty or inverted range", i)
		}
		if p.Brackets[i+1].FromCents != b.ToCents {
			return fmt.Errorf("bracket %d: schedule not contiguous", i+1)
		}
	}

	sr := p.Deductions.SelfRetention
	if sr.DisabilityBps > sr.SingleParentManyBps || sr.SingleParentManyBps > sr.GeneralBps {
		return errors.New("self-retention percentages must not increase with hardship")
	}

	for _, tbl := range [][]model.CommuteStep{p.Deductions.Commute.Public, p.Deductions.Commute.Private} {
		for i := 1; i < len(tbl); i++ {
			if tbl[i].MinKm <= tbl[i-1].MinKm {
				return errors.New("commute steps must be strictly increasing")
			}
		}
	}

	return nil
}
