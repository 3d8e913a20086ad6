package economy

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Keys of the persisted documents.
const (
	KeyCoins        = "mathMastersCoins"
	KeyGamification = "mathMastersGamification"
	KeySettings     = "mathMastersSettings"
	KeyEconomySim   = "mathMastersEconomySim_v2"
)

// Blobs is the key-value store a profile persists to. Get reports a missing
// key with ErrNotFound or an error that has a NotFound() bool method
// returning true.
type Blobs interface {
	Get(key string) (string, error)
	Put(key, value string) error
}

// Profile is one player's economy: wallet, progression, simulator and settings.
// It satisfies the reward sink games report to. Safe for concurrent use.
type Profile struct {
	Name   string
	Wallet *Wallet

	mu       sync.Mutex
	progress *Progress
	sim      *Sim
	settings Settings
	blobs    Blobs
	logger   *log.Logger
}

type gamificationDoc struct {
	Level       int          `json:"level"`
	CurrentXP   int          `json:"currentXP"`
	AvatarStats *AvatarStats `json:"avatarStats"`
	Missions    []Mission    `json:"missions"`
	Badges      []Badge      `json:"badges"`
	LevelCurve  []int        `json:"levelCurve"`
}

type simDoc struct {
	Txs   []Transaction `json:"txs"`
	Cards []Card        `json:"cards"`
}

// LoadProfile reads a profile from blobs. Missing or malformed documents fall
// back to defaults and are logged at debug level. Any other read error is
// returned so a later Save cannot overwrite data that failed to load.
func LoadProfile(name string, blobs Blobs, logger *log.Logger) (*Profile, error) {
	if logger == nil {
		logger = log.Default()
	}
	wallet := NewWallet(0)
	p := &Profile{
		Name:     name,
		Wallet:   wallet,
		progress: NewProgress(wallet),
		sim:      NewSim(rand.New(rand.NewSource(time.Now().UnixNano()))),
		settings: DefaultSettings(),
		blobs:    blobs,
		logger:   logger.With("profile", name),
	}
	if blobs == nil {
		return p, nil
	}

	docs := make(map[string]string, 4)
	for _, key := range []string{KeyCoins, KeyGamification, KeySettings, KeyEconomySim} {
		raw, ok, err := p.read(key)
		if err != nil {
			return nil, err
		}
		if ok {
			docs[key] = raw
		}
	}

	if raw, ok := docs[KeyCoins]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			wallet.set(n)
		} else {
			p.logger.Debug("ignoring malformed coins", "err", err)
		}
	}

	if raw, ok := docs[KeyGamification]; ok {
		var doc gamificationDoc
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			p.logger.Debug("ignoring malformed gamification data", "err", err)
		} else {
			p.applyGamification(doc)
		}
	}

	if raw, ok := docs[KeySettings]; ok {
		var s Settings
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			p.logger.Debug("ignoring malformed settings", "err", err)
		} else if s.DefaultTime > 0 {
			p.settings.DefaultTime = s.DefaultTime
		}
	}

	if raw, ok := docs[KeyEconomySim]; ok {
		var doc simDoc
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			p.logger.Debug("ignoring malformed economy simulation data", "err", err)
		} else {
			p.sim.Transactions = doc.Txs
			p.sim.Cards = doc.Cards
		}
	}

	return p, nil
}

func (p *Profile) read(key string) (string, bool, error) {
	raw, err := p.blobs.Get(key)
	switch {
	case err == nil:
		return raw, true, nil
	case isNotFound(err):
		p.logger.Debug("no stored value", "key", key)
		return "", false, nil
	default:
		return "", false, fmt.Errorf("economy: load %s for %s: %w", key, p.Name, err)
	}
}

func isNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var nf interface{ NotFound() bool }
	return errors.As(err, &nf) && nf.NotFound()
}

// Each field falls back to its default on its own.
func (p *Profile) applyGamification(doc gamificationDoc) {
	pr := p.progress
	if doc.Level > 0 {
		pr.Level = doc.Level
	}
	if doc.CurrentXP > 0 {
		pr.XP = doc.CurrentXP
	}
	if doc.AvatarStats != nil {
		pr.Avatar = *doc.AvatarStats
	}
	if doc.Missions != nil {
		pr.Missions = doc.Missions
	}
	if doc.Badges != nil {
		pr.Badges = doc.Badges
	}
	if doc.LevelCurve != nil {
		pr.LevelCurve = doc.LevelCurve
	}
}

// Save writes every document back to the store.
func (p *Profile) Save() error {
	if p.blobs == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	pr := p.progress
	gam, err := json.Marshal(gamificationDoc{
		Level:       pr.Level,
		CurrentXP:   pr.XP,
		AvatarStats: &pr.Avatar,
		Missions:    nonNil(pr.Missions),
		Badges:      nonNil(pr.Badges),
		LevelCurve:  nonNil(pr.LevelCurve),
	})
	if err != nil {
		return fmt.Errorf("economy: encode gamification: %w", err)
	}
	settings, err := json.Marshal(p.settings)
	if err != nil {
		return fmt.Errorf("economy: encode settings: %w", err)
	}
	sim, err := json.Marshal(simDoc{Txs: nonNil(p.sim.Transactions), Cards: nonNil(p.sim.Cards)})
	if err != nil {
		return fmt.Errorf("economy: encode simulation: %w", err)
	}

	return errors.Join(
		p.blobs.Put(KeyCoins, strconv.Itoa(p.Wallet.Balance())),
		p.blobs.Put(KeyGamification, string(gam)),
		p.blobs.Put(KeySettings, string(settings)),
		p.blobs.Put(KeyEconomySim, string(sim)),
	)
}

// AddCoins credits the wallet.
func (p *Profile) AddCoins(n int) {
	p.Wallet.AddCoins(n)
}

// AddXP adds experience, applying level-ups.
func (p *Profile) AddXP(n int) {
	p.mu.Lock()
	gained := p.progress.AddXP(n)
	p.mu.Unlock()
	if gained > 0 {
		p.logger.Info("level up", "levels", gained)
	}
}

// Progress runs fn with exclusive access to the progression state.
func (p *Profile) Progress(fn func(*Progress)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.progress)
}

// Sim runs fn with exclusive access to the economy simulator.
func (p *Profile) Sim(fn func(*Sim) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(p.sim)
}

// Settings returns a copy of the user settings.
func (p *Profile) Settings() Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// SetDefaultTime changes the default session length in seconds.
func (p *Profile) SetDefaultTime(seconds int) error {
	if seconds <= 0 {
		return ErrInvalidAmount
	}
	p.mu.Lock()
	p.settings.DefaultTime = seconds
	p.mu.Unlock()
	return nil
}

// Summary is a point-in-time view for status bars.
type Summary struct {
	Coins int
	Level int
	XP    int
	MaxXP int
}

// Summary returns the current coin balance and level.
func (p *Profile) Summary() Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Summary{
		Coins: p.Wallet.Balance(),
		Level: p.progress.Level,
		XP:    p.progress.XP,
		MaxXP: p.progress.MaxXP(),
	}
}

// Profiles caches loaded profiles so concurrent sessions of the same player
// share one wallet.
type Profiles struct {
	mu     sync.Mutex
	open   func(name string) Blobs
	logger *log.Logger
	loaded map[string]*Profile
}

// NewProfiles creates a cache that opens stores with open.
func NewProfiles(open func(name string) Blobs, logger *log.Logger) *Profiles {
	return &Profiles{open: open, logger: logger, loaded: make(map[string]*Profile)}
}

// Get returns the named profile, loading it on first use. A profile that
// failed to load is not cached, so the next call retries.
func (ps *Profiles) Get(name string) (*Profile, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if p, ok := ps.loaded[name]; ok {
		return p, nil
	}
	var blobs Blobs
	if ps.open != nil {
		blobs = ps.open(name)
	}
	p, err := LoadProfile(name, blobs, ps.logger)
	if err != nil {
		return nil, err
	}
	ps.loaded[name] = p
	return p, nil
}
