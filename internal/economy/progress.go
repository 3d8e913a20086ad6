package economy

import (
	"fmt"
	"slices"
	"time"
)

// NotificationTTL is how long a notification stays visible.
const NotificationTTL = 3 * time.Second

// MissionType groups missions by cadence.
type MissionType string

const (
	MissionDaily       MissionType = "daily"
	MissionWeekly      MissionType = "weekly"
	MissionAchievement MissionType = "achievement"
)

// Mission is a task that pays XP and coins once.
type Mission struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Type        MissionType `json:"type"`
	RewardXP    int         `json:"rewardXP"`
	RewardCoins int         `json:"rewardCoins"`
	IsClaimed   bool        `json:"isClaimed"`
	Target      string      `json:"target,omitempty"`
}

// BadgeTier ranks badges by rarity.
type BadgeTier string

const (
	TierCommon    BadgeTier = "common"
	TierRare      BadgeTier = "rare"
	TierEpic      BadgeTier = "epic"
	TierLegendary BadgeTier = "legendary"
	TierMythic    BadgeTier = "mythic"
)

// Badge is a collectible that unlocks once.
type Badge struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Tier       BadgeTier `json:"tier"`
	Color      string    `json:"color,omitempty"`
	Icon       string    `json:"icon"`
	IsUnlocked bool      `json:"isUnlocked"`
	Condition  string    `json:"condition"`
}

// AvatarStats are cosmetic attributes, each in 0..100.
type AvatarStats struct {
	Logic      int `json:"logic"`
	Creativity int `json:"creativity"`
	Focus      int `json:"focus"`
	Memory     int `json:"memory"`
}

// Notification is a transient message shown to the player.
type Notification struct {
	ID      int64
	Message string
	Kind    string // "success" or "info"
	At      time.Time
}

// DefaultMissions returns the missions a new profile starts with.
func DefaultMissions() []Mission {
	return []Mission{
		{ID: "m1", Title: "Complete 3 Factor Ninja Games", Type: MissionDaily, RewardXP: 50, RewardCoins: 20},
		{ID: "m2", Title: "Score 500 in Angle Defense", Type: MissionDaily, RewardXP: 100, RewardCoins: 50},
		{ID: "m3", Title: "Reach Level 5", Type: MissionAchievement, RewardXP: 500, RewardCoins: 200},
	}
}

// DefaultBadges returns the badges a new profile starts with.
func DefaultBadges() []Badge {
	return []Badge{
		{ID: "b1", Name: "Math Novice", Tier: TierCommon, Icon: "Award", IsUnlocked: true, Condition: "Start your journey"},
		{ID: "b2", Name: "Sharp Shooter", Tier: TierRare, Icon: "Crosshair", Condition: "Perfect aim in Angle Defense"},
		{ID: "b3", Name: "Logic Master", Tier: TierLegendary, Icon: "Brain", Condition: "Solve 50 Function Machines"},
	}
}

// DefaultAvatar returns the starting avatar stats.
func DefaultAvatar() AvatarStats {
	return AvatarStats{Logic: 20, Creativity: 15, Focus: 10, Memory: 25}
}

// Progress tracks level, XP, missions, badges and the level curve.
// Not safe for concurrent use; callers serialize through the owning Profile.
type Progress struct {
	Level      int
	XP         int
	Avatar     AvatarStats
	Missions   []Mission
	Badges     []Badge
	LevelCurve []int

	wallet        *Wallet
	notifications []Notification
	lastNoteID    int64
	now           func() time.Time
}

// NewProgress creates level-1 progress with the default missions and badges.
// Mission coin rewards are paid into wallet.
func NewProgress(wallet *Wallet) *Progress {
	p := &Progress{wallet: wallet, now: time.Now}
	p.resetState()
	return p
}

func (p *Progress) resetState() {
	p.Level = 1
	p.XP = 0
	p.Avatar = DefaultAvatar()
	p.Missions = DefaultMissions()
	p.Badges = DefaultBadges()
}

// RequiredXP returns the XP needed to leave the given level.
func (p *Progress) RequiredXP(level int) int {
	var req int
	if level >= 1 && len(p.LevelCurve) >= level {
		req = p.LevelCurve[level-1]
	} else {
		req = DefaultRequiredXP(level)
	}
	// A zero threshold would level up forever.
	if req < 1 {
		req = 1
	}
	return req
}

// MaxXP is the threshold for the current level.
func (p *Progress) MaxXP() int {
	return p.RequiredXP(p.Level)
}

// AddXP adds XP and applies every level-up it pays for.
// Returns the number of levels gained.
func (p *Progress) AddXP(n int) int {
	if n <= 0 {
		return 0
	}
	p.XP += n
	gained := 0
	for req := p.RequiredXP(p.Level); p.XP >= req; req = p.RequiredXP(p.Level) {
		p.XP -= req
		p.Level++
		gained++
		p.notify(fmt.Sprintf("Level Up! Welcome to Level %d", p.Level), "success")
	}
	return gained
}

// AddCoins credits the wallet; with AddXP it lets Progress serve as a reward sink.
func (p *Progress) AddCoins(n int) {
	if p.wallet != nil {
		p.wallet.AddCoins(n)
	}
}

// CompleteMission claims a mission, granting its XP and coins.
// Returns false if the mission is unknown or already claimed.
func (p *Progress) CompleteMission(id string) bool {
	i := slices.IndexFunc(p.Missions, func(m Mission) bool { return m.ID == id })
	if i < 0 || p.Missions[i].IsClaimed {
		return false
	}
	m := &p.Missions[i]
	m.IsClaimed = true
	p.notify("Mission Complete: "+m.Title, "success")
	p.AddXP(m.RewardXP)
	p.AddCoins(m.RewardCoins)
	return true
}

// UnlockBadge unlocks a badge. Returns false if unknown or already unlocked.
func (p *Progress) UnlockBadge(id string) bool {
	i := slices.IndexFunc(p.Badges, func(b Badge) bool { return b.ID == id })
	if i < 0 || p.Badges[i].IsUnlocked {
		return false
	}
	p.Badges[i].IsUnlocked = true
	p.notify("Badge Unlocked: "+p.Badges[i].Name, "success")
	return true
}

// AddMission designs a new mission and puts it at the top of the list.
func (p *Progress) AddMission(m Mission) Mission {
	m.ID = p.uniqueID("m", func(id string) bool {
		return slices.ContainsFunc(p.Missions, func(x Mission) bool { return x.ID == id })
	})
	m.IsClaimed = false
	if m.Type == "" {
		m.Type = MissionDaily
	}
	p.Missions = append([]Mission{m}, p.Missions...)
	p.notify("New Mission Created: "+m.Title, "success")
	return m
}

// DeleteMission removes a mission by id.
func (p *Progress) DeleteMission(id string) bool {
	n := len(p.Missions)
	p.Missions = slices.DeleteFunc(p.Missions, func(m Mission) bool { return m.ID == id })
	if len(p.Missions) == n {
		return false
	}
	p.notify("Mission Deleted", "info")
	return true
}

// AddBadge designs a new locked badge and puts it at the top of the list.
func (p *Progress) AddBadge(b Badge) Badge {
	b.ID = p.uniqueID("b", func(id string) bool {
		return slices.ContainsFunc(p.Badges, func(x Badge) bool { return x.ID == id })
	})
	b.IsUnlocked = false
	if b.Tier == "" {
		b.Tier = TierCommon
	}
	p.Badges = append([]Badge{b}, p.Badges...)
	p.notify("New Badge Designed: "+b.Name, "success")
	return b
}

// DeleteBadge removes a badge by id.
func (p *Progress) DeleteBadge(id string) bool {
	n := len(p.Badges)
	p.Badges = slices.DeleteFunc(p.Badges, func(b Badge) bool { return b.ID == id })
	if len(p.Badges) == n {
		return false
	}
	p.notify("Badge Deleted", "info")
	return true
}

// SetLevelCurve replaces the level curve.
func (p *Progress) SetLevelCurve(curve []int) {
	p.LevelCurve = slices.Clone(curve)
	p.notify("Level Curve Updated", "success")
}

// SetLevel forces the level without touching XP.
func (p *Progress) SetLevel(level int) {
	if level < 1 {
		level = 1
	}
	p.Level = level
}

// SetXP sets raw XP without running level-ups.
func (p *Progress) SetXP(xp int) {
	if xp < 0 {
		xp = 0
	}
	p.XP = xp
}

// SetAvatarStat sets one avatar stat by name, clamped to 0..100.
func (p *Progress) SetAvatarStat(stat string, value int) error {
	value = max(0, min(100, value))
	switch stat {
	case "logic":
		p.Avatar.Logic = value
	case "creativity":
		p.Avatar.Creativity = value
	case "focus":
		p.Avatar.Focus = value
	case "memory":
		p.Avatar.Memory = value
	default:
		return fmt.Errorf("economy: unknown avatar stat %q", stat)
	}
	return nil
}

// Reset restores level, XP, avatar, missions and badges to their defaults.
// The level curve is kept.
func (p *Progress) Reset() {
	p.resetState()
	p.notify("Progress Reset", "info")
}

// Notifications returns the notifications that have not yet expired.
func (p *Progress) Notifications() []Notification {
	cutoff := p.now().Add(-NotificationTTL)
	p.notifications = slices.DeleteFunc(p.notifications, func(n Notification) bool {
		return n.At.Before(cutoff)
	})
	return slices.Clone(p.notifications)
}

// Dismiss removes a notification by id.
func (p *Progress) Dismiss(id int64) {
	p.notifications = slices.DeleteFunc(p.notifications, func(n Notification) bool { return n.ID == id })
}

func (p *Progress) notify(msg, kind string) {
	now := p.now()
	id := now.UnixMilli()
	if id <= p.lastNoteID {
		id = p.lastNoteID + 1
	}
	p.lastNoteID = id
	p.notifications = append(p.notifications, Notification{ID: id, Message: msg, Kind: kind, At: now})
}

// uniqueID builds "<prefix>-<unix millis>", bumping the number on collision.
func (p *Progress) uniqueID(prefix string, taken func(string) bool) string {
	ts := p.now().UnixMilli()
	for {
		id := fmt.Sprintf("%s-%d", prefix, ts)
		if !taken(id) {
			return id
		}
		ts++
	}
}
