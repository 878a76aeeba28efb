package reward

import "time"

// Kind separates fixed-duration mining actions from the wall-clock bound
// daily claim.
type Kind string

const (
	KindMining     Kind = "mining"
	KindDailyClaim Kind = "dailyClaim"
)

// ActionSpec is one entry of the collaborator-supplied reward table.
type ActionSpec struct {
	ID          string
	Name        string
	Kind        Kind
	PointReward int64
	ExpReward   int64
	Cooldown    time.Duration
	// Randomized actions have their point reward resolved by a draw before
	// the engine runs; PointReward then serves as documentation only.
	Randomized bool
}

// DailyClaimID is the action id of the once-per-day claim.
const DailyClaimID = "dailyClaim"

// Daily claim reward constants: base points plus a bonus per streak day,
// capped at a week.
const (
	DailyBasePoints  int64 = 100
	DailyStreakBonus int64 = 25
	DailyStreakCap         = 7
	DailyExpReward   int64 = 15
)

var actions = []ActionSpec{
	{ID: "puzzle", Name: "Puzzle Mining", Kind: KindMining, PointReward: 50, ExpReward: 10, Cooldown: 30 * time.Second},
	{ID: "spin", Name: "Spin Mining", Kind: KindMining, PointReward: 100, ExpReward: 20, Cooldown: 60 * time.Second, Randomized: true},
	{ID: "sticker", Name: "Sticker Packs", Kind: KindMining, PointReward: 75, ExpReward: 15, Cooldown: 45 * time.Second},
	{ID: "video", Name: "Video Mining", Kind: KindMining, PointReward: 30, ExpReward: 5, Cooldown: 20 * time.Second},
	{ID: "mini", Name: "Mini-Game", Kind: KindMining, PointReward: 120, ExpReward: 25, Cooldown: 90 * time.Second},
	{ID: DailyClaimID, Name: "Daily Claim", Kind: KindDailyClaim, PointReward: DailyBasePoints, ExpReward: DailyExpReward},
}

// Actions returns the full action table in declaration order.
func Actions() []ActionSpec {
	out := make([]ActionSpec, len(actions))
	copy(out, actions)
	return out
}

// ActionByID looks up an action spec.
func ActionByID(id string) (ActionSpec, bool) {
	for _, a := range actions {
		if a.ID == id {
			return a, true
		}
	}
	return ActionSpec{}, false
}

// SpinPrizes are the wheel segments, in wheel order.
var SpinPrizes = []int64{10, 50, 25, 100, 5, 75, 15, 200}

// ResolveSpinPrize picks a wheel segment using the injected draw function.
// The draw is the only source of randomness; the engine itself never rolls.
func ResolveSpinPrize(draw func(n int) int) int64 {
	idx := draw(len(SpinPrizes))
	if idx < 0 || idx >= len(SpinPrizes) {
		idx = 0
	}
	return SpinPrizes[idx]
}

// ConversionRate is how many points buy one CATI.
const ConversionRate int64 = 10000

// Pack is a claimable reward bundle paid for with points.
type Pack struct {
	ID         int
	Name       string
	Cost       int64
	TON        float64
	CATI       float64
	USDT       float64
	GiftPoints int64
}

var packs = []Pack{
	{ID: 1, Name: "Starter Pack", Cost: 1000, TON: 1, CATI: 50, USDT: 2, GiftPoints: 100},
	{ID: 2, Name: "Warrior Pack", Cost: 3000, TON: 3, CATI: 150, USDT: 5, GiftPoints: 300},
	{ID: 3, Name: "Crimson Blade Pack", Cost: 5000, TON: 5, CATI: 250, USDT: 10, GiftPoints: 500},
	{ID: 4, Name: "Hero Pack", Cost: 7500, TON: 8, CATI: 400, USDT: 15, GiftPoints: 750},
	{ID: 5, Name: "Legendary Pack", Cost: 10000, TON: 12, CATI: 600, USDT: 25, GiftPoints: 1000},
}

// Packs returns the reward pack table.
func Packs() []Pack {
	out := make([]Pack, len(packs))
	copy(out, packs)
	return out
}

// PackByID looks up a reward pack.
func PackByID(id int) (Pack, bool) {
	for _, p := range packs {
		if p.ID == id {
			return p, true
		}
	}
	return Pack{}, false
}
