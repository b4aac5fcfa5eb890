package agent

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// seqRand replays a fixed sequence of draws, repeating the last one.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[len(r.vals)-1]
	if r.i < len(r.vals) {
		v = r.vals[r.i]
	}
	r.i++
	return v
}

func TestEnemyStatsTable(t *testing.T) {
	tests := []struct {
		typ    EnemyType
		health int
		speed  float64
		damage int
		score  int
	}{
		{EnemyBasic, 40, 80, 20, 10},
		{EnemyFast, 20, 150, 10, 15},
		{EnemyStrong, 80, 60, 30, 25},
		{EnemyBoss, 200, 40, 50, 100},
	}

	st := StatTableFrom(config.DefaultShooterConfig().Enemies)
	for _, tc := range tests {
		t.Run(tc.typ.String(), func(t *testing.T) {
			s := st.Lookup(tc.typ)
			if s.Health != tc.health || s.Speed != tc.speed || s.ContactDamage != tc.damage || s.ScoreValue != tc.score {
				t.Errorf("stats = %+v", s)
			}
		})
	}
}

func TestParseEnemyTypeDefaultsToBasic(t *testing.T) {
	if typ, ok := ParseEnemyType("Boss"); !ok || typ != EnemyBoss {
		t.Errorf("ParseEnemyType(Boss) = %v, %v", typ, ok)
	}
	if typ, ok := ParseEnemyType(""); ok || typ != EnemyBasic {
		t.Errorf("ParseEnemyType(\"\") = %v, %v", typ, ok)
	}
	if typ, ok := ParseEnemyType("dragon"); ok || typ != EnemyBasic {
		t.Errorf("ParseEnemyType(dragon) = %v, %v", typ, ok)
	}
}

func TestEnemyStateMachine(t *testing.T) {
	table := NewTable()
	player := table.AddPlayer(core.V(400, 300), 32)
	e := table.AddEnemy(EnemyBasic, DefaultStats().Lookup(EnemyBasic), core.V(100, 300), 32)

	if e.State() != Wandering {
		t.Fatalf("initial state = %v, expected wandering", e.State())
	}

	e.SetTarget(player.ID())
	if e.State() != Pursuing {
		t.Fatalf("state after SetTarget = %v", e.State())
	}

	e.Update(table, &seqRand{vals: []float64{0.5}})
	v := e.Velocity()
	if math.Abs(v.X-80) > 1e-9 || math.Abs(v.Y) > 1e-9 {
		t.Errorf("pursuit velocity = %v, expected (80, 0)", v)
	}
	if e.FacingLeft {
		t.Error("enemy moving right should face right")
	}

	// Target on the left flips facing.
	player.SetPosition(core.V(0, 300))
	e.Update(table, &seqRand{vals: []float64{0.5}})
	if !e.FacingLeft {
		t.Error("enemy moving left should face left")
	}

	if got := e.TakeDamage(20); got != 0 || e.State() != Pursuing {
		t.Errorf("non-lethal hit returned %d, state %v", got, e.State())
	}
	if got := e.TakeDamage(20); got != 10 || e.State() != Dead {
		t.Errorf("lethal hit returned %d, state %v", got, e.State())
	}
	if got := e.TakeDamage(20); got != 0 {
		t.Errorf("hit on dead enemy returned %d", got)
	}

	e.SetTarget(player.ID())
	if e.State() != Dead {
		t.Error("dead enemy left Dead state")
	}
	e.Update(table, &seqRand{vals: []float64{0.5}})
	if !e.Velocity().IsZero() {
		t.Error("dead enemy should not move")
	}
}

func TestEnemyLostTargetHolds(t *testing.T) {
	table := NewTable()
	player := table.AddPlayer(core.V(400, 300), 32)
	e := table.AddEnemy(EnemyFast, DefaultStats().Lookup(EnemyFast), core.V(100, 100), 32)
	e.SetTarget(player.ID())

	table.Remove(player.ID())
	e.Update(table, &seqRand{vals: []float64{0.5}})

	if e.State() != Pursuing {
		t.Errorf("state = %v, pursuit has no reverse transition", e.State())
	}
	if !e.Velocity().IsZero() {
		t.Errorf("velocity = %v with unresolvable target", e.Velocity())
	}
}

func TestEnemyWander(t *testing.T) {
	table := NewTable()
	e := table.AddEnemy(EnemyBasic, DefaultStats().Lookup(EnemyBasic), core.V(100, 100), 32)

	// Zero velocity always rerolls: the single draw is the heading.
	e.Update(table, &seqRand{vals: []float64{0.25}})
	v := e.Velocity()
	if math.Abs(v.Len()-40) > 1e-9 {
		t.Errorf("wander speed = %f, expected half of 80", v.Len())
	}
	if math.Abs(v.X) > 1e-9 || v.Y <= 0 {
		t.Errorf("heading for draw 0.25 = %v, expected straight down", v)
	}

	// Moving and the reroll draw misses: heading kept.
	e.Update(table, &seqRand{vals: []float64{0.5}})
	if e.Velocity() != v {
		t.Errorf("velocity changed without a reroll: %v", e.Velocity())
	}

	// Moving and the reroll draw hits: new heading from the second draw.
	e.Update(table, &seqRand{vals: []float64{0.005, 0.5}})
	nv := e.Velocity()
	if math.Abs(nv.X+40) > 1e-9 || !e.FacingLeft {
		t.Errorf("rerolled velocity = %v, facing left %v", nv, e.FacingLeft)
	}
}

func TestItemCollectOnce(t *testing.T) {
	table := NewTable()
	it := table.AddItem(ItemHealth, 20, core.V(10, 10), 16)

	p, ok := it.Collect()
	if !ok || p.Type != ItemHealth || p.Value != 20 {
		t.Fatalf("first Collect = %+v, %v", p, ok)
	}
	if _, ok := it.Collect(); ok {
		t.Error("second Collect should fail")
	}
}

func TestDropTableThresholds(t *testing.T) {
	tests := []struct {
		name  string
		draws []float64
		want  ItemType
		drops bool
	}{
		{"no drop", []float64{0.30}, 0, false},
		{"weapon", []float64{0.1, 0.05}, ItemWeapon, true},
		{"health", []float64{0.1, 0.10}, ItemHealth, true},
		{"ammo", []float64{0.1, 0.45}, ItemAmmo, true},
		{"coin", []float64{0.1, 0.50}, ItemCoin, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			typ, ok := DefaultDropTable().Roll(&seqRand{vals: tc.draws})
			if ok != tc.drops || (ok && typ != tc.want) {
				t.Errorf("Roll = %v, %v; expected %v, %v", typ, ok, tc.want, tc.drops)
			}
		})
	}
}

func TestDropRateDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	d := DefaultDropTable()

	const kills = 100000
	counts := make(map[ItemType]int)
	drops := 0
	for i := 0; i < kills; i++ {
		if typ, ok := d.Roll(rng); ok {
			drops++
			counts[typ]++
		}
	}

	rate := float64(drops) / kills
	if rate < 0.29 || rate > 0.31 {
		t.Errorf("drop rate = %.4f, expected 0.30 ± 0.01", rate)
	}

	expected := map[ItemType]float64{ItemWeapon: 0.10, ItemHealth: 0.20, ItemAmmo: 0.20, ItemCoin: 0.50}
	for typ, want := range expected {
		got := float64(counts[typ]) / float64(drops)
		if math.Abs(got-want) > 0.02 {
			t.Errorf("%v share = %.3f, expected %.2f", typ, got, want)
		}
	}
}

func TestPlayerSteerAndFire(t *testing.T) {
	table := NewTable()
	p := table.AddPlayer(core.V(400, 300), 32)

	p.Steer(core.V(1, 1), 200)
	if math.Abs(p.Velocity().Len()-200) > 1e-9 {
		t.Errorf("diagonal speed = %f, expected 200", p.Velocity().Len())
	}

	p.Steer(core.V(-1, 0), 200)
	if !p.FacingLeft {
		t.Error("player moving left should face left")
	}
	pos, vel := p.Muzzle(20, 400)
	if pos != core.V(380, 300) || vel != core.V(-400, 0) {
		t.Errorf("Muzzle = %v, %v", pos, vel)
	}

	rate := 200 * time.Millisecond
	if !p.CanFire(0, rate) {
		t.Fatal("first shot should be allowed")
	}
	p.MarkFired(0)
	if p.CanFire(200*time.Millisecond, rate) {
		t.Error("shot allowed before the cooldown elapsed")
	}
	if !p.CanFire(201*time.Millisecond, rate) {
		t.Error("shot refused after the cooldown")
	}

	if !p.Kill() || p.Kill() {
		t.Error("Kill should succeed exactly once")
	}
	p.Steer(core.V(1, 0), 200)
	if !p.Velocity().IsZero() || p.CanFire(time.Hour, rate) {
		t.Error("dead player should neither move nor fire")
	}
}

func TestTableRemoveAndHandles(t *testing.T) {
	table := NewTable()
	wall := table.AddWall()
	a := table.AddEnemy(EnemyBasic, DefaultStats().Lookup(EnemyBasic), core.V(0, 0), 32)
	b := table.AddEnemy(EnemyBoss, DefaultStats().Lookup(EnemyBoss), core.V(0, 0), 32)
	bullet := table.AddBullet(core.V(0, 0), core.V(400, 0), 8)

	if table.Kind(wall) != KindWall || table.Kind(b.ID()) != KindEnemy || table.Kind(bullet.ID()) != KindBullet {
		t.Fatal("kinds not recorded")
	}
	if b.Size() != core.V(64, 64) {
		t.Errorf("boss size = %v, expected scaled to 64", b.Size())
	}

	table.Remove(a.ID())
	if _, ok := table.Enemy(a.ID()); ok {
		t.Error("removed enemy still resolves")
	}
	if len(table.Enemies()) != 1 || table.Enemies()[0] != b {
		t.Errorf("enemies after removal = %v", table.Enemies())
	}
	table.Remove(a.ID()) // no-op

	if !bullet.Deactivate() || bullet.Deactivate() {
		t.Error("Deactivate should succeed exactly once")
	}
	if table.ActiveBullets() != 0 {
		t.Errorf("ActiveBullets = %d", table.ActiveBullets())
	}

	table.Clear()
	fresh := table.AddWall()
	if fresh <= bullet.ID() {
		t.Errorf("handle %d reused after Clear", fresh)
	}
	if table.Len() != 1 {
		t.Errorf("Len after Clear = %d", table.Len())
	}
}

func TestTableListsSurviveRemove(t *testing.T) {
	table := NewTable()
	var enemies []*Enemy
	for i := 0; i < 3; i++ {
		enemies = append(enemies, table.AddEnemy(EnemyBasic, DefaultStats().Lookup(EnemyBasic), core.V(float64(i), 0), 32))
	}
	first := table.AddBullet(core.V(0, 0), core.V(400, 0), 8)
	second := table.AddBullet(core.V(0, 0), core.V(400, 0), 8)

	held := table.Enemies()
	heldBullets := table.Bullets()
	seen := 0
	for _, e := range held {
		table.Remove(e.ID())
		seen++
	}
	table.Remove(first.ID())

	if seen != 3 || len(table.Enemies()) != 0 {
		t.Fatalf("removed %d while ranging, %d left", seen, len(table.Enemies()))
	}
	for i, e := range held {
		if e != enemies[i] {
			t.Errorf("held enemy %d changed after Remove", i)
		}
	}
	if heldBullets[0] != first || heldBullets[1] != second {
		t.Error("held bullets changed after Remove")
	}
	if got := table.Bullets(); len(got) != 1 || got[0] != second {
		t.Errorf("bullets after removal = %v", got)
	}
}
