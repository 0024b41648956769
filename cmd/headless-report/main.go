package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Garsondee/Night-Chase/internal/game"
	"github.com/Garsondee/Night-Chase/internal/level"
)

// fireEvery is how many frames the shooting strategies wait between shots.
const fireEvery = 30

type runStats struct {
	runIndex int
	seed     int64

	caught      bool
	catchTime   time.Duration // from accept to catch
	spawnTime   time.Duration // from accept to spawn
	catchDist   float64
	closestDist float64

	shots   int
	hits    int
	misses  int
	blocked int
	effects int

	tail string // sim log leading up to the catch
}

// strategy turns a snapshot into the next frame's input.
type strategy func(snap game.Snapshot, frame int) game.Input

var strategies = map[string]strategy{
	"stand":  stand,
	"flee":   flee,
	"strafe": strafe,
}

func main() {
	var runs int
	var seedBase, seedStep int64
	var name, levelPath string
	var maxSeconds, dumpSeconds float64

	flag.IntVar(&runs, "runs", 5, "number of headless chase runs")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&name, "strategy", "stand", "player strategy: "+strategyNames())
	flag.StringVar(&levelPath, "level", "", "YAML level file (default: built-in backrooms)")
	flag.Float64Var(&maxSeconds, "max-seconds", 120, "give up on a run after this much play time")
	flag.Float64Var(&dumpSeconds, "dump", 0, "print this many seconds of sim log before each catch")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if maxSeconds <= 0 {
		fmt.Println("error: -max-seconds must be > 0")
		return
	}
	strat, ok := strategies[name]
	if !ok {
		fmt.Printf("error: unsupported strategy %q (supported: %s)\n", name, strategyNames())
		return
	}
	lvl, err := level.Load(levelPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	fmt.Printf("=== Headless Chase Report ===\n")
	fmt.Printf("strategy=%s runs=%d max_seconds=%.0f seed_base=%d seed_step=%d\n\n", name, runs, maxSeconds, seedBase, seedStep)

	limit := time.Duration(maxSeconds * float64(time.Second))
	dump := time.Duration(dumpSeconds * float64(time.Second))
	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runChase(i+1, seed, lvl, strat, limit, dump)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func strategyNames() string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func runChase(runIndex int, seed int64, lvl *level.Level, strat strategy, limit, dump time.Duration) runStats {
	scene, spawn := lvl.Build()
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithScene(scene),
		game.WithSpawn(spawn),
	)
	rs := runStats{runIndex: runIndex, seed: seed, closestDist: math.Inf(1)}
	if err := ts.Start(); err != nil {
		fmt.Printf("run %d: %v\n", runIndex, err)
		return rs
	}
	start := ts.Session.Clock()

	for frame := 0; ts.Session.Clock()-start < limit; frame++ {
		snap := ts.Snapshot()
		if snap.Phase != game.PhasePlaying {
			break
		}
		if snap.EntitySpawned && snap.EntityDistance < rs.closestDist {
			rs.closestDist = snap.EntityDistance
		}
		ts.Step(strat(snap, frame))
	}

	snap := ts.Snapshot()
	rs.shots, rs.hits = snap.Shots, snap.Hits
	rs.misses = ts.SimLog.CountCategory("weapon", "miss")
	rs.blocked = ts.SimLog.CountCategory("move", "blocked")
	rs.effects = ts.SimLog.CountCategory("effect", "spawned")
	rs.spawnTime = firstAt(ts.SimLog, "pursuit", "spawned", start)
	if e, ok := ts.SimLog.LastOf("pursuit", "caught"); ok {
		rs.caught = true
		rs.catchTime = e.At - start
		rs.catchDist = e.NumVal
		if dump > 0 {
			rs.tail = ts.SimLog.FormatRange(e.At-dump, e.At)
		}
	}
	return rs
}

func firstAt(sl *game.SimLog, category, key string, start time.Duration) time.Duration {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return -1
	}
	return entries[0].At - start
}

// yawToward returns the yaw that faces from p toward q on the ground plane.
func yawToward(p, q mgl64.Vec3) float64 {
	return math.Atan2(-(q[0] - p[0]), -(q[2] - p[2]))
}

// turn returns the shortest yaw delta from cur to want.
func turn(cur, want float64) float64 {
	d := math.Mod(want-cur, 2*math.Pi)
	switch {
	case d > math.Pi:
		d -= 2 * math.Pi
	case d < -math.Pi:
		d += 2 * math.Pi
	}
	return d
}

func aim(snap game.Snapshot) float64 {
	if !snap.EntitySpawned {
		return 0
	}
	return turn(snap.Camera.Yaw, yawToward(snap.Camera.Position, snap.EntityPos))
}

func trigger(snap game.Snapshot, frame int) int {
	if snap.EntitySpawned && frame%fireEvery == 0 {
		return 1
	}
	return 0
}

// stand holds position, tracking and shooting the entity.
func stand(snap game.Snapshot, frame int) game.Input {
	return game.Input{LookYaw: aim(snap), Fire: trigger(snap, frame)}
}

// flee turns away from the entity and runs.
func flee(snap game.Snapshot, frame int) game.Input {
	in := game.Input{Move: game.MoveIntent{Forward: true}}
	if snap.EntitySpawned {
		in.LookYaw = turn(snap.Camera.Yaw, yawToward(snap.Camera.Position, snap.EntityPos)+math.Pi)
	}
	return in
}

// strafe circles the entity while shooting.
func strafe(snap game.Snapshot, frame int) game.Input {
	in := stand(snap, frame)
	in.Move.Left = snap.EntitySpawned
	return in
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	if rs.caught {
		fmt.Printf("outcome: caught at %.2fs (distance=%.2f) spawned=%s\n",
			rs.catchTime.Seconds(), rs.catchDist, secondsString(rs.spawnTime))
	} else {
		fmt.Printf("outcome: survived spawned=%s closest=%s\n", secondsString(rs.spawnTime), distString(rs.closestDist))
	}
	fmt.Printf("weapon: shots=%d hits=%d misses=%d accuracy=%s effects=%d\n",
		rs.shots, rs.hits, rs.misses, percent(rs.hits, rs.shots), rs.effects)
	fmt.Printf("movement: blocked=%d\n", rs.blocked)
	if rs.tail != "" {
		fmt.Printf("log before catch:\n%s", rs.tail)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	caught := 0
	var catchTimes []float64
	totalShots, totalHits, totalBlocked := 0, 0, 0
	for _, rs := range all {
		if rs.caught {
			caught++
			catchTimes = append(catchTimes, rs.catchTime.Seconds())
		}
		totalShots += rs.shots
		totalHits += rs.hits
		totalBlocked += rs.blocked
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d caught=%d survived=%d\n", len(all), caught, len(all)-caught)
	fmt.Printf("catch_time: %s\n", rangeString(catchTimes))
	fmt.Printf("avg_per_run: shots=%.1f hits=%.1f blocked=%.1f accuracy=%s\n",
		avg(totalShots, len(all)), avg(totalHits, len(all)), avg(totalBlocked, len(all)), percent(totalHits, totalShots))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func percent(n, of int) string {
	if of == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", float64(n)/float64(of)*100)
}

func secondsString(d time.Duration) string {
	if d < 0 {
		return "never"
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

func distString(d float64) string {
	if math.IsInf(d, 1) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", d)
}

// rangeString summarises values as min/avg/max.
func rangeString(vals []float64) string {
	if len(vals) == 0 {
		return "n/a"
	}
	lo, hi, sum := vals[0], vals[0], 0.0
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
	}
	return fmt.Sprintf("min=%.2fs avg=%.2fs max=%.2fs", lo, sum/float64(len(vals)), hi)
}
