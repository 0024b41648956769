package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Snapshot is a read-only copy of everything a renderer or report needs for
// one frame. It shares no mutable state with the session.
type Snapshot struct {
	Clock time.Duration
	Frame int
	Phase Phase

	Camera  Camera
	Moving  bool
	Blocked bool

	EntitySpawned  bool
	EntityPos      mgl64.Vec3
	EntityHeading  float64
	EntityCorners  [4]mgl64.Vec3
	EntityDistance float64
	EntityObjectID int

	Weapon    WeaponPose
	Recoiling bool
	Shots     int
	Hits      int

	Effects []Effect

	LoadingProgress float64
	LoadingText     string
	Loaded          bool
	Revealed        bool
	ContinueReady   bool
	CaughtAt        time.Duration

	Audio          AudioState
	AmbientPlaying bool
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Clock:           s.sched.Now(),
		Frame:           s.frame,
		Phase:           s.phase,
		Camera:          s.camera,
		Moving:          s.movement.Moving(),
		Blocked:         s.lastMove.Blocked,
		EntityDistance:  s.distance,
		Weapon:          s.weapon.Pose(),
		Recoiling:       s.weapon.Recoiling(),
		Shots:           s.weapon.Shots(),
		Hits:            s.weapon.Hits(),
		Effects:         s.effects.Active(),
		LoadingProgress: s.loadProgress,
		LoadingText:     s.loadText,
		Loaded:          s.loaded,
		Revealed:        s.revealed,
		ContinueReady:   s.continueReady,
		CaughtAt:        s.caughtAt,
		Audio:           s.audio.State(),
		AmbientPlaying:  s.audio.AmbientPlaying(),
	}
	if s.pursuer != nil {
		snap.EntitySpawned = true
		snap.EntityPos = s.pursuer.Position()
		snap.EntityHeading = s.pursuer.Heading()
		snap.EntityCorners = s.pursuer.Billboard().Corners()
		snap.EntityObjectID = s.pursuer.ObjectID()
	}
	return snap
}
