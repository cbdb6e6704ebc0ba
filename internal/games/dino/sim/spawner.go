package sim

// SpawnTick runs one spawn attempt. It is driven by a wall-clock timer
// independent of the frame rate and does nothing unless the run is live.
func (s *Simulation) SpawnTick() Events {
	if s.world.Phase != PhaseRunning {
		return Events{}
	}
	return s.spawnWith(s.rng.Float64())
}

// spawnWith applies the spawn rules to one uniform sample in [0, 1):
//   - below FlyingChance, past the unlock score and with no bird in
//     flight: spawn a bird
//   - otherwise below GroundChance, with room for another cactus and
//     the newest cactus far enough from the spawn edge: spawn a cactus
func (s *Simulation) spawnWith(sample float64) Events {
	var ev Events

	if s.world.Score > s.cfg.Flying.UnlockScore && sample < s.cfg.Spawn.FlyingChance && len(s.flying) == 0 {
		s.spawnFlying()
		ev.SpawnedFlying = true
		return ev
	}

	if sample < s.cfg.Spawn.GroundChance && len(s.ground) < s.cfg.Obstacles.MaxActive && s.groundSpawnClear() {
		s.spawnGround()
		ev.SpawnedGround = true
	}
	return ev
}

// groundSpawnClear reports whether the most recent cactus has moved at
// least MinSpacing away from the spawn edge.
func (s *Simulation) groundSpawnClear() bool {
	if len(s.ground) == 0 {
		return true
	}
	last := s.ground[len(s.ground)-1]
	return last.X < s.world.Width-s.cfg.Obstacles.MinSpacing
}

func (s *Simulation) spawnGround() {
	idx := s.rng.Intn(len(s.cfg.Obstacles.Shapes))
	shape := s.cfg.Obstacles.Shapes[idx]
	s.ground = append(s.ground, GroundObstacle{
		X:      s.world.Width,
		Y:      s.world.GroundY - shape.Height,
		Width:  shape.Width,
		Height: shape.Height,
		Shape:  idx,
	})
}

func (s *Simulation) spawnFlying() {
	alts := s.cfg.Flying.Altitudes
	alt := alts[s.rng.Intn(len(alts))]
	s.flying = append(s.flying, FlyingObstacle{
		X:      s.world.Width,
		Y:      s.world.GroundY - alt,
		Width:  s.cfg.Flying.Width,
		Height: s.cfg.Flying.Height,
	})
}
