package config

import (
	"embed"
	"path"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// GetDefaultYAML returns the embedded default YAML for a game, or nil.
func GetDefaultYAML(gameID string) []byte {
	data, err := defaultsFS.ReadFile(path.Join("defaults", gameID+".yaml"))
	if err != nil {
		return nil
	}
	return data
}

// DefaultAimConfig returns the hardcoded aim trainer tuning.
func DefaultAimConfig() AimConfig {
	return AimConfig{
		World:      Size{W: 960, H: 520},
		DurationMs: 30000,
		Orb: AimOrb{
			Radius:    32,
			MinSpeed:  180,
			MaxSpeed:  260,
			MinTurnMs: 250,
			MaxTurnMs: 600,
		},
		Reaction: AimReaction{
			MinRadius: 18,
			MaxRadius: 54,
			Padding:   10,
		},
	}
}

// DefaultFlappyConfig returns the hardcoded floppyball tuning.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: Size{W: 960, H: 520},
		Physics: FlappyPhysics{
			Gravity:    1100,
			Flap:       -300,
			BirdRadius: 16,
			BirdX:      0.28,
			OutMargin:  40,
		},
		Pipes: FlappyPipes{
			Width:       72,
			Speed:       320,
			SpawnMs:     950,
			EdgePadding: 60,
			MinGap:      140,
		},
		Gap: CurveConfig{Type: "ramp", From: 170, To: 140, WindowMs: 60000},
	}
}

// DefaultGolfConfig returns the hardcoded hole-in-one tuning.
func DefaultGolfConfig() GolfConfig {
	return GolfConfig{
		World: Size{W: 960, H: 520},
		Ball:  GolfBall{Radius: 14, MinX: 120, MaxX: 220, Margin: 120},
		Cup:   GolfCup{Radius: 20, MinXFrac: 0.6, RightMargin: 120, Margin: 100},
		Blocks: GolfBlocks{
			ChancePct:    60,
			Min:          1,
			Max:          3,
			Width:        70,
			Height:       20,
			MinXFrac:     0.35,
			MaxXFrac:     0.75,
			Margin:       80,
			CupClearance: 80,
		},
		Shot: GolfShot{GrabFactor: 6, MaxPull: 160, MinPull: 15, Power: 5.4},
		Physics: GolfPhysics{
			WallBounce:  0.4,
			BlockBounce: 0.4,
			Damping:     0.6,
			GraceMs:     2200,
			RestSpeed:   150,
			OutMargin:   40,
		},
	}
}

// DefaultDefenseConfig returns the hardcoded circle defense tuning.
func DefaultDefenseConfig() DefenseConfig {
	return DefenseConfig{
		World: Size{W: 960, H: 520},
		Grid:  40,
		Path:  DefensePath{Margin: 60, Turns: 5, MinSegment: 120, TurnRoom: 80, Width: 56},
		Economy: DefenseEconomy{
			StartCoins: 100,
			Lives:      10,
			TowerCost:  30,
			KillReward: 10,
		},
		Waves: DefenseWaves{
			FirstMs:      600,
			SpawnMs:      900,
			PauseMs:      1400,
			Count:        StepConfig{Base: 8, Increment: 3},
			HP:           StepConfig{Base: 30, Increment: 16},
			Speed:        StepConfig{Base: 80, Increment: 12},
			EnemySize:    20,
			ArriveWithin: 6,
		},
		Tower:  DefenseTower{Radius: 16, Range: 150, FireMs: 650},
		Bullet: DefenseBullet{Speed: 360, Damage: 10, HitRadius: 8, LifeMs: 2000},
	}
}

// DefaultZombieConfig returns the hardcoded zombie onslaught tuning.
func DefaultZombieConfig() ZombieConfig {
	return ZombieConfig{
		World:  Size{W: 960, H: 520},
		Player: ZombiePlayer{Radius: 16, Speed: 220, Lives: 3, InvulnMs: 900},
		Bullet: ZombieBullet{Radius: 4, Speed: 520, LifeMs: 1200, CooldownMs: 120},
		Zombie: ZombieHorde{
			Radius:     14,
			EdgeMargin: 30,
			SpawnMs:    CurveConfig{Type: "ramp", From: 900, To: 350, WindowMs: 60000},
			Speed:      CurveConfig{Type: "ramp", From: 60, To: 210, WindowMs: 60000},
		},
	}
}

// DefaultDriftConfig returns the hardcoded vector drift tuning.
func DefaultDriftConfig() DriftConfig {
	return DriftConfig{
		World: Size{W: 960, H: 540},
		Player: DriftPlayer{
			Radius:       6,
			Speed:        260,
			SpeedGrowth:  0.35,
			Damping:      0.2,
			WrapMargin:   20,
			Top:          60,
			BottomMargin: 40,
		},
		Obstacles: DriftObstacles{
			IntervalMs: CurveConfig{Type: "hyperbolic", Base: 650, Rate: 0.06},
			Scroll:     CurveConfig{Type: "linear", Base: 160, PerMinute: 18},
			MinRadius:  12,
			MaxRadius:  28,
			MinLength:  60,
			MaxLength:  140,
			LinePct:    50,
			Margin:     40,
			SpawnY:     -40,
			Despawn:    80,
		},
		Collectibles: DriftCollectibles{
			IntervalMs: 1000,
			Radius:     10,
			SpawnY:     -30,
			Despawn:    60,
		},
	}
}

// DefaultOverclockConfig returns the hardcoded overclock tuning.
func DefaultOverclockConfig() OverclockConfig {
	return OverclockConfig{
		StartPower: 100,
		BaseRate:   1.2,
		ClickPower: 1,
		Drain:      CurveConfig{Type: "power", Base: 2.4, Growth: 0.8, Exponent: 1.35},
		Upgrades: []UpgradeConfig{
			{Name: "click", BaseCost: 60, Growth: 1.7},
			{Name: "generator", BaseCost: 85, Growth: 1.75},
		},
	}
}

// DefaultSpottingConfig returns the hardcoded spotting game tuning.
func DefaultSpottingConfig() SpottingConfig {
	return SpottingConfig{
		DurationMs: 30000,
		Columns:    6,
		Cells:      36,
		Letters:    "ABCDEFGHJKLMNPQRSTUVWXYZ",
		Digits:     "23456789",
		Shapes:     []string{"circle", "square", "triangle", "diamond", "star", "hexagon"},
	}
}

// DefaultTypingConfig returns the hardcoded typing accuracy tuning.
func DefaultTypingConfig() TypingConfig {
	return TypingConfig{
		DurationMs: 30000,
		Lookahead:  2,
		Phrases: []string{
			"build small tools that help people",
			"ship fast learn faster",
			"practice makes reliable",
			"focus on clean and simple",
			"type with calm precision",
			"make it readable and stable",
			"small steps big progress",
			"care about the details",
			"trust the process",
			"steady hands steady code",
		},
	}
}
