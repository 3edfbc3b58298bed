// Package config provides YAML-based tuning for each minigame and the
// difficulty presets that stretch or freeze their curves.
package config

// Size is a play-field size in world units.
type Size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// AimConfig tunes the aim trainer and its reaction variant.
type AimConfig struct {
	World      Size        `yaml:"world"`
	DurationMs float64     `yaml:"duration_ms"`
	Orb        AimOrb      `yaml:"orb"`
	Reaction   AimReaction `yaml:"reaction"`
}

// AimOrb defines the moving target of tracing mode.
type AimOrb struct {
	Radius    float64 `yaml:"radius"`
	MinSpeed  float64 `yaml:"min_speed"`
	MaxSpeed  float64 `yaml:"max_speed"`
	MinTurnMs int     `yaml:"min_turn_ms"`
	MaxTurnMs int     `yaml:"max_turn_ms"`
}

// AimReaction defines the static targets of reaction mode.
type AimReaction struct {
	MinRadius int     `yaml:"min_radius"`
	MaxRadius int     `yaml:"max_radius"`
	Padding   float64 `yaml:"padding"`
}

// FlappyConfig tunes floppyball.
type FlappyConfig struct {
	World   Size          `yaml:"world"`
	Physics FlappyPhysics `yaml:"physics"`
	Pipes   FlappyPipes   `yaml:"pipes"`
	Gap     CurveConfig   `yaml:"gap"`
}

// FlappyPhysics defines the bird.
type FlappyPhysics struct {
	Gravity    float64 `yaml:"gravity"`
	Flap       float64 `yaml:"flap"`
	BirdRadius float64 `yaml:"bird_radius"`
	BirdX      float64 `yaml:"bird_x"` // fraction of the world width
	OutMargin  float64 `yaml:"out_margin"`
}

// FlappyPipes defines the pipe stream.
type FlappyPipes struct {
	Width       float64 `yaml:"width"`
	Speed       float64 `yaml:"speed"`
	SpawnMs     float64 `yaml:"spawn_ms"`
	EdgePadding float64 `yaml:"edge_padding"`
	MinGap      float64 `yaml:"min_gap"`
}

// GolfConfig tunes hole-in-one.
type GolfConfig struct {
	World   Size        `yaml:"world"`
	Ball    GolfBall    `yaml:"ball"`
	Cup     GolfCup     `yaml:"cup"`
	Blocks  GolfBlocks  `yaml:"blocks"`
	Shot    GolfShot    `yaml:"shot"`
	Physics GolfPhysics `yaml:"physics"`
}

// GolfBall defines the ball and where it may start.
type GolfBall struct {
	Radius float64 `yaml:"radius"`
	MinX   int     `yaml:"min_x"`
	MaxX   int     `yaml:"max_x"`
	Margin int     `yaml:"margin"`
}

// GolfCup defines the target hole.
type GolfCup struct {
	Radius      float64 `yaml:"radius"`
	MinXFrac    float64 `yaml:"min_x_frac"`
	RightMargin int     `yaml:"right_margin"`
	Margin      int     `yaml:"margin"`
}

// GolfBlocks defines the optional obstacles.
type GolfBlocks struct {
	ChancePct    int     `yaml:"chance_pct"`
	Min          int     `yaml:"min"`
	Max          int     `yaml:"max"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MinXFrac     float64 `yaml:"min_x_frac"`
	MaxXFrac     float64 `yaml:"max_x_frac"`
	Margin       int     `yaml:"margin"`
	CupClearance float64 `yaml:"cup_clearance"`
}

// GolfShot defines the drag-to-shoot gesture.
type GolfShot struct {
	GrabFactor float64 `yaml:"grab_factor"` // squared grab radius as a multiple of r²
	MaxPull    float64 `yaml:"max_pull"`
	MinPull    float64 `yaml:"min_pull"`
	Power      float64 `yaml:"power"`
}

// GolfPhysics defines rolling and the loss conditions.
type GolfPhysics struct {
	WallBounce  float64 `yaml:"wall_bounce"`
	BlockBounce float64 `yaml:"block_bounce"`
	Damping     float64 `yaml:"damping"`
	GraceMs     float64 `yaml:"grace_ms"`
	RestSpeed   float64 `yaml:"rest_speed"`
	OutMargin   float64 `yaml:"out_margin"`
}

// DefenseConfig tunes circle defense.
type DefenseConfig struct {
	World   Size           `yaml:"world"`
	Grid    float64        `yaml:"grid"`
	Path    DefensePath    `yaml:"path"`
	Economy DefenseEconomy `yaml:"economy"`
	Waves   DefenseWaves   `yaml:"waves"`
	Tower   DefenseTower   `yaml:"tower"`
	Bullet  DefenseBullet  `yaml:"bullet"`
}

// DefensePath defines the generated enemy route.
type DefensePath struct {
	Margin     int     `yaml:"margin"`
	Turns      int     `yaml:"turns"`
	MinSegment int     `yaml:"min_segment"`
	TurnRoom   int     `yaml:"turn_room"`
	Width      float64 `yaml:"width"`
}

// DefenseEconomy defines coins and lives.
type DefenseEconomy struct {
	StartCoins int `yaml:"start_coins"`
	Lives      int `yaml:"lives"`
	TowerCost  int `yaml:"tower_cost"`
	KillReward int `yaml:"kill_reward"`
}

// DefenseWaves defines wave pacing and per-wave enemy tiers.
type DefenseWaves struct {
	FirstMs      float64    `yaml:"first_ms"`
	SpawnMs      float64    `yaml:"spawn_ms"`
	PauseMs      float64    `yaml:"pause_ms"`
	Count        StepConfig `yaml:"count"`
	HP           StepConfig `yaml:"hp"`
	Speed        StepConfig `yaml:"speed"`
	EnemySize    float64    `yaml:"enemy_size"`
	ArriveWithin float64    `yaml:"arrive_within"`
}

// DefenseTower defines tower targeting.
type DefenseTower struct {
	Radius float64 `yaml:"radius"`
	Range  float64 `yaml:"range"`
	FireMs float64 `yaml:"fire_ms"`
}

// DefenseBullet defines tower projectiles.
type DefenseBullet struct {
	Speed     float64 `yaml:"speed"`
	Damage    float64 `yaml:"damage"`
	HitRadius float64 `yaml:"hit_radius"`
	LifeMs    float64 `yaml:"life_ms"`
}

// ZombieConfig tunes zombie onslaught.
type ZombieConfig struct {
	World  Size         `yaml:"world"`
	Player ZombiePlayer `yaml:"player"`
	Bullet ZombieBullet `yaml:"bullet"`
	Zombie ZombieHorde  `yaml:"zombie"`
}

// ZombiePlayer defines the survivor.
type ZombiePlayer struct {
	Radius   float64 `yaml:"radius"`
	Speed    float64 `yaml:"speed"`
	Lives    int     `yaml:"lives"`
	InvulnMs float64 `yaml:"invuln_ms"`
}

// ZombieBullet defines the survivor's shots.
type ZombieBullet struct {
	Radius     float64 `yaml:"radius"`
	Speed      float64 `yaml:"speed"`
	LifeMs     float64 `yaml:"life_ms"`
	CooldownMs float64 `yaml:"cooldown_ms"`
}

// ZombieHorde defines zombie spawning.
type ZombieHorde struct {
	Radius     float64     `yaml:"radius"`
	EdgeMargin float64     `yaml:"edge_margin"`
	SpawnMs    CurveConfig `yaml:"spawn_ms"`
	Speed      CurveConfig `yaml:"speed"`
}

// DriftConfig tunes vector drift.
type DriftConfig struct {
	World        Size              `yaml:"world"`
	Player       DriftPlayer       `yaml:"player"`
	Obstacles    DriftObstacles    `yaml:"obstacles"`
	Collectibles DriftCollectibles `yaml:"collectibles"`
}

// DriftPlayer defines the ship.
type DriftPlayer struct {
	Radius       float64 `yaml:"radius"`
	Speed        float64 `yaml:"speed"`
	SpeedGrowth  float64 `yaml:"speed_growth"` // fraction gained per minute
	Damping      float64 `yaml:"damping"`
	WrapMargin   float64 `yaml:"wrap_margin"`
	Top          float64 `yaml:"top"`
	BottomMargin float64 `yaml:"bottom_margin"`
}

// DriftObstacles defines the falling hazards.
type DriftObstacles struct {
	IntervalMs CurveConfig `yaml:"interval_ms"`
	Scroll     CurveConfig `yaml:"scroll"`
	MinRadius  float64     `yaml:"min_radius"`
	MaxRadius  float64     `yaml:"max_radius"`
	MinLength  float64     `yaml:"min_length"`
	MaxLength  float64     `yaml:"max_length"`
	LinePct    int         `yaml:"line_pct"`
	Margin     float64     `yaml:"margin"`
	SpawnY     float64     `yaml:"spawn_y"`
	Despawn    float64     `yaml:"despawn"`
}

// DriftCollectibles defines the pickups.
type DriftCollectibles struct {
	IntervalMs float64 `yaml:"interval_ms"`
	Radius     float64 `yaml:"radius"`
	SpawnY     float64 `yaml:"spawn_y"`
	Despawn    float64 `yaml:"despawn"`
}

// OverclockConfig tunes the overclock clicker.
type OverclockConfig struct {
	StartPower float64         `yaml:"start_power"`
	BaseRate   float64         `yaml:"base_rate"`
	ClickPower float64         `yaml:"click_power"`
	Drain      CurveConfig     `yaml:"drain"`
	Upgrades   []UpgradeConfig `yaml:"upgrades"`
}

// UpgradeConfig defines the cost curve of one upgrade slot.
type UpgradeConfig struct {
	Name     string  `yaml:"name"`
	BaseCost float64 `yaml:"base_cost"`
	Growth   float64 `yaml:"growth"`
}

// SpottingConfig tunes the spotting game.
type SpottingConfig struct {
	DurationMs float64  `yaml:"duration_ms"`
	Columns    int      `yaml:"columns"`
	Cells      int      `yaml:"cells"`
	Letters    string   `yaml:"letters"`
	Digits     string   `yaml:"digits"`
	Shapes     []string `yaml:"shapes"`
}

// TypingConfig tunes the typing accuracy test.
type TypingConfig struct {
	DurationMs float64  `yaml:"duration_ms"`
	Lookahead  int      `yaml:"lookahead"`
	Phrases    []string `yaml:"phrases"`
}
