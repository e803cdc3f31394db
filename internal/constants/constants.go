package constants

// Centralized constants for headers, env keys and routes.
const (
	// Environment variable keys
	EnvAddr          = "GENESIS_ADDR"
	EnvDB            = "GENESIS_DB"
	EnvCatalog       = "GENESIS_CATALOG"
	EnvLogLevel      = "GENESIS_LOG_LEVEL"
	EnvDefaultSeed   = "GENESIS_DEFAULT_SEED"
	EnvMaxConcurrent = "GENESIS_MAX_CONCURRENT"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	HeaderPlayerUUID  = "X-Player-UUID"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix        = "/api"
	RouteHealth           = "/health"
	RouteVersion          = "/version"
	RouteCards            = "/cards"
	RouteLeaderboard      = "/leaderboard"
	RouteCombats          = "/combats"
	RouteCombatByID       = "/combats/:combatID"
	RouteCombatPlay       = "/combats/:combatID/play"
	RouteCombatEndTurn    = "/combats/:combatID/end-turn"
	RouteCombatResume     = "/combats/:combatID/resume"
	RouteCombatEvents     = "/combats/:combatID/events"
	RoutePlayerCollection = "/players/:playerUUID/collection"
	RoutePlayerProfile    = "/players/:playerUUID/profile"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrInvalidCombatID        = "Invalid combat ID"
	ErrCombatNotFound         = "Combat not found"
	ErrPlayerUUIDRequired     = "X-Player-UUID header is required"
	ErrNotYourCombat          = "Combat belongs to another player"
	ErrCommandRejected        = "Command rejected"
	ErrCombatFaulted          = "Combat is in a faulted state"
	ErrFailedStartCombat      = "Failed to start combat"
	ErrFailedLoadCombat       = "Failed to load combat"
	ErrFailedSaveCombat       = "Failed to save combat"
	ErrFailedFetchProfile     = "Failed to fetch profile"
	ErrFailedFetchCollection  = "Failed to fetch collection"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrProfileNotFound        = "Profile not found"
	ErrStreamUpgradeFailed    = "Failed to open event stream"
)

// Logging field names
const (
	LogFieldCombatID   = "combat_id"
	LogFieldPlayerUUID = "player_uuid"
	LogFieldPhase      = "phase"
	LogFieldCommand    = "command"
	LogFieldSource     = "source"
	LogFieldAddr       = "addr"
	LogFieldCount      = "count"
	LogFieldSeq        = "seq"
	LogFieldOutcome    = "outcome"
)
