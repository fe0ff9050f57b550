package config

import "time"

// UI and Display Constants
const (
	CardsPerPage = 10

	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	EmbedDefaultColor = 0x2B2D31

	// Rarity colors
	RarityCommonColor    = 0x808080
	RarityRareColor      = 0x3B82F6
	RaritySuperRareColor = 0x8B5CF6
	RarityUltraRareColor = 0xEC4899
	RarityLegendaryColor = 0xFFD700
	RarityEventColor     = 0xF97316
	RarityLimitedColor   = 0xEF4444

	CoinEmoji      = "🪙"
	ButterflyEmoji = "🦋"
)

// Database and Performance Constants
const (
	DefaultQueryTimeout     = 30 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	SlowCommandThreshold    = 2 * time.Second
	CacheSize               = 1024
)

// Background job intervals
const (
	RemoteSyncInterval  = 10 * time.Minute
	LockCleanupInterval = 5 * time.Minute
	LockIdleTimeout     = 10 * time.Minute
)

// Game Mechanics Constants
const (
	DailyCooldown   = 24 * time.Hour
	WeeklyCooldown  = 7 * 24 * time.Hour
	MonthlyCooldown = 30 * 24 * time.Hour
	WorkCooldown    = 15 * time.Minute
	ClaimCooldown   = 90 * time.Second
	DropCooldown    = 60 * time.Second
	DropOfferTTL    = 60 * time.Second
	DropOfferSize   = 3

	BoostDuration = 45 * time.Minute
)
