package app

import "shengji/internal/domain"

// SeatsPerMatch is the table size; a round cannot start with fewer.
const SeatsPerMatch = domain.NumPlayers

// MinHumansToStart is the number of human players required before the
// remaining seats are filled with bots.
const MinHumansToStart = 1

// TakeoverTarget is the attacker point total that wins the round.
// Centralized so tests and local runs can reason about one value.
const TakeoverTarget = 80
