package statemachine

import (
	"errors"

	"github.com/FahadStacks1996/Mad/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "admin", "rider"
}

// validTransitions is the authoritative state machine definition.
// "Failed - Out of Stock" is declared in the status enum but no
// transition produces it: nothing deducts stock on order placement yet.
var validTransitions = []Transition{
	// Admin accepts or cancels a fresh order
	{From: models.StatusPending, To: models.StatusProcessing, Actor: "admin"},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "admin"},
	// Admin closes out an order in progress
	{From: models.StatusProcessing, To: models.StatusCompleted, Actor: "admin"},
	{From: models.StatusProcessing, To: models.StatusCancelled, Actor: "admin"},
	// The assigned rider confirming delivery completes the order,
	// even if the admin never moved it past Pending.
	{From: models.StatusPending, To: models.StatusCompleted, Actor: "rider"},
	{From: models.StatusProcessing, To: models.StatusCompleted, Actor: "rider"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

// trackingRank orders the fulfillment axis so it can only move forward
var trackingRank = map[models.TrackingStatus]int{
	models.TrackingPreparing:      0,
	models.TrackingOutForDelivery: 1,
	models.TrackingDelivered:      2,
}

// CanAdvanceTracking rejects any regression on the fulfillment axis
func CanAdvanceTracking(from, to models.TrackingStatus) error {
	fr, ok := trackingRank[from]
	if !ok {
		return errors.New("unknown tracking status: " + string(from))
	}
	tr, ok := trackingRank[to]
	if !ok {
		return errors.New("unknown tracking status: " + string(to))
	}
	if tr <= fr {
		return errors.New("tracking status cannot move from " + string(from) + " back to " + string(to))
	}
	return nil
}
