// Package auth holds the barn-scoping rules applied to every mutating action.
package auth

import "github.com/karangnongko/goatherd/internal/domain/models"

// CanManage decides whether the actor may edit or delete a record assigned to
// recordBarn. Admins manage everything; a handler manages exactly its own
// barn; invalid roles are denied.
func CanManage(actor models.Actor, recordBarn models.Barn) bool {
	if actor.Role.IsAdmin() {
		return true
	}
	barn, ok := actor.Role.HandlerBarn()
	if !ok {
		return false
	}
	return barn == recordBarn
}

// DefaultBarn picks the barn a new record is pre-assigned to. Handlers always
// get their own barn; admins get the west barn as an editable starting value.
func DefaultBarn(actor models.Actor) models.Barn {
	if barn, ok := actor.Role.HandlerBarn(); ok {
		return barn
	}
	return models.BarnWest
}
