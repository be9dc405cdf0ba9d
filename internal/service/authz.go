package service

import "github.com/noteduco342/readgroup-backend/internal/models"

// IsGroupOwner reports whether userID owns group. Reads of a group are
// created and deleted only by its owner.
func IsGroupOwner(group *models.Group, userID string) bool {
	return group != nil && userID != "" && group.Owner == userID
}

// IsMessageOwner reports whether userID wrote message.
func IsMessageOwner(message *models.Message, userID string) bool {
	return message != nil && userID != "" && message.Owner == userID
}
