package service

import (
	"testing"

	"github.com/noteduco342/readgroup-backend/internal/models"
)

func TestIsGroupOwner(t *testing.T) {
	group := &models.Group{ID: "g1", Owner: "alice-id"}
	tests := []struct {
		name   string
		group  *models.Group
		userID string
		want   bool
	}{
		{"Owner", group, "alice-id", true},
		{"Other user", group, "bob-id", false},
		{"Empty user", &models.Group{ID: "g2"}, "", false},
		{"Nil group", nil, "alice-id", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGroupOwner(tt.group, tt.userID); got != tt.want {
				t.Errorf("IsGroupOwner() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsMessageOwner(t *testing.T) {
	msg := &models.Message{ID: "m1", Owner: "alice-id"}
	if !IsMessageOwner(msg, "alice-id") {
		t.Error("author should own message")
	}
	if IsMessageOwner(msg, "bob-id") {
		t.Error("other user should not own message")
	}
	if IsMessageOwner(nil, "alice-id") {
		t.Error("nil message has no owner")
	}
}
