// Package events defines the domain events the shop publishes.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	// StreamSubjects is captured by the shop JetStream stream.
	StreamSubjects = "shop.>"

	LikeToggledSubject     = "shop.likes.toggled"
	RatingSubmittedSubject = "shop.ratings.submitted"
	CommentCreatedSubject  = "shop.comments.created"
)

type LikeToggled struct {
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Liked     bool      `json:"liked"`
	At        time.Time `json:"at"`
}

func (e LikeToggled) Subject() string {
	return LikeToggledSubject
}

func (e LikeToggled) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type RatingSubmitted struct {
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Value     int32     `json:"value"`
	Created   bool      `json:"created"`
	At        time.Time `json:"at"`
}

func (e RatingSubmitted) Subject() string {
	return RatingSubmittedSubject
}

func (e RatingSubmitted) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type CommentCreated struct {
	CommentID uuid.UUID `json:"comment_id"`
	ProductID uuid.UUID `json:"product_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	At        time.Time `json:"at"`
}

func (e CommentCreated) Subject() string {
	return CommentCreatedSubject
}

func (e CommentCreated) Payload() ([]byte, error) {
	return json.Marshal(e)
}
