package models

import "time"

// ChatMessage is one immutable entry of a group's persisted chat log.
// Sender is always the stable string user id, never an internal reference;
// SenderName is a denormalized snapshot taken at send time.
type ChatMessage struct {
	ID         string    `bson:"id" json:"id"`
	Sender     string    `bson:"sender" json:"sender"`
	SenderName string    `bson:"senderName" json:"senderName"`
	Text       string    `bson:"text" json:"text"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}
