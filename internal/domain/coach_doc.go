package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoachDoc stores metadata about a coaching document a player uploaded.
// The raw bytes live in the blob store under ObjectKey.
type CoachDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	ObjectKey   string             `bson:"objectKey" json:"-"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"`
	ChunkCount  int                `bson:"chunkCount" json:"chunkCount"`
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
