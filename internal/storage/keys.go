package storage

import (
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
)

// MaxVideoBytes caps direct video uploads.
const MaxVideoBytes = 100 << 20

var videoExtensions = map[string]string{
	"video/mp4":       "mp4",
	"video/quicktime": "mov",
	"video/webm":      "webm",
	"video/x-m4v":     "m4v",
	"video/3gpp":      "3gp",
}

// VideoExtension picks the file extension for a video/* content type.
// Unknown subtypes fall back to the subtype itself, then "mp4".
func VideoExtension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "mp4"
	}
	if ext, ok := videoExtensions[mediaType]; ok {
		return ext
	}
	sub := strings.TrimPrefix(mediaType, "video/")
	if sub == mediaType || sub == "" || strings.ContainsAny(sub, "/.+") {
		return "mp4"
	}
	return sub
}

// IsVideo reports whether contentType is a video/* media type.
func IsVideo(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && strings.HasPrefix(mediaType, "video/")
}

// NewVideoKey returns videos/<userId>/<uuid>.<ext>.
func NewVideoKey(userID, contentType string) string {
	return path.Join("videos", userID, fmt.Sprintf("%s.%s", uuid.NewString(), VideoExtension(contentType)))
}

// OwnsVideoKey reports whether key lives under userID's video prefix.
func OwnsVideoKey(userID, key string) bool {
	return userID != "" && strings.HasPrefix(key, path.Join("videos", userID)+"/")
}

// NewCoachDocKey returns coach-docs/<userId>/<uuid>.<ext>.
func NewCoachDocKey(userID, contentType string) string {
	ext := "txt"
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "text/markdown" {
		ext = "md"
	}
	return path.Join("coach-docs", userID, fmt.Sprintf("%s.%s", uuid.NewString(), ext))
}
