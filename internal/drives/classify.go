package drives

import "strings"

const (
	CategoryPhotos    = "photos"
	CategoryVideos    = "videos"
	CategoryDocuments = "documents"
	CategoryAudio     = "audio"
	CategoryZip       = "zip"
	CategoryOthers    = "others"
)

// Categories lists every destination folder in browse order.
var Categories = []string{
	CategoryPhotos,
	CategoryVideos,
	CategoryDocuments,
	CategoryAudio,
	CategoryZip,
	CategoryOthers,
}

var destinationByHint = map[string]string{
	"image/jpeg":      CategoryPhotos,
	"jpeg":            CategoryPhotos,
	"jpg":             CategoryPhotos,
	"video/mp4":       CategoryVideos,
	"video/quicktime": CategoryVideos,
	"mp4":             CategoryVideos,
	"mov":             CategoryVideos,
	"audio/mpeg":      CategoryAudio,
	"mpeg":            CategoryAudio,
	"application/pdf": CategoryDocuments,
	"pdf":             CategoryDocuments,
	"application/zip": CategoryZip,
	"zip":             CategoryZip,
}

// ClassifyDestination maps a media type or extension to its category folder.
func ClassifyDestination(typeHint string) string {
	hint := strings.ToLower(strings.TrimSpace(typeHint))
	if mediaType, _, found := strings.Cut(hint, ";"); found {
		hint = strings.TrimSpace(mediaType)
	}
	hint = strings.TrimPrefix(hint, ".")
	if category, ok := destinationByHint[hint]; ok {
		return category
	}
	return CategoryOthers
}

// ClassifyUpload prefers the declared content type and falls back to the
// file extension when the type is generic or missing.
func ClassifyUpload(contentType, fileName string) string {
	if category := ClassifyDestination(contentType); category != CategoryOthers {
		return category
	}
	if dot := strings.LastIndex(fileName, "."); dot >= 0 {
		return ClassifyDestination(fileName[dot+1:])
	}
	return CategoryOthers
}

func IsCategory(name string) bool {
	for _, category := range Categories {
		if category == name {
			return true
		}
	}
	return false
}
