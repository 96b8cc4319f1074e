package drives

import "testing"

func TestClassifyDestination(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":                CategoryPhotos,
		"JPG":                       CategoryPhotos,
		".jpeg":                     CategoryPhotos,
		"video/mp4":                 CategoryVideos,
		"video/quicktime":           CategoryVideos,
		"mov":                       CategoryVideos,
		"audio/mpeg":                CategoryAudio,
		"application/pdf":           CategoryDocuments,
		"application/zip":           CategoryZip,
		"text/plain; charset=utf-8": CategoryOthers,
		"image/png":                 CategoryOthers,
		"":                          CategoryOthers,
	}
	for hint, want := range cases {
		if got := ClassifyDestination(hint); got != want {
			t.Fatalf("ClassifyDestination(%q) = %q, want %q", hint, got, want)
		}
	}
}

func TestClassifyUploadFallsBackToExtension(t *testing.T) {
	if got := ClassifyUpload("application/octet-stream", "holiday.MOV"); got != CategoryVideos {
		t.Fatalf("ClassifyUpload() = %q, want videos", got)
	}
	if got := ClassifyUpload("application/pdf", "scan.jpg"); got != CategoryDocuments {
		t.Fatalf("ClassifyUpload() = %q, want documents", got)
	}
	if got := ClassifyUpload("", "README"); got != CategoryOthers {
		t.Fatalf("ClassifyUpload() = %q, want others", got)
	}
}

func TestIsCategory(t *testing.T) {
	if !IsCategory("zip") || IsCategory("secrets") {
		t.Fatal("unexpected category membership")
	}
}
