package evaluation

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/abhisek/aperture/internal/llm"
)

// MaxPhotoBytes bounds the size of a photo file read by EncodeFile.
const MaxPhotoBytes = 20 << 20

var dataURIPattern = regexp.MustCompile(`^data:(image/[A-Za-z0-9.+-]+);base64,(.+)$`)

// mediaTypes is the set of recognized image types.
var mediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// bmffMediaTypes covers formats http.DetectContentType does not sniff.
var bmffMediaTypes = map[string]string{
	".heic": "image/heic",
	".heif": "image/heif",
}

// Photo is a validated image ready to attach to a request.
type Photo struct {
	MediaType string
	Data      string // base64, no prefix
	Size      int    // decoded byte count
}

// Image converts the photo into a provider attachment.
func (p Photo) Image() llm.Image {
	return llm.Image{MediaType: p.MediaType, Data: p.Data}
}

// ParsePhoto validates a data URI. Failures are *Error with KindInvalidInput.
func ParsePhoto(dataURI string) (Photo, error) {
	m := dataURIPattern.FindStringSubmatch(dataURI)
	if m == nil {
		return Photo{}, invalidInput("not an image data URI")
	}

	mediaType := strings.ToLower(m[1])
	if mediaType == "image/jpg" {
		mediaType = "image/jpeg"
	}
	if !mediaTypes[mediaType] {
		return Photo{}, invalidInput("unsupported media type %q", m[1])
	}

	raw, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return Photo{}, invalidInput("payload is not valid base64: %v", err)
	}
	if len(raw) == 0 {
		return Photo{}, invalidInput("empty image payload")
	}

	return Photo{MediaType: mediaType, Data: m[2], Size: len(raw)}, nil
}

// EncodeFile reads an image file and returns it as a data URI.
func EncodeFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", invalidInput("read photo: %w", err)
	}
	if info.IsDir() {
		return "", invalidInput("%s is a directory", path)
	}
	if info.Size() == 0 {
		return "", invalidInput("%s is empty", path)
	}
	if info.Size() > MaxPhotoBytes {
		return "", invalidInput("%s is larger than %d MB", path, MaxPhotoBytes>>20)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", invalidInput("read photo: %w", err)
	}

	mediaType := sniffMediaType(path, raw)
	if !mediaTypes[mediaType] {
		return "", invalidInput("%s is not a supported image (%s)", filepath.Base(path), mediaType)
	}

	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(raw)), nil
}

func sniffMediaType(path string, raw []byte) string {
	detected := http.DetectContentType(raw)
	if mediaTypes[detected] {
		return detected
	}
	// HEIC/HEIF are ISO-BMFF containers; sniffing reports them as octet-stream.
	if t, ok := bmffMediaTypes[strings.ToLower(filepath.Ext(path))]; ok && isBMFF(raw) {
		return t
	}
	return detected
}

func isBMFF(raw []byte) bool {
	return len(raw) >= 12 && string(raw[4:8]) == "ftyp"
}
