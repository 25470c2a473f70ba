package filemgr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"tourbase/utils"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

type FileKind string

const (
	KindPhoto FileKind = "photo"
	KindVideo FileKind = "video"
	KindFile  FileKind = "file"
	KindThumb FileKind = "thumb"
)

var (
	allowedExtensions = map[FileKind][]string{
		KindPhoto: {".jpg", ".jpeg", ".png", ".gif", ".webp"},
		KindVideo: {".mp4", ".mov", ".avi", ".webm"},
		KindFile:  {".pdf", ".doc", ".docx", ".txt", ".jpg", ".jpeg", ".png", ".mp3", ".mp4", ".mov", ".avi", ".webm"},
	}

	allowedMIMEs = map[FileKind][]string{
		KindPhoto: {"image/jpeg", "image/png", "image/gif", "image/webp"},
		KindVideo: {"video/mp4", "video/quicktime", "video/x-msvideo", "video/webm"},
		KindFile: {
			"application/pdf", "application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"text/plain",
			"image/jpeg", "image/png", "image/gif", "image/webp",
			"audio/mpeg", "video/mp4", "video/webm", "video/quicktime", "video/x-msvideo",
		},
	}

	subfolders = map[FileKind]string{
		KindPhoto: "photo",
		KindVideo: "videos",
		KindFile:  "files",
		KindThumb: "thumb",
	}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
)

const thumbWidth = 320

// ResolvePath is where files of one kind live on disk; it is also served as
// a static route.
func ResolvePath(kind FileKind) string {
	sub := subfolders[kind]
	if sub == "" {
		sub = "misc"
	}
	return filepath.Join("static", "uploads", sub)
}

// KindForFilename picks the file kind from the extension; anything that is
// not an image or video is a generic file.
func KindForFilename(name string) FileKind {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range allowedExtensions[KindPhoto] {
		if ext == e {
			return KindPhoto
		}
	}
	for _, e := range allowedExtensions[KindVideo] {
		if ext == e {
			return KindVideo
		}
	}
	return KindFile
}

// SaveUpload validates and writes one multipart file to disk under a fresh
// uuid name. Jpegs are re-encoded to strip EXIF. Returns the stored
// filename and the sniffed content type.
func SaveUpload(file multipart.File, header *multipart.FileHeader, kind FileKind) (string, string, error) {
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extensionAllowed(ext, kind) {
		return "", "", fmt.Errorf("%w: %s for %s", ErrInvalidExtension, ext, kind)
	}

	buf, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("read file: %w", err)
	}

	mimeType := http.DetectContentType(buf[:min(len(buf), 512)])
	if mimeType == "application/octet-stream" {
		if formMime := header.Header.Get("Content-Type"); formMime != "" {
			mimeType = formMime
		}
	}
	if !mimeAllowed(mimeType, kind) {
		return "", "", fmt.Errorf("%w: %s for %s", ErrInvalidMIME, mimeType, kind)
	}

	if kind == KindPhoto && (ext == ".jpg" || ext == ".jpeg") {
		if img, _, err := image.Decode(bytes.NewReader(buf)); err == nil {
			if stripped, err := stripEXIF(img); err == nil {
				buf = stripped.Bytes()
			}
		}
	}

	destDir := ResolvePath(kind)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", "", fmt.Errorf("mkdir %s: %w", destDir, err)
	}

	filename := utils.GetUUID() + ext
	fullPath := filepath.Join(destDir, filename)
	if err := os.WriteFile(fullPath, buf, 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", fullPath, err)
	}

	return filename, mimeType, nil
}

// CreateThumbnail renders a jpg thumbnail for a stored photo and returns the
// thumbnail filename.
func CreateThumbnail(photoFilename string) (string, error) {
	src := filepath.Join(ResolvePath(KindPhoto), photoFilename)
	img, err := imaging.Open(src)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src, err)
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)

	destDir := ResolvePath(KindThumb)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", destDir, err)
	}

	name := strings.TrimSuffix(photoFilename, filepath.Ext(photoFilename)) + ".jpg"
	if err := imaging.Save(thumb, filepath.Join(destDir, name), imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}
	return name, nil
}

func stripEXIF(img image.Image) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
	return buf, err
}

func extensionAllowed(ext string, kind FileKind) bool {
	for _, a := range allowedExtensions[kind] {
		if ext == a {
			return true
		}
	}
	return false
}

func mimeAllowed(mimeType string, kind FileKind) bool {
	for _, a := range allowedMIMEs[kind] {
		if mimeType == a {
			return true
		}
	}
	return false
}
