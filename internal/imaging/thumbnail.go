// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging produces resized copies of locally hosted article covers
// and author portraits. Thumbnails are generated on first request and kept
// in a disk cache.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // GIF decoder
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Errors returned by Thumbnail.
var (
	ErrNotFound    = errors.New("image not found")
	ErrInvalidName = errors.New("invalid image name")
	ErrInvalidSize = errors.New("unsupported thumbnail size")
	ErrUnsupported = errors.New("unsupported image format")
)

// Size is a thumbnail bounding box.
type Size struct {
	Width, Height int
}

func (s Size) String() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// Sizes the site requests. Any other size is refused so the cache cannot be
// filled with arbitrary variants.
var (
	SizeCard   = Size{400, 250}
	SizeCover  = Size{1200, 630}
	SizeAvatar = Size{64, 64}
)

var allowedSizes = map[Size]bool{SizeCard: true, SizeCover: true, SizeAvatar: true}

const jpegQuality = 85

// ParseSize parses "400x250" and checks it is an allowed size.
func ParseSize(s string) (Size, error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return Size{}, ErrInvalidSize
	}
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil {
		return Size{}, ErrInvalidSize
	}
	size := Size{w, h}
	if !allowedSizes[size] {
		return Size{}, ErrInvalidSize
	}
	return size, nil
}

// Thumbnailer resizes images from sourceDir into cacheDir.
type Thumbnailer struct {
	sourceDir string
	cacheDir  string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Thumbnailer.
func New(sourceDir, cacheDir string) *Thumbnailer {
	return &Thumbnailer{
		sourceDir: sourceDir,
		cacheDir:  cacheDir,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Thumbnail returns the path of the cached thumbnail of name at size,
// generating it when missing or older than the source. Output is cropped
// to fill the box, after applying the EXIF orientation.
func (t *Thumbnailer) Thumbnail(name string, size Size) (string, error) {
	if !allowedSizes[size] {
		return "", ErrInvalidSize
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}

	src := filepath.Join(t.sourceDir, name)
	srcInfo, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("stat source image: %w", err)
	}

	dst := filepath.Join(t.cacheDir, size.String(), outputName(name))

	lock := t.lockFor(dst)
	lock.Lock()
	defer lock.Unlock()

	if info, err := os.Stat(dst); err == nil && !info.ModTime().Before(srcInfo.ModTime()) {
		return dst, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("reading source image: %w", err)
	}
	out, err := resize(data, name, size)
	if err != nil {
		return "", err
	}
	if err := writeAtomic(dst, out); err != nil {
		return "", err
	}
	return dst, nil
}

func (t *Thumbnailer) lockFor(key string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.locks[key]
	if !ok {
		l = &sync.Mutex{}
		t.locks[key] = l
	}
	return l
}

func resize(data []byte, name string, size Size) ([]byte, error) {
	if !supported(data) {
		return nil, ErrUnsupported
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	img = applyOrientation(img, readOrientation(bytes.NewReader(data)))
	img = imaging.Fill(img, size.Width, size.Height, imaging.Center, imaging.Lanczos)

	format, err := imaging.FormatFromFilename(outputName(name))
	if err != nil {
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// supported sniffs the content. TIFF is refused (CVE-2023-36308 in
// disintegration/imaging).
func supported(data []byte) bool {
	switch http.DetectContentType(data) {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

// outputName maps the source name to the cached name. WebP has no pure Go
// encoder, so those thumbnails are JPEG.
func outputName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
		return name
	default:
		return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
	}
}

// readOrientation returns the EXIF orientation, or 1 when absent.
func readOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return o
}

// applyOrientation undoes the camera rotation recorded in EXIF
// (values 2 to 8; 1 is upright).
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating thumbnail directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".thumb-*")
	if err != nil {
		return fmt.Errorf("creating thumbnail: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing thumbnail: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing thumbnail: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("saving thumbnail: %w", err)
	}
	return nil
}

// ThumbURL rewrites a local upload URL ("/uploads/x.jpg") to its thumbnail
// route. Remote URLs are returned unchanged.
func ThumbURL(raw string, size Size) string {
	name, ok := strings.CutPrefix(raw, UploadsPrefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return raw
	}
	return ThumbsPrefix + size.String() + "/" + name
}

// URL prefixes for originals and thumbnails.
const (
	UploadsPrefix = "/uploads/"
	ThumbsPrefix  = "/thumbs/"
)
