package domain

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// FileKind is the file-format taxonomy of the inbox contract.
// The drop directory is expected to hold PDF, JPEG, PNG, and plain-text
// files; other formats are recognised so they can be catalogued
// metadata-only rather than rejected.
type FileKind string

// Recognised file kinds.
const (
	KindPDF     FileKind = "pdf"
	KindJPEG    FileKind = "jpeg"
	KindPNG     FileKind = "png"
	KindText    FileKind = "text"
	KindAudio   FileKind = "audio"
	KindVideo   FileKind = "video"
	KindArchive FileKind = "archive"
	KindUnknown FileKind = "unknown"
)

// HeaderLen is the number of leading bytes DetectKind needs at most.
// Callers reading a file header for detection should read this many bytes.
const HeaderLen = 512

// Magic byte prefixes for the binary formats of the contract.
var (
	magicPDF  = []byte("%PDF-")
	magicPNG  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	magicJPEG = []byte{0xFF, 0xD8, 0xFF}
)

// extKinds maps lowercase file extensions to kinds.
// Used when no header bytes are available, and to recognise formats
// whose magic bytes are not checked (audio, video, archives).
var extKinds = map[string]FileKind{
	".pdf":  KindPDF,
	".jpg":  KindJPEG,
	".jpeg": KindJPEG,
	".png":  KindPNG,
	".txt":  KindText,
	".md":   KindText,
	".csv":  KindText,
	".log":  KindText,
	".json": KindText,
	".xml":  KindText,
	".yaml": KindText,
	".yml":  KindText,
	".toml": KindText,
	".m4a":  KindAudio,
	".mp3":  KindAudio,
	".wav":  KindAudio,
	".mp4":  KindVideo,
	".avi":  KindVideo,
	".mov":  KindVideo,
	".zip":  KindArchive,
	".gz":   KindArchive,
	".tar":  KindArchive,
	".7z":   KindArchive,
	".rar":  KindArchive,
}

// kindMIMEs maps kinds to their canonical MIME types.
var kindMIMEs = map[FileKind]string{
	KindPDF:     "application/pdf",
	KindJPEG:    "image/jpeg",
	KindPNG:     "image/png",
	KindText:    "text/plain",
	KindAudio:   "audio/mpeg",
	KindVideo:   "video/mp4",
	KindArchive: "application/zip",
	KindUnknown: "application/octet-stream",
}

// DetectKind determines the file kind from the filename and an optional
// header of leading bytes. Magic bytes win over the extension: a renamed
// PDF is still a PDF. At most HeaderLen bytes of head are inspected.
func DetectKind(name string, head []byte) FileKind {
	if len(head) > HeaderLen {
		head = head[:HeaderLen]
	}

	switch {
	case bytes.HasPrefix(head, magicPDF):
		return KindPDF
	case bytes.HasPrefix(head, magicPNG):
		return KindPNG
	case bytes.HasPrefix(head, magicJPEG):
		return KindJPEG
	}

	ext := strings.ToLower(filepath.Ext(name))
	if kind, ok := extKinds[ext]; ok {
		return kind
	}

	// A header that looks like text is treated as text even with an
	// unrecognised extension.
	if len(head) > 0 && looksLikeText(head) {
		return KindText
	}

	return KindUnknown
}

// looksLikeText reports whether head contains no NUL bytes and decodes
// as mostly printable content. Cheap heuristic, bounded by HeaderLen.
func looksLikeText(head []byte) bool {
	return !bytes.ContainsRune(head, 0x00)
}

// Accepted reports whether this kind is part of the inbox contract
// (PDF, JPEG, PNG, plain text).
func (k FileKind) Accepted() bool {
	switch k {
	case KindPDF, KindJPEG, KindPNG, KindText:
		return true
	default:
		return false
	}
}

// IsText reports whether documents of this kind carry readable content.
func (k FileKind) IsText() bool {
	return k == KindText
}

// MIMEType returns the canonical MIME type for the kind.
func (k FileKind) MIMEType() string {
	if m, ok := kindMIMEs[k]; ok {
		return m
	}
	return kindMIMEs[KindUnknown]
}

// String returns the string representation.
func (k FileKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k FileKind) Description() string {
	switch k {
	case KindPDF:
		return "PDF document"
	case KindJPEG:
		return "JPEG image"
	case KindPNG:
		return "PNG image"
	case KindText:
		return "Plain text"
	case KindAudio:
		return "Audio"
	case KindVideo:
		return "Video"
	case KindArchive:
		return "Archive"
	default:
		return "Unknown"
	}
}

// FormatSize renders a byte count in human-readable form (B, KB, MB, GB).
func FormatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	case n < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GB", float64(n)/(1024*1024*1024))
	}
}
