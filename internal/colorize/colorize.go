// Package colorize implements the colorization decision procedure
// (spec.md §4.1): map a path's stat mode and extension to an ANSI SGR
// escape sequence, the way GNU coreutils' dircolors does.
//
// Sequences are reproduced as literal constants from
// original_source/generic/dircolors.h rather than built through a styling
// library (lipgloss/termenv model color as a single foreground/background/
// attribute triple and cannot reproduce these multi-field SGR codes as
// anything other than the same literal bytes — see DESIGN.md).
package colorize

import (
	"strings"

	"golang.org/x/sys/unix"
)

// Reset ends any color sequence.
const Reset = "\033[0m"

const (
	blockDevice = "\033[40;33;01m"
	charDevice  = "\033[40;33;01m"
	dir         = "\033[01;34m"
	fifo        = "\033[40;33m"
	symlink     = "\033[01;36m"
	socket      = "\033[01;35m"

	dirStickyOtherWritable = "\033[30;42m"
	dirOtherWritable       = "\033[34;42m"
	dirSticky              = "\033[37;44m"

	setuid     = "\033[37;41m"
	setgid     = "\033[30;43m"
	executable = "\033[01;32m"

	archive    = "\033[01;31m"
	imageVideo = "\033[01;35m"
	audio      = "\033[00;36m"
)

// Dir is exported so callers that already know an entry is a directory
// (the common case while walking) can skip a redundant lstat.
const Dir = dir

var archiveExts = map[string]bool{
	"tar": true, "tgz": true, "arc": true, "arj": true, "taz": true,
	"lha": true, "lz4": true, "lzh": true, "lzma": true, "tlz": true,
	"txz": true, "tzo": true, "t7z": true, "zip": true, "z": true,
	"dz": true, "gz": true, "lrz": true, "lz": true, "lzo": true,
	"xz": true, "zst": true, "tzst": true, "bz2": true, "bz": true,
	"tbz": true, "tbz2": true, "tz": true, "deb": true, "rpm": true,
	"jar": true, "war": true, "ear": true, "sar": true, "rar": true,
	"alz": true, "ace": true, "zoo": true, "cpio": true, "7z": true,
	"rz": true, "cab": true, "wim": true, "swm": true, "dwm": true,
	"esd": true,
}

var imageVideoExts = map[string]bool{
	"jpg": true, "jpeg": true, "mjpg": true, "mjpeg": true, "gif": true,
	"bmp": true, "pbm": true, "pgm": true, "ppm": true, "tga": true,
	"xbm": true, "xpm": true, "tif": true, "tiff": true, "png": true,
	"svg": true, "svgz": true, "mng": true, "pcx": true, "mov": true,
	"mpg": true, "mpeg": true, "m2v": true, "mkv": true, "webm": true,
	"ogm": true, "mp4": true, "m4v": true, "mp4v": true, "vob": true,
	"qt": true, "nuv": true, "wmv": true, "asf": true, "rm": true,
	"rmvb": true, "flc": true, "avi": true, "fli": true, "flv": true,
	"gl": true, "dl": true, "xcf": true, "xwd": true, "yuv": true,
	"cgm": true, "emf": true, "ogv": true, "ogx": true,
}

var audioExts = map[string]bool{
	"aac": true, "au": true, "flac": true, "m4a": true, "mid": true,
	"midi": true, "mka": true, "mp3": true, "mpc": true, "ogg": true,
	"ra": true, "wav": true, "oga": true, "opus": true, "spx": true,
	"xspf": true,
}

// For determines the ANSI SGR sequence for the entry at path. isDir lets
// callers that already resolved the entry kind (the walker, mid-scan)
// skip the file-kind switch: path is still lstat'ed, but only to pick one
// of the four directory sub-variants. Pass false when the kind is unknown
// and a full lstat-based decision is needed.
func For(path string, isDir bool) string {
	if isDir {
		return dirColor(path)
	}

	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return ""
	}
	return forStat(path, &st)
}

// dirColor resolves the four directory sub-variants from a fresh lstat;
// used when the caller already knows the entry is a directory but still
// needs the sticky/other-writable bit combination. An lstat failure
// (entry vanished between readdir and here) yields no color at all per
// spec.md §4.1 step 1, not a fallback to the default directory color.
func dirColor(path string) string {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return ""
	}
	return dirVariant(st.Mode)
}

func dirVariant(mode uint32) string {
	switch mode & (unix.S_ISVTX | unix.S_IWOTH) {
	case unix.S_ISVTX | unix.S_IWOTH:
		return dirStickyOtherWritable
	case unix.S_IWOTH:
		return dirOtherWritable
	case unix.S_ISVTX:
		return dirSticky
	default:
		return dir
	}
}

func forStat(path string, st *unix.Stat_t) string {
	switch st.Mode & unix.S_IFMT {
	case unix.S_IFBLK:
		return blockDevice
	case unix.S_IFCHR:
		return charDevice
	case unix.S_IFDIR:
		return dirVariant(st.Mode)
	case unix.S_IFIFO:
		return fifo
	case unix.S_IFLNK:
		return symlink
	case unix.S_IFSOCK:
		return socket
	case unix.S_IFREG:
		if st.Mode&unix.S_ISUID != 0 {
			return setuid
		}
		if st.Mode&unix.S_ISGID != 0 {
			return setgid
		}
		if st.Mode&0o111 != 0 {
			return executable
		}
	}
	return byExtension(path)
}

// byExtension classifies the substring after the last '.' following the
// last '/' in path (spec.md §4.1 step 4).
func byExtension(path string) string {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	ext := strings.ToLower(base[i+1:])
	switch {
	case archiveExts[ext]:
		return archive
	case imageVideoExts[ext]:
		return imageVideo
	case audioExts[ext]:
		return audio
	default:
		return ""
	}
}
