package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/pkg/logger"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
)

const (
	MagicHeader string = `WSNP` // 4 bytes
	Version1    uint32 = 1
)

// ErrBadSnapshot marks a file that is not a readable snapshot.
var ErrBadSnapshot = errors.New("bad snapshot")

// SnapshotFileHeader is the fixed little-endian header. binary.Write handles
// it in one call since it holds only arrays and numbers.
type SnapshotFileHeader struct {
	Magic       [4]byte // 4 bytes
	Version     uint32  // 4 bytes
	Tick        uint64  // 8 bytes
	Timestamp   int64   // 8 bytes, unix millis
	ObjectCount uint32  // 4 bytes
	BodyLen     uint32  // 4 bytes, compressed
}

// Snapshot is the world state worth keeping across restarts: object statuses
// and respawn countdowns.
type Snapshot struct {
	Tick      uint64               `json:"tick"`
	Timestamp int64                `json:"timestamp"`
	Objects   []domain.WorldObject `json:"objects"`
}

// SnapshotSource reads the live world. It runs on the tick goroutine.
type SnapshotSource func() (tick uint64, objects []domain.WorldObject)

// SnapshotService writes snapshots to one path.
type SnapshotService struct {
	Path   string
	source SnapshotSource
	now    func() time.Time
}

func NewSnapshotService(path string, source SnapshotSource) *SnapshotService {
	return &SnapshotService{Path: path, source: source, now: time.Now}
}

// WriteSnapshot captures the source and writes it atomically. Returns the path.
func (s *SnapshotService) WriteSnapshot() (string, error) {
	tick, objects := s.source()
	snap := Snapshot{Tick: tick, Timestamp: s.now().UnixMilli(), Objects: objects}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	tmp := s.Path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if err := writeBinary(f, snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return "", err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "storage",
		"path":      s.Path,
		"tick":      tick,
		"objects":   len(objects),
	}).Info("Snapshot written")
	return s.Path, nil
}

func writeBinary(w io.Writer, snap Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	compressed := enc.EncodeAll(body, nil)
	enc.Close()

	header := SnapshotFileHeader{
		Version:     Version1,
		Tick:        snap.Tick,
		Timestamp:   snap.Timestamp,
		ObjectCount: uint32(len(snap.Objects)),
		BodyLen:     uint32(len(compressed)),
	}
	copy(header.Magic[:], MagicHeader)

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	buf.Write(compressed)
	_, err = w.Write(buf.Bytes())
	return err
}
