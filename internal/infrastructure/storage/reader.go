package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// maxBody caps the compressed body a header may announce.
const maxBody = 64 << 20

// LoadSnapshot reads a snapshot file.
func LoadSnapshot(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()

	return readBinary(f)
}

// ReadHeader reads only the fixed header.
func ReadHeader(r io.Reader) (SnapshotFileHeader, error) {
	var header SnapshotFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return header, fmt.Errorf("%w: failed to read header: %v", ErrBadSnapshot, err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return header, fmt.Errorf("%w: invalid magic %q", ErrBadSnapshot, header.Magic[:])
	}
	if header.Version != Version1 {
		return header, fmt.Errorf("%w: unsupported version: %d (expected %d)", ErrBadSnapshot, header.Version, Version1)
	}
	if header.BodyLen > maxBody {
		return header, fmt.Errorf("%w: body of %d bytes", ErrBadSnapshot, header.BodyLen)
	}
	return header, nil
}

func readBinary(r io.Reader) (Snapshot, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return Snapshot{}, err
	}

	compressed := make([]byte, header.BodyLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return Snapshot{}, fmt.Errorf("%w: failed to read body: %v", ErrBadSnapshot, err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return Snapshot{}, err
	}
	defer dec.Close()

	body, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: zstd: %v", ErrBadSnapshot, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: decode body: %v", ErrBadSnapshot, err)
	}
	if int(header.ObjectCount) != len(snap.Objects) {
		return Snapshot{}, fmt.Errorf("%w: header lists %d objects, body has %d", ErrBadSnapshot, header.ObjectCount, len(snap.Objects))
	}
	return snap, nil
}
