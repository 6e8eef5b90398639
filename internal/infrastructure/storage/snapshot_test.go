package storage

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ionutrobert/WebScape/internal/domain"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	objects := []domain.WorldObject{
		{Position: domain.Position{X: 6, Y: 5}, DefinitionID: "copper_rock", Status: domain.StatusDepleted, TicksUntilRespawn: 9},
		{Position: domain.Position{X: 3, Y: 12}, DefinitionID: "oak_tree", Status: domain.StatusActive},
	}
	path := filepath.Join(t.TempDir(), "snaps", "world.snap")
	svc := NewSnapshotService(path, func() (uint64, []domain.WorldObject) { return 42, objects })
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	written, err := svc.WriteSnapshot()
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if written != path {
		t.Errorf("path = %q, want %q", written, path)
	}

	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if snap.Tick != 42 || snap.Timestamp != 1700000000000 {
		t.Errorf("tick=%d timestamp=%d", snap.Tick, snap.Timestamp)
	}
	if len(snap.Objects) != 2 || snap.Objects[0] != objects[0] || snap.Objects[1] != objects[1] {
		t.Errorf("objects = %+v", snap.Objects)
	}
}

func TestSnapshot_RejectsCorruptInput(t *testing.T) {
	var good bytes.Buffer
	if err := writeBinary(&good, Snapshot{Tick: 1, Objects: []domain.WorldObject{{DefinitionID: "tin_rock"}}}); err != nil {
		t.Fatal(err)
	}
	raw := good.Bytes()

	badMagic := append([]byte(nil), raw...)
	copy(badMagic, "CDRP")

	badVersion := append([]byte(nil), raw...)
	badVersion[4] = 9

	flipped := append([]byte(nil), raw...)
	flipped[len(flipped)-1] ^= 0xff

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", raw[:10]},
		{"bad magic", badMagic},
		{"bad version", badVersion},
		{"truncated body", raw[:len(raw)-3]},
		{"corrupt body", flipped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readBinary(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrBadSnapshot) {
				t.Errorf("err = %v, want ErrBadSnapshot", err)
			}
		})
	}
}

func TestReadHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := writeBinary(&buf, Snapshot{Tick: 7, Timestamp: 99}); err != nil {
		t.Fatal(err)
	}
	h, err := ReadHeader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if h.Tick != 7 || h.Timestamp != 99 || h.ObjectCount != 0 || h.BodyLen == 0 {
		t.Errorf("header = %+v", h)
	}
}
