package dp

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// magic identifies a craftsolve DP cache dump, so Load can refuse a file
// written by something else before it gets far enough to corrupt state.
const magic = "CSDP"

// header is spec.md §6's persisted cache header: enough to tell whether a
// dump on disk matches the engine about to load it, since a cache keyed
// under the wrong max_dur/check_time would silently mis-decode every
// result it returned.
type header struct {
	MaxDur    uint8
	CheckTime bool
}

// Dump writes the cache to w as a header followed by one
// (state index, packed result) pair per entry. The format is
// implementation-defined (spec.md §6 leaves the on-disk layout open) but
// stable within this package's own version.
func (e *Engine) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(magic); err != nil {
		return err
	}
	if err := bw.WriteByte(e.MaxDur); err != nil {
		return err
	}
	checkTimeByte := byte(0)
	if e.CheckTime {
		checkTimeByte = 1
	}
	if err := bw.WriteByte(checkTimeByte); err != nil {
		return err
	}

	var count uint64
	for _, shard := range e.Cache.shards {
		count += uint64(len(shard))
	}
	if err := binary.Write(bw, binary.LittleEndian, count); err != nil {
		return err
	}

	var buf [16]byte
	for _, shard := range e.Cache.shards {
		for index, result := range shard {
			binary.LittleEndian.PutUint64(buf[0:8], index)
			binary.LittleEndian.PutUint64(buf[8:16], result)
			if _, err := bw.Write(buf[:]); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// Load reads a dump produced by Dump into e, which must already have been
// constructed with the same MaxDur/CheckTime the dump was written with.
func (e *Engine) Load(r io.Reader) error {
	br := bufio.NewReader(r)

	var magicBuf [4]byte
	if _, err := io.ReadFull(br, magicBuf[:]); err != nil {
		return fmt.Errorf("dp: reading dump magic: %w", err)
	}
	if string(magicBuf[:]) != magic {
		return fmt.Errorf("dp: not a craftsolve DP cache dump")
	}

	var h header
	maxDur, err := br.ReadByte()
	if err != nil {
		return err
	}
	checkTimeByte, err := br.ReadByte()
	if err != nil {
		return err
	}
	h.MaxDur = maxDur
	h.CheckTime = checkTimeByte != 0

	if h.MaxDur != e.MaxDur || h.CheckTime != e.CheckTime {
		return fmt.Errorf("dp: dump header (max_dur=%d check_time=%v) does not match engine (max_dur=%d check_time=%v)",
			h.MaxDur, h.CheckTime, e.MaxDur, e.CheckTime)
	}

	var count uint64
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return err
	}

	var buf [16]byte
	for i := uint64(0); i < count; i++ {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return fmt.Errorf("dp: truncated dump at entry %d/%d: %w", i, count, err)
		}
		index := binary.LittleEndian.Uint64(buf[0:8])
		result := binary.LittleEndian.Uint64(buf[8:16])
		e.Cache.Put(index, result)
	}

	return nil
}
